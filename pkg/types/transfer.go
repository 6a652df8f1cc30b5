// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Roots holds the canonical absolute input and output directories of a run.
type Roots struct {
	// Input is the directory that is walked for source files. It exists and
	// is a directory once resolved.
	Input string `json:"input" yaml:"input"`

	// Output is the root of the mirrored tree. It need not exist yet.
	Output string `json:"output" yaml:"output"`
}

// TransferRecord pairs a discovered source file with its mirrored destination.
type TransferRecord struct {
	// Source is the absolute path of the source file under Roots.Input.
	Source string `json:"source" yaml:"source"`

	// Destination is the absolute path under Roots.Output with the target
	// extension applied.
	Destination string `json:"destination" yaml:"destination"`

	// Rel is the source path relative to Roots.Input.
	Rel string `json:"rel" yaml:"rel"`
}

// OutcomeKind is the terminal state of a single transfer.
type OutcomeKind string

const (
	OutcomeConverted OutcomeKind = "converted"
	OutcomeSkipped   OutcomeKind = "skipped"
	OutcomeFailed    OutcomeKind = "failed"
)

// Outcome is the result of executing one TransferRecord. Err is set only
// when Kind is OutcomeFailed; DryRun is set only on a converted outcome that
// wrote nothing.
type Outcome struct {
	Kind   OutcomeKind
	DryRun bool
	Err    error
}

// Converted returns a converted outcome.
func Converted(dryRun bool) Outcome {
	return Outcome{Kind: OutcomeConverted, DryRun: dryRun}
}

// Skipped returns a skipped outcome.
func Skipped() Outcome {
	return Outcome{Kind: OutcomeSkipped}
}

// Failed returns a failed outcome carrying its cause.
func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err}
}

// RunCounters accumulates outcomes across a run. Counters only grow.
type RunCounters struct {
	Converted int `json:"converted" yaml:"converted"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Errors    int `json:"errors" yaml:"errors"`
}

// Add folds one outcome into the counters.
func (c *RunCounters) Add(o Outcome) {
	switch o.Kind {
	case OutcomeConverted:
		c.Converted++
	case OutcomeSkipped:
		c.Skipped++
	case OutcomeFailed:
		c.Errors++
	}
}

// Total returns the number of records processed.
func (c RunCounters) Total() int {
	return c.Converted + c.Skipped + c.Errors
}

// HasErrors reports whether any record failed.
func (c RunCounters) HasErrors() bool {
	return c.Errors > 0
}
