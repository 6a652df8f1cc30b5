// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report prints per-file status lines and the run summary, and maps
// the final counters to a process exit status.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/pdiddy/extmirror/pkg/types"
)

// Exit statuses.
const (
	ExitOK             = 0
	ExitFatal          = 1
	ExitPartialFailure = 2
	ExitInterrupted    = 130
)

var (
	okTag   = color.New(color.FgGreen).SprintFunc()
	dryTag  = color.New(color.FgCyan).SprintFunc()
	skipTag = color.New(color.FgYellow).SprintFunc()
	errTag  = color.New(color.FgRed, color.Bold).SprintFunc()
	heading = color.New(color.Bold).SprintFunc()
)

// Reporter writes progress to Out and per-file errors to Err.
type Reporter struct {
	Out io.Writer
	Err io.Writer
}

// Header prints the resolved roots and the number of files found.
func (r *Reporter) Header(roots types.Roots, found int, ext string) {
	fmt.Fprintf(r.Out, "Input : %s\n", roots.Input)
	fmt.Fprintf(r.Out, "Output: %s\n", roots.Output)
	fmt.Fprintf(r.Out, "Found : %d %s file(s)\n\n", found, ext)
}

// NoFiles reports an input root without any matching files.
func (r *Reporter) NoFiles(root, ext string) {
	fmt.Fprintf(r.Out, "No %s files found under: %s\n", ext, root)
}

// Record prints the status line for one outcome.
func (r *Reporter) Record(rec types.TransferRecord, o types.Outcome) {
	switch o.Kind {
	case types.OutcomeSkipped:
		fmt.Fprintf(r.Out, "%s exists: %s\n", skipTag("[SKIP]"), rec.Destination)
	case types.OutcomeConverted:
		if o.DryRun {
			fmt.Fprintf(r.Out, "%s %s -> %s\n", dryTag("[DRY ]"), rec.Source, rec.Destination)
			return
		}
		fmt.Fprintf(r.Out, "%s %s -> %s\n", okTag("[OK  ]"), rec.Source, rec.Destination)
	case types.OutcomeFailed:
		fmt.Fprintf(r.Err, "%s %s (%v)\n", errTag("[ERR ]"), rec.Source, o.Err)
	}
}

// Summary prints the final counters.
func (r *Reporter) Summary(c types.RunCounters) {
	fmt.Fprintf(r.Out, "\n%s\n", heading("Summary"))
	fmt.Fprintf(r.Out, "  Converted: %d\n", c.Converted)
	fmt.Fprintf(r.Out, "  Skipped  : %d\n", c.Skipped)
	fmt.Fprintf(r.Out, "  Errors   : %d\n", c.Errors)
}

// ExitCode is ExitOK when no record failed and ExitPartialFailure otherwise.
func ExitCode(c types.RunCounters) int {
	if c.HasErrors() {
		return ExitPartialFailure
	}
	return ExitOK
}
