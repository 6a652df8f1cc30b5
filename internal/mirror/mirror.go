// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mirror runs the whole pipeline: enumerate once, then plan and
// execute each file in order, then summarize.
package mirror

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/extmirror/internal/enumerate"
	"github.com/pdiddy/extmirror/internal/plan"
	"github.com/pdiddy/extmirror/internal/report"
	"github.com/pdiddy/extmirror/internal/resolve"
	"github.com/pdiddy/extmirror/internal/transfer"
	"github.com/pdiddy/extmirror/pkg/types"
)

// ErrSelfCopy reports a run whose every destination would be its own source.
var ErrSelfCopy = errors.Base("output root is the input root and extensions are identical")

// Options configures one run over already resolved roots.
type Options struct {
	Roots     types.Roots
	SourceExt string
	TargetExt string
	Overwrite bool
	DryRun    bool
	Exclude   []string
}

// Result is what a run did.
type Result struct {
	Found    int
	Counters types.RunCounters
}

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	return report.ExitCode(r.Counters)
}

// Run mirrors every matching file from opts.Roots.Input to opts.Roots.Output.
// It returns an error only when the roots would copy each file onto itself,
// when enumeration fails, or when ctx is cancelled; per-file failures are
// counted in the result. Equal roots with distinct extensions mirror in place.
func Run(ctx context.Context, fsys afero.Fs, opts Options, rep *report.Reporter) (Result, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Roots.Input == opts.Roots.Output && opts.SourceExt == opts.TargetExt {
		return Result{}, errors.Errorf("%w: %s", ErrSelfCopy, opts.Roots.Input)
	}

	var enumOpts enumerate.Options
	enumOpts.Exclude = opts.Exclude
	if resolve.OutputNested(opts.Roots) {
		logger.Warn().
			Str("input", opts.Roots.Input).
			Str("output", opts.Roots.Output).
			Msg("output root is inside input root; its subtree is not scanned")
		enumOpts.Prune = opts.Roots.Output
	}

	sources, err := enumerate.Files(ctx, fsys, opts.Roots.Input, opts.SourceExt, enumOpts)
	if err != nil {
		return Result{}, errors.Errorf("enumerating source files: %w", err)
	}

	result := Result{Found: len(sources)}
	if len(sources) == 0 {
		rep.NoFiles(opts.Roots.Input, opts.SourceExt)
		return result, nil
	}

	rep.Header(opts.Roots, len(sources), opts.SourceExt)

	exec := &transfer.Executor{Fs: fsys, Overwrite: opts.Overwrite, DryRun: opts.DryRun}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			rep.Summary(result.Counters)
			return result, errors.Errorf("interrupted after %d of %d files: %w",
				result.Counters.Total(), len(sources), err)
		}

		rec, err := plan.Destination(opts.Roots, src, opts.SourceExt, opts.TargetExt)
		var outcome types.Outcome
		if err != nil {
			rec = types.TransferRecord{Source: src}
			outcome = types.Failed(err)
		} else {
			outcome = exec.Execute(ctx, rec)
		}

		result.Counters.Add(outcome)
		rep.Record(rec, outcome)
	}

	rep.Summary(result.Counters)
	logger.Info().
		Int("found", result.Found).
		Int("converted", result.Counters.Converted).
		Int("skipped", result.Counters.Skipped).
		Int("errors", result.Counters.Errors).
		Bool("dry_run", opts.DryRun).
		Msg("mirror complete")
	return result, nil
}
