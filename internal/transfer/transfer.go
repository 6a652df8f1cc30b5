// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transfer executes planned transfers against a filesystem. Each
// record ends in exactly one outcome: converted, skipped, or failed.
package transfer

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/extmirror/pkg/types"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Executor applies the overwrite and dry-run policy to one record at a time.
type Executor struct {
	Fs        afero.Fs
	Overwrite bool
	DryRun    bool
}

// Execute runs the decision sequence for rec: create the destination
// directory (unless dry-run), skip an existing destination when overwrite is
// off, report a dry-run transfer, or copy the bytes. Failures are returned
// inside the outcome.
func (e *Executor) Execute(ctx context.Context, rec types.TransferRecord) types.Outcome {
	logger := zerolog.Ctx(ctx).With().Str("source", rec.Source).Str("destination", rec.Destination).Logger()

	if !e.DryRun {
		if err := e.Fs.MkdirAll(filepath.Dir(rec.Destination), dirPerm); err != nil {
			return types.Failed(errors.Errorf("creating destination directory: %w", err))
		}
	}

	exists, err := afero.Exists(e.Fs, rec.Destination)
	if err != nil {
		return types.Failed(errors.Errorf("checking destination: %w", err))
	}
	if exists && !e.Overwrite {
		logger.Debug().Msg("destination exists, skipping")
		return types.Skipped()
	}

	if e.DryRun {
		logger.Debug().Msg("dry run, nothing written")
		return types.Converted(true)
	}

	n, err := e.copyFile(rec.Source, rec.Destination)
	if err != nil {
		return types.Failed(err)
	}
	logger.Debug().Int("bytes", n).Bool("replaced", exists).Msg("copied")
	return types.Converted(false)
}

// copyFile writes the full content of src to a temporary file beside dst and
// renames it into place, so dst is either absent or complete.
func (e *Executor) copyFile(src, dst string) (n int, err error) {
	data, err := afero.ReadFile(e.Fs, src)
	if err != nil {
		return 0, errors.Errorf("reading source: %w", err)
	}

	tmp, err := afero.TempFile(e.Fs, filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = e.Fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return 0, errors.Errorf("writing destination: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return 0, errors.Errorf("closing destination: %w", err)
	}
	if err = e.Fs.Chmod(tmpName, filePerm); err != nil {
		return 0, errors.Errorf("setting destination mode: %w", err)
	}
	if err = e.Fs.Rename(tmpName, dst); err != nil {
		return 0, errors.Errorf("renaming into place: %w", err)
	}
	return len(data), nil
}
