// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enumerate discovers source files under an input root. The result is
// a sorted snapshot taken before any destination is written.
package enumerate

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Options narrows enumeration.
type Options struct {
	// Exclude holds doublestar patterns matched against the slash-separated
	// path relative to the root. Matching files are left out.
	Exclude []string

	// Prune is an absolute directory whose subtree is not walked.
	Prune string
}

// ValidatePatterns rejects malformed exclude patterns.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Files returns every file under root whose base name ends in ext, at any
// depth, sorted lexicographically by full path. Matching is case-sensitive.
// Symlinks are included when they point at regular files; symlinked
// directories are not followed. Unreadable subdirectories are logged and
// skipped, while a failure on root itself is returned.
func Files(ctx context.Context, fsys afero.Fs, root, ext string, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	root = filepath.Clean(root)

	var files []string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}

		if info.IsDir() {
			if opts.Prune != "" && path == opts.Prune {
				logger.Debug().Str("path", path).Msg("pruning directory")
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(info.Name(), ext) || !isFile(fsys, path, info) {
			return nil
		}

		excluded, err := matchesAny(opts.Exclude, root, path)
		if err != nil {
			return err
		}
		if excluded {
			logger.Debug().Str("path", path).Msg("excluded by pattern")
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// isFile reports whether info describes a regular file, following one
// level of symlink through fsys.
func isFile(fsys afero.Fs, path string, info os.FileInfo) bool {
	if info.Mode().IsRegular() {
		return true
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false
	}
	target, err := fsys.Stat(path)
	return err == nil && target.Mode().IsRegular()
}

func matchesAny(patterns []string, root, path string) (bool, error) {
	if len(patterns) == 0 {
		return false, nil
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false, err
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		ok, err := doublestar.Match(p, rel)
		if err != nil {
			return false, errors.Errorf("matching pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
