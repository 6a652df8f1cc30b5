// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve validates the input root and canonicalizes both roots of a
// mirror run so that relative paths computed later are unambiguous.
package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/extmirror/pkg/types"
)

// ErrInputRoot reports a missing input root or one that is not a directory.
var ErrInputRoot = errors.Base("input folder not found or not a directory")

// Roots checks that input is an existing directory and returns both roots
// in absolute, symlink-evaluated form. An empty output defaults to the input
// path as given with suffix appended.
func Roots(input, output, suffix string) (types.Roots, error) {
	info, err := os.Stat(input)
	if err != nil || !info.IsDir() {
		return types.Roots{}, errors.Errorf("%w: %s", ErrInputRoot, input)
	}

	if output == "" {
		output = DefaultOutput(input, suffix)
	}

	in, err := filepath.Abs(input)
	if err != nil {
		return types.Roots{}, errors.Errorf("resolving input root %s: %w", input, err)
	}
	in, err = filepath.EvalSymlinks(in)
	if err != nil {
		return types.Roots{}, errors.Errorf("resolving input root %s: %w", input, err)
	}

	out, err := canonical(output)
	if err != nil {
		return types.Roots{}, errors.Errorf("resolving output root %s: %w", output, err)
	}

	return types.Roots{Input: in, Output: out}, nil
}

// DefaultOutput derives the output root from the input path string. A
// trailing separator on input is dropped first, so "src/" gives "src_txt".
func DefaultOutput(input, suffix string) string {
	return filepath.Clean(input) + suffix
}

// OutputNested reports whether the output root lies strictly inside the
// input root.
func OutputNested(r types.Roots) bool {
	rel, err := filepath.Rel(r.Input, r.Output)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// canonical makes path absolute and evaluates symlinks on the longest
// existing ancestor, reattaching the components that do not exist yet.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	existing, tail := abs, ""
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		tail = filepath.Join(filepath.Base(existing), tail)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolved, tail), nil
}
