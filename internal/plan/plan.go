// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan maps source files onto the mirrored output tree. Everything
// here is pure path arithmetic.
package plan

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/extmirror/pkg/types"
)

// Destination computes the TransferRecord for src. The path of src relative
// to roots.Input is reapplied under roots.Output and its trailing srcExt is
// replaced by dstExt. A base name that is srcExt alone (".m") has no stem,
// so dstExt is appended to it instead.
func Destination(roots types.Roots, src, srcExt, dstExt string) (types.TransferRecord, error) {
	rel, err := filepath.Rel(roots.Input, src)
	if err != nil {
		return types.TransferRecord{}, errors.Errorf("relative path of %s: %w", src, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return types.TransferRecord{}, errors.Errorf("%s is not under %s", src, roots.Input)
	}

	base := filepath.Base(rel)
	if !strings.HasSuffix(base, srcExt) {
		return types.TransferRecord{}, errors.Errorf("%s does not end in %s", src, srcExt)
	}

	mapped := rel + dstExt
	if base != srcExt {
		mapped = strings.TrimSuffix(rel, srcExt) + dstExt
	}

	return types.TransferRecord{
		Source:      src,
		Destination: filepath.Join(roots.Output, mapped),
		Rel:         rel,
	}, nil
}
