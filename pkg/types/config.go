// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultSourceExt is the extension selected when none is configured.
	DefaultSourceExt = ".m"
	// DefaultTargetExt is the extension written when none is configured.
	DefaultTargetExt = ".txt"
)

// ErrInvalidExtension is returned by Validate for an unusable extension.
var ErrInvalidExtension = errors.Base("invalid extension")

// MirrorConfig is the effective configuration of one run, assembled from
// flags, environment, and the optional config file.
type MirrorConfig struct {
	// InputRoot is the directory to walk, as supplied by the user.
	InputRoot string `json:"input_root" yaml:"input_root"`

	// OutputRoot is the mirror root. Empty means InputRoot + Suffix.
	OutputRoot string `json:"output_root,omitempty" yaml:"output_root,omitempty"`

	// SourceExt selects files by case-sensitive name suffix (default ".m").
	SourceExt string `json:"source_ext" yaml:"source_ext"`

	// TargetExt replaces SourceExt on every destination (default ".txt").
	TargetExt string `json:"target_ext" yaml:"target_ext"`

	// Suffix is appended to InputRoot to derive the default OutputRoot.
	// Empty means "_" followed by TargetExt without its dot.
	Suffix string `json:"suffix" yaml:"suffix"`

	// Overwrite replaces existing destinations instead of skipping them.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// DryRun reports planned transfers without touching the filesystem.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Exclude lists doublestar patterns matched against relative source paths.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// NoColor disables colored status tags.
	NoColor bool `json:"no_color" yaml:"no_color"`

	// LogLevel is the zerolog level for diagnostics on stderr.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Validate normalizes extensions and fills derived defaults in place.
func (c *MirrorConfig) Validate() error {
	src, err := normalizeExt(c.SourceExt, DefaultSourceExt)
	if err != nil {
		return errors.Errorf("source extension: %w", err)
	}
	dst, err := normalizeExt(c.TargetExt, DefaultTargetExt)
	if err != nil {
		return errors.Errorf("target extension: %w", err)
	}
	c.SourceExt, c.TargetExt = src, dst

	if c.Suffix == "" {
		c.Suffix = "_" + strings.TrimPrefix(c.TargetExt, ".")
	}
	if strings.ContainsAny(c.Suffix, `/\`) {
		return errors.Errorf("suffix %q must not contain a path separator", c.Suffix)
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return nil
}

// normalizeExt adds a missing leading dot and rejects empty or path-like values.
func normalizeExt(ext, fallback string) (string, error) {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return fallback, nil
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext == "." || strings.ContainsAny(ext, `/\`) {
		return "", errors.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return ext, nil
}
