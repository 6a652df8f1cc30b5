// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/extmirror/internal/enumerate"
	"github.com/pdiddy/extmirror/internal/mirror"
	"github.com/pdiddy/extmirror/internal/report"
	"github.com/pdiddy/extmirror/internal/resolve"
	"github.com/pdiddy/extmirror/pkg/types"
)

// errNoInputRoot reports a run with neither an argument nor a configured
// input root.
var errNoInputRoot = errors.Base("input root required: pass <input_root> or set input_root")

func runMirror(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper(), args)
	if err != nil {
		return err
	}
	if cfg.InputRoot == "" {
		return errNoInputRoot
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	logger := newLogger(cfg.LogLevel)
	ctx = logger.WithContext(ctx)

	roots, err := resolve.Roots(cfg.InputRoot, cfg.OutputRoot, cfg.Suffix)
	if err != nil {
		return err
	}
	logger.Debug().Str("input", roots.Input).Str("output", roots.Output).Msg("resolved roots")

	rep := &report.Reporter{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	res, err := mirror.Run(ctx, afero.NewOsFs(), mirror.Options{
		Roots:     roots,
		SourceExt: cfg.SourceExt,
		TargetExt: cfg.TargetExt,
		Overwrite: cfg.Overwrite,
		DryRun:    cfg.DryRun,
		Exclude:   cfg.Exclude,
	}, rep)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return &exitError{code: report.ExitInterrupted, err: err}
		}
		return err
	}

	if code := res.ExitCode(); code != report.ExitOK {
		return &exitError{code: code}
	}
	return nil
}

// loadConfig assembles and validates the effective configuration. The
// positional argument, when present, overrides the configured input root.
func loadConfig(v *viper.Viper, args []string) (types.MirrorConfig, error) {
	cfg := types.MirrorConfig{
		InputRoot:  v.GetString("input_root"),
		OutputRoot: v.GetString("output_root"),
		SourceExt:  v.GetString("source_ext"),
		TargetExt:  v.GetString("target_ext"),
		Suffix:     v.GetString("suffix"),
		Overwrite:  v.GetBool("overwrite"),
		DryRun:     v.GetBool("dry_run"),
		Exclude:    v.GetStringSlice("exclude"),
		NoColor:    v.GetBool("no_color"),
		LogLevel:   v.GetString("log_level"),
	}
	if len(args) > 0 {
		cfg.InputRoot = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return types.MirrorConfig{}, errors.Errorf("invalid configuration: %w", err)
	}
	if err := enumerate.ValidatePatterns(cfg.Exclude); err != nil {
		return types.MirrorConfig{}, errors.Errorf("invalid configuration: %w", err)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return types.MirrorConfig{}, errors.Errorf("invalid configuration: log level %q: %w", cfg.LogLevel, err)
	}
	return cfg, nil
}

// newLogger returns a console logger on stderr. level has been validated by
// loadConfig.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}
