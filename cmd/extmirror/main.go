// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the extmirror CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"

	"github.com/pdiddy/extmirror/internal/report"
)

// version is set at build time via ldflags.
var version = "dev"

// exitError carries a process exit status out of a command. Its message, if
// any, has not been printed yet.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// rootCmd mirrors a source tree; subcommands expose version and config.
var rootCmd = &cobra.Command{
	Use:   "extmirror [flags] [input_root]",
	Short: "Copy files of one extension into a mirrored tree with another extension",
	Long: `extmirror walks input_root recursively, finds every file ending in the
source extension (default .m), and writes a byte-identical copy under the
output root with the target extension (default .txt). Relative paths are
preserved. Existing destinations are skipped unless --overwrite is given;
--dry-run only reports what would be written.

input_root may instead come from the input_root config key or the
EXTMIRROR_INPUT_ROOT environment variable; the argument wins.

Exit status is 0 when every file converted or was skipped, 2 when at least
one file failed, 130 when interrupted, and 1 when the run could not start.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMirror,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./extmirror.yaml or ~/.config/extmirror/extmirror.yaml)")

	registerFlags(rootCmd.PersistentFlags())
	if err := bindFlags(viper.GetViper(), rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

// registerFlags declares the mirror flags. They are persistent so that the
// config subcommand sees the same values.
func registerFlags(f *pflag.FlagSet) {
	f.StringP("output-root", "o", "", "output folder root (default: <input_root><suffix>)")
	f.Bool("overwrite", false, "overwrite existing destination files")
	f.Bool("dry-run", false, "show what would be done without writing files")
	f.String("source-ext", ".m", "extension of files to copy (case-sensitive)")
	f.String("target-ext", ".txt", "extension given to the copies")
	f.String("suffix", "", `suffix appended to input_root for the default output root (default: "_" + target extension)`)
	f.StringArray("exclude", nil, "doublestar pattern of relative paths to leave out (repeatable)")
	f.Bool("no-color", false, "disable colored status tags")
	f.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
}

// flagKeys maps root flags to their config and environment keys.
var flagKeys = map[string]string{
	"output-root": "output_root",
	"overwrite":   "overwrite",
	"dry-run":     "dry_run",
	"source-ext":  "source_ext",
	"target-ext":  "target_ext",
	"suffix":      "suffix",
	"exclude":     "exclude",
	"no-color":    "no_color",
	"log-level":   "log_level",
}

func bindFlags(v *viper.Viper, f *pflag.FlagSet) error {
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, f.Lookup(flag)); err != nil {
			return errors.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configureViper(viper.GetViper(), cfgFile)

	found, err := readConfig(viper.GetViper(), cfgFile != "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(report.ExitFatal)
	}
	if found {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configureViper points v at cfgFile, or at extmirror.yaml in the working
// directory and ~/.config/extmirror when cfgFile is empty.
func configureViper(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("extmirror")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "extmirror"))
		}
	}

	v.SetEnvPrefix("EXTMIRROR")
	v.AutomaticEnv()
}

// readConfig loads the configured file. A missing file in a default location
// is not an error; an explicit file that is missing, or any file that cannot
// be parsed, is.
func readConfig(v *viper.Viper, explicit bool) (bool, error) {
	err := v.ReadInConfig()
	if err == nil {
		return true, nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return false, nil
	}
	return false, errors.Errorf("reading config file: %w", err)
}

// exitCode maps an error returned by rootCmd to a process exit status.
func exitCode(err error) int {
	if err == nil {
		return report.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return report.ExitFatal
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var ee *exitError
	if !errors.As(err, &ee) || ee.err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}
