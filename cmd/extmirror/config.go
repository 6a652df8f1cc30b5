// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/extmirror/internal/resolve"
	"github.com/pdiddy/extmirror/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config [input_root]",
	Short: "Print the effective configuration as YAML",
	Long: `Config merges flags, EXTMIRROR_* environment variables, and the config
file, then prints the result. The output can be saved as extmirror.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper(), args)
		if err != nil {
			return err
		}
		out, err := formatConfig(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// formatConfig renders cfg as YAML, filling in the derived output root.
func formatConfig(cfg types.MirrorConfig) (string, error) {
	if cfg.OutputRoot == "" && cfg.InputRoot != "" {
		cfg.OutputRoot = resolve.DefaultOutput(cfg.InputRoot, cfg.Suffix)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.Errorf("encoding configuration: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
}
