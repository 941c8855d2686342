package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/conneroisu/keywordmerge/internal/config"
	mergeerrors "github.com/conneroisu/keywordmerge/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect keywordmerge configuration",
		Long: `Inspect the configuration assembled from defaults, the configuration file,
environment variables and flags.

Examples:
  keywordmerge config show                 # Show the effective configuration
  keywordmerge config show --format json   # ... as JSON
  keywordmerge config validate             # Check the configuration
  keywordmerge --config ci.yml config validate`,
	}

	var showFormat string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(a.v)
			if err != nil {
				return err
			}
			return showConfig(cmd, cfg, showFormat)
		},
	}
	showCmd.Flags().StringVar(&showFormat, "format", "yaml", "Output format (yaml|json)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadFrom(a.v); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), mergeerrors.FormatErrorWithSuggestions(err))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	}

	configCmd.AddCommand(showCmd, validateCmd)
	return configCmd
}

func showConfig(cmd *cobra.Command, cfg *config.Config, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "yaml", "yml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(cfg)
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg)
	default:
		return mergeerrors.NewConfigError(mergeerrors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported format: %s (supported: yaml, json)", format))
	}
}
