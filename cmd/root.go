// Package cmd provides the command-line interface for keywordmerge with
// configuration drawn from several sources.
//
// Configuration precedence, highest first:
//
//  1. Command-line flags (--output, --splitter, ...)
//  2. Environment variables following KEYWORDMERGE_<SECTION>_<KEY>
//  3. The configuration file: --config, then KEYWORDMERGE_CONFIG_FILE, then
//     .keywordmerge.yml in the working directory
//  4. Built-in defaults
//
// Environment Variables:
//
//	KEYWORDMERGE_CONFIG_FILE: path to a configuration file
//	KEYWORDMERGE_INPUTS: comma-separated input files
//	KEYWORDMERGE_OUTPUT_PATH: output file
//	KEYWORDMERGE_FALLBACK_SPLITTER: depth or regex
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conneroisu/keywordmerge/internal/config"
	mergeerrors "github.com/conneroisu/keywordmerge/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the command tree with a fresh configuration.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "keywordmerge",
		Short: "Merge keyword records from loosely formatted log files",
		Long: `keywordmerge reads line-oriented keyword records such as

  {'C1': {'subcategory': {'direction': ['keyword', ...]}}}

from res_1.txt and res_2.txt, merges the keywords of every category matching
C<digits>, and writes the sorted, deduplicated result to combined_result.json.

Lines that do not parse as a whole are split into brace-delimited fragments
and each fragment is tried on its own. Lines that still yield nothing are
reported and skipped; a missing input file stops the run.

Quick Start:
  keywordmerge                         Merge res_1.txt and res_2.txt
  keywordmerge -i a.txt -i b.txt -o out.json
  keywordmerge check                   Parse and report without writing
  keywordmerge config show             Print the effective configuration`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := AddMergeFlags(rootCmd)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runMerge(cmd, flags, true)
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "",
		"config file (default is .keywordmerge.yml, can also use KEYWORDMERGE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")

	rootCmd.AddCommand(
		newCheckCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// ExitCode maps the error returned by Execute to the process exit status:
// 0 on success, 2 for configuration errors and 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case mergeerrors.IsType(err, mergeerrors.ErrorTypeConfig):
		return 2
	default:
		return 1
	}
}

// initConfig wires flags, environment and the configuration file into the
// invocation's viper instance.
func (a *app) initConfig(cmd *cobra.Command) error {
	v := a.v
	config.SetDefaults(v)

	explicit := true
	switch {
	case a.cfgFile != "":
		v.SetConfigFile(a.cfgFile)
	case os.Getenv("KEYWORDMERGE_CONFIG_FILE") != "":
		v.SetConfigFile(os.Getenv("KEYWORDMERGE_CONFIG_FILE"))
	default:
		explicit = false
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".keywordmerge")
	}

	v.SetEnvPrefix("KEYWORDMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"log-level":  "log.level",
		"log-format": "log.format",
		"input":      "inputs",
		"output":     "output.path",
		"format":     "output.format",
		"indent":     "output.indent",
		"splitter":   "fallback.splitter",
		"pattern":    "category_pattern",
		"normalize":  "input.normalize_unicode",
		"max-errors": "report.max_errors",
	}
	if err := bindFlags(v, cmd, bindings); err != nil {
		return mergeerrors.WrapConfig(err, mergeerrors.ErrCodeConfigInvalid, "cannot bind flags")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return nil
		}
		return mergeerrors.WrapConfig(err, mergeerrors.ErrCodeConfigInvalid, "cannot read config file")
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

// bindFlags binds the flags cmd actually has to their configuration keys.
// Binding happens per invocation so that the root and check commands can
// share keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command, bindings map[string]string) error {
	for flagName, key := range bindings {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}
