package cmd

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"c"},
		Short:   "Parse and merge the inputs without writing the result",
		Long: `Run the full parse and merge over the inputs and print the diagnostics and
summary, but leave the output file untouched.

Examples:
  keywordmerge check                   # Check res_1.txt and res_2.txt
  keywordmerge check -v                # Also print per-file statistics
  keywordmerge check -i today.txt --splitter regex`,
		Args: cobra.NoArgs,
	}

	flags := AddMergeFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.runMerge(cmd, flags, false)
	}
	return cmd
}
