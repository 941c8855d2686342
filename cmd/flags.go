package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// MergeFlags are the flags shared by the commands that run a merge.
// Flags that map to configuration keys are bound to viper when the command
// runs; the fields here only hold values that are not configuration.
type MergeFlags struct {
	Inputs    []string
	Output    string
	Format    string
	Indent    int
	Splitter  string
	Pattern   string
	MaxErrors int

	Normalize bool
	Verbose   bool
	Quiet     bool
}

// AddMergeFlags adds the merge flags to cmd.
func AddMergeFlags(cmd *cobra.Command) *MergeFlags {
	flags := &MergeFlags{}
	addInputFlags(cmd.Flags(), flags)
	addOutputFlags(cmd.Flags(), flags)
	return flags
}

func addInputFlags(fs *pflag.FlagSet, flags *MergeFlags) {
	fs.StringSliceVarP(&flags.Inputs, "input", "i", nil, "Input file (repeatable, default res_1.txt and res_2.txt)")
	fs.StringVar(&flags.Splitter, "splitter", "", "Fallback splitter for unparseable lines (depth|regex)")
	fs.StringVar(&flags.Pattern, "pattern", "", `Category pattern (default ^C\d+$)`)
	fs.BoolVar(&flags.Normalize, "normalize", false, "NFC-normalize lines before parsing")
}

func addOutputFlags(fs *pflag.FlagSet, flags *MergeFlags) {
	fs.StringVarP(&flags.Output, "output", "o", "", "Output file (default combined_result.json)")
	fs.StringVarP(&flags.Format, "format", "f", "", "Output format (json|yaml)")
	fs.IntVar(&flags.Indent, "indent", 2, "Output indentation width")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "Print per-file statistics")
	fs.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress the summary and informational diagnostics")
	fs.IntVar(&flags.MaxErrors, "max-errors", 20, "Line errors listed with --verbose (0 lists all)")
}

// ValidateFlags checks flag combinations that configuration validation
// cannot see.
func (f *MergeFlags) ValidateFlags() error {
	if f.Quiet && f.Verbose {
		return fmt.Errorf("cannot specify both --quiet and --verbose")
	}
	return nil
}
