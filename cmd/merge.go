package cmd

import (
	"github.com/conneroisu/keywordmerge/internal/config"
	"github.com/conneroisu/keywordmerge/internal/logging"
	"github.com/conneroisu/keywordmerge/internal/merge"
	"github.com/conneroisu/keywordmerge/internal/output"
	"github.com/spf13/cobra"
)

// runMerge processes the configured inputs and, when write is set, writes
// the merged result. Line-level problems are only logged; a missing or
// unreadable input file or an unwritable output aborts the run.
func (a *app) runMerge(cmd *cobra.Command, flags *MergeFlags, write bool) error {
	if err := flags.ValidateFlags(); err != nil {
		return err
	}

	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	loggerConfig := cfg.LoggerConfig()
	loggerConfig.Output = out
	if flags.Quiet && loggerConfig.Level < logging.LevelWarn {
		loggerConfig.Level = logging.LevelWarn
	}
	logger := logging.NewLogger(loggerConfig)

	splitter, err := merge.NewSplitter(cfg.Fallback.Splitter)
	if err != nil {
		return err
	}

	processor := merge.NewProcessor(merge.Options{
		CategoryPattern:  cfg.CategoryRegexp(),
		Splitter:         splitter,
		NormalizeUnicode: cfg.Input.NormalizeUnicode,
		ErrorLimit:       cfg.Report.MaxErrors,
	}, logger)

	ctx := cmd.Context()
	logger.Debug(ctx, "Starting merge",
		"inputs", cfg.Inputs,
		"splitter", splitter.Name(),
		"category_pattern", cfg.CategoryPattern,
	)

	stats, err := processor.Run(ctx, cfg.Inputs)
	if err != nil {
		return err
	}
	result := processor.Result()

	if write {
		if err := output.WriteFile(cfg.Output.Path, result, cfg.Output.Format, cfg.Output.Indent); err != nil {
			return err
		}
		logger.Debug(ctx, "Wrote result",
			"path", cfg.Output.Path,
			"format", cfg.Output.Format,
			"categories", len(result.Categories),
		)
	}

	if flags.Verbose {
		output.PrintStats(out, stats)
		if errs := processor.Errors(); errs.HasErrors() {
			codes, counts := errs.CountByCode()
			for _, code := range codes {
				logger.Info(ctx, "Line errors", "code", code, "count", counts[code])
			}
			output.PrintErrors(out, errs, cfg.Inputs)
		}
	}
	if !flags.Quiet {
		output.PrintSummary(out, result)
	}
	return nil
}
