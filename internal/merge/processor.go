package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	mergeerrors "github.com/conneroisu/keywordmerge/internal/errors"
	"github.com/conneroisu/keywordmerge/internal/literal"
	"github.com/conneroisu/keywordmerge/internal/logging"
	"golang.org/x/text/unicode/norm"
)

// Outcome describes what happened to one input line.
type Outcome int

const (
	// OutcomeEmpty is a blank line.
	OutcomeEmpty Outcome = iota
	// OutcomeMerged is a line that parsed whole and matched a category.
	OutcomeMerged
	// OutcomeSkipped is a line that parsed whole but whose category did not match.
	OutcomeSkipped
	// OutcomeSplit is a line that failed to parse whole and was split into fragments.
	OutcomeSplit
	// OutcomeFailed is a line that failed to parse and yielded no fragments.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeMerged:
		return "merged"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeSplit:
		return "split"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LineResult reports the handling of a single line.
type LineResult struct {
	Outcome Outcome
	// Err is the reason the whole line was not used, located at the line.
	Err error

	FragmentsFound    int
	FragmentsMerged   int
	FragmentsSkipped  int
	FragmentsRejected int
}

// FileStats counts line outcomes for one input file.
type FileStats struct {
	File    string
	Lines   int
	Blank   int
	Merged  int
	Skipped int
	Split   int
	Failed  int

	FragmentsFound    int
	FragmentsMerged   int
	FragmentsSkipped  int
	FragmentsRejected int
}

func (s *FileStats) add(r LineResult) {
	s.Lines++
	switch r.Outcome {
	case OutcomeEmpty:
		s.Blank++
	case OutcomeMerged:
		s.Merged++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeSplit:
		s.Split++
	case OutcomeFailed:
		s.Failed++
	}
	s.FragmentsFound += r.FragmentsFound
	s.FragmentsMerged += r.FragmentsMerged
	s.FragmentsSkipped += r.FragmentsSkipped
	s.FragmentsRejected += r.FragmentsRejected
}

// Options configures a Processor.
type Options struct {
	// CategoryPattern filters top-level categories. Defaults to ^C\d+$.
	CategoryPattern *regexp.Regexp
	// Splitter cuts lines that fail to parse whole. Defaults to DepthSplitter.
	Splitter Splitter
	// NormalizeUnicode applies NFC to each line before parsing.
	NormalizeUnicode bool
	// ErrorLimit caps how many line errors are kept for reporting; zero keeps
	// all. Every error is still counted.
	ErrorLimit int
}

// DefaultCategoryPattern matches C followed by one or more ASCII digits.
var DefaultCategoryPattern = regexp.MustCompile(`^C\d+$`)

// Processor parses input lines and merges their keywords. It is not safe
// for concurrent use.
type Processor struct {
	opts   Options
	acc    *Accumulator
	errors *mergeerrors.Collector
	logger logging.Logger
}

func NewProcessor(opts Options, logger logging.Logger) *Processor {
	if opts.CategoryPattern == nil {
		opts.CategoryPattern = DefaultCategoryPattern
	}
	if opts.Splitter == nil {
		opts.Splitter = DepthSplitter{}
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Processor{
		opts:   opts,
		acc:    NewAccumulator(),
		errors: mergeerrors.NewCollector(opts.ErrorLimit),
		logger: logger.WithComponent("merge"),
	}
}

// Run processes every path in order. It stops at the first file that cannot
// be opened or read; the statistics of the files completed so far are
// returned with the error.
func (p *Processor) Run(ctx context.Context, paths []string) ([]*FileStats, error) {
	op := logging.StartOperation(p.logger, "merge")
	all := make([]*FileStats, 0, len(paths))
	for _, path := range paths {
		stats, err := p.ProcessFile(ctx, path)
		if stats != nil {
			all = append(all, stats)
		}
		if err != nil {
			op.EndWithError(ctx, err)
			return all, err
		}
	}
	op.End(ctx, "files", len(paths), "categories", p.acc.Len())
	return all, nil
}

// ProcessFile reads and processes one input file.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*FileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, mergeerrors.WrapIO(err, mergeerrors.ErrCodeFileOpen, "cannot open input file").
			WithLocation(path, 0, 0)
	}
	defer f.Close()

	return p.ProcessReader(ctx, path, f)
}

// ProcessReader processes the lines of r, naming them file in diagnostics.
func (p *Processor) ProcessReader(ctx context.Context, file string, r io.Reader) (*FileStats, error) {
	stats := &FileStats{File: file}
	lines := newLineReader(r)

	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line, err := lines.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, mergeerrors.WrapIO(err, mergeerrors.ErrCodeFileRead, "cannot read input file").
				WithLocation(file, lineNo, 0)
		}
		stats.add(p.ProcessLine(ctx, file, lineNo, line))
	}

	p.logger.Debug(ctx, "Processed file",
		"file", file,
		"lines", stats.Lines,
		"merged", stats.Merged,
		"split", stats.Split,
		"failed", stats.Failed,
	)
	return stats, nil
}

// ProcessLine handles one line: a whole-line parse first, then the fragment
// fallback. It never returns an error; failures are logged and recorded.
func (p *Processor) ProcessLine(ctx context.Context, file string, lineNo int, line string) LineResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return LineResult{Outcome: OutcomeEmpty}
	}
	if p.opts.NormalizeUnicode {
		line = norm.NFC.String(line)
	}

	matched, err := p.apply(line)
	if err == nil {
		if matched {
			return LineResult{Outcome: OutcomeMerged}
		}
		return LineResult{Outcome: OutcomeSkipped}
	}

	lineErr := locate(err, file, lineNo, 0)
	result := p.split(ctx, file, lineNo, line, lineErr)
	result.Err = lineErr
	if result.Outcome != OutcomeFailed {
		return result
	}

	splitErr := mergeerrors.Wrap(lineErr, mergeerrors.ErrorTypeSplit, mergeerrors.ErrCodeNoFragments,
		"no record fragments found")
	p.errors.Add(splitErr)
	p.logger.Error(ctx, splitErr, "Failed to process line",
		"file", file,
		"line", lineNo,
		"error_type", mergeerrors.Kind(err),
	)
	return result
}

// split runs the fragment fallback on a line that failed to parse whole.
// lineErr is recorded ahead of the fragment errors once a fragment is found.
func (p *Processor) split(ctx context.Context, file string, lineNo int, line string, lineErr error) LineResult {
	fragments := p.opts.Splitter.Split(line)
	if len(fragments) == 0 {
		return LineResult{Outcome: OutcomeFailed}
	}
	p.errors.Add(lineErr)

	result := LineResult{Outcome: OutcomeSplit, FragmentsFound: len(fragments)}
	for _, frag := range fragments {
		if !frag.Balanced {
			result.FragmentsRejected++
			fragErr := mergeerrors.NewSplitError(mergeerrors.ErrCodeUnbalancedFragment, "unbalanced fragment").
				WithLocation(file, lineNo, frag.Offset+1)
			p.errors.Add(fragErr)
			p.logger.Debug(ctx, "Rejected unbalanced fragment", mergeerrors.GetErrorContext(fragErr)...)
			continue
		}
		matched, err := p.apply(frag.Text)
		switch {
		case err != nil:
			result.FragmentsRejected++
			fragErr := locate(err, file, lineNo, frag.Offset)
			p.errors.Add(fragErr)
			p.logger.Debug(ctx, "Rejected fragment",
				append(mergeerrors.GetErrorContext(fragErr), "error", err.Error())...)
		case matched:
			result.FragmentsMerged++
		default:
			result.FragmentsSkipped++
		}
	}

	fields := []interface{}{
		"file", file,
		"line", lineNo,
		"fragments_found", result.FragmentsFound,
		"fragments_merged", result.FragmentsMerged,
	}
	if result.FragmentsMerged == 0 && result.FragmentsSkipped == 0 {
		p.logger.Warn(ctx, nil, fmt.Sprintf("Split and processed line %d", lineNo), fields...)
	} else {
		p.logger.Info(ctx, fmt.Sprintf("Split and processed line %d", lineNo), fields...)
	}
	return result
}

// apply parses text as a record and merges it, reporting whether the
// category matched. A matching record whose shape breaks partway still
// merges what was read before the break, and the error is returned.
func (p *Processor) apply(text string) (bool, error) {
	record, err := literal.ParseDict(text)
	if err != nil {
		return false, err
	}
	contribution, matched, err := Extract(record, p.opts.CategoryPattern)
	if matched {
		p.acc.Add(contribution)
	}
	if err != nil {
		return false, err
	}
	return matched, nil
}

// locate attaches the input position to err. Literal errors become parse
// errors whose column is the offending byte; base is the byte offset of the
// parsed text within the line.
func locate(err error, file string, lineNo, base int) *mergeerrors.MergeError {
	var lerr *literal.Error
	if errors.As(err, &lerr) {
		column := 0
		if lerr.Offset >= 0 {
			column = base + lerr.Offset + 1
		}
		return mergeerrors.WrapParse(err, "not a valid literal").WithLocation(file, lineNo, column)
	}
	var me *mergeerrors.MergeError
	if errors.As(err, &me) {
		return me.WithLocation(file, lineNo, base+1)
	}
	return mergeerrors.Wrap(err, mergeerrors.ErrorTypeInternal, mergeerrors.ErrCodeInternalError,
		"unexpected error").WithLocation(file, lineNo, 0)
}

// Result returns the merged categories.
func (p *Processor) Result() *Result {
	return p.acc.Result()
}

// Errors returns the line errors recorded so far.
func (p *Processor) Errors() *mergeerrors.Collector {
	return p.errors
}
