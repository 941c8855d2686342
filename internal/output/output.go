// Package output renders the merged result as JSON or YAML and prints the
// run summary.
package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	mergeerrors "github.com/conneroisu/keywordmerge/internal/errors"
	"github.com/conneroisu/keywordmerge/internal/merge"
	"gopkg.in/yaml.v3"
)

// Encode writes result to w in format ("json" or "yaml"). Categories keep
// their first-seen order.
func Encode(w io.Writer, result *merge.Result, format string, indent int) error {
	switch strings.ToLower(format) {
	case "json", "":
		return EncodeJSON(w, result, indent)
	case "yaml", "yml":
		return EncodeYAML(w, result, indent)
	default:
		return mergeerrors.NewConfigError(mergeerrors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported output format: %s", format))
	}
}

// EncodeJSON writes result as a JSON object indented by indent spaces.
// Non-ASCII text and the characters <, > and & are written literally.
func EncodeJSON(w io.Writer, result *merge.Result, indent int) error {
	var compact bytes.Buffer
	enc := json.NewEncoder(&compact)
	enc.SetEscapeHTML(false)

	compact.WriteByte('{')
	for i, category := range result.Categories {
		if i > 0 {
			compact.WriteByte(',')
		}
		if err := enc.Encode(category.Name); err != nil {
			return err
		}
		compact.WriteByte(':')
		keywords := category.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		if err := enc.Encode(keywords); err != nil {
			return err
		}
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return err
	}
	out.WriteByte('\n')

	_, err := w.Write(out.Bytes())
	return err
}

// EncodeYAML writes result as a YAML mapping from category to keyword list.
func EncodeYAML(w io.Writer, result *merge.Result, indent int) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, category := range result.Categories {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, kw := range category.Keywords {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kw})
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: category.Name},
			seq,
		)
	}

	encoder := yaml.NewEncoder(w)
	if indent > 0 {
		encoder.SetIndent(indent)
	}
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteFile encodes result to path, replacing any existing file.
func WriteFile(path string, result *merge.Result, format string, indent int) error {
	f, err := os.Create(path)
	if err != nil {
		return mergeerrors.WrapIO(err, mergeerrors.ErrCodeFileWrite, "cannot create output file").
			WithLocation(path, 0, 0)
	}

	bw := bufio.NewWriter(f)
	if err := Encode(bw, result, format, indent); err != nil {
		f.Close()
		return mergeerrors.WrapIO(err, mergeerrors.ErrCodeFileWrite, "cannot write output file").
			WithLocation(path, 0, 0)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return mergeerrors.WrapIO(err, mergeerrors.ErrCodeFileWrite, "cannot write output file").
			WithLocation(path, 0, 0)
	}
	if err := f.Close(); err != nil {
		return mergeerrors.WrapIO(err, mergeerrors.ErrCodeFileWrite, "cannot close output file").
			WithLocation(path, 0, 0)
	}
	return nil
}

// PrintSummary prints the category count followed by the keyword count of
// each category in sorted order.
func PrintSummary(w io.Writer, result *merge.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Processing complete!")
	fmt.Fprintf(w, "Found %d top-level categories:\n", len(result.Categories))
	for _, name := range result.Names() {
		keywords, _ := result.Get(name)
		fmt.Fprintf(w, "%s: %d keywords\n", name, len(keywords))
	}
}

// PrintStats prints a table of per-file line and fragment counts.
func PrintStats(w io.Writer, stats []*merge.FileStats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "FILE\tLINES\tBLANK\tMERGED\tSKIPPED\tSPLIT\tFAILED\tFRAGMENTS\tFRAG MERGED\tFRAG SKIPPED\tFRAG REJECTED")
	var total merge.FileStats
	for _, s := range stats {
		printStatsRow(tw, s.File, s)
		total.Lines += s.Lines
		total.Blank += s.Blank
		total.Merged += s.Merged
		total.Skipped += s.Skipped
		total.Split += s.Split
		total.Failed += s.Failed
		total.FragmentsFound += s.FragmentsFound
		total.FragmentsMerged += s.FragmentsMerged
		total.FragmentsSkipped += s.FragmentsSkipped
		total.FragmentsRejected += s.FragmentsRejected
	}
	if len(stats) > 1 {
		printStatsRow(tw, "total", &total)
	}
}

func printStatsRow(w io.Writer, name string, s *merge.FileStats) {
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
		name, s.Lines, s.Blank, s.Merged, s.Skipped, s.Split, s.Failed,
		s.FragmentsFound, s.FragmentsMerged, s.FragmentsSkipped, s.FragmentsRejected)
}

// PrintErrors lists the kept line errors grouped by input file, in the order
// of files, and notes how many were dropped by the error limit.
func PrintErrors(w io.Writer, errs *mergeerrors.Collector, files []string) {
	if !errs.HasErrors() {
		return
	}
	fmt.Fprintf(w, "\nLine errors: %d\n", errs.Total())
	seen := make(map[string]bool, len(files))
	for _, file := range files {
		if seen[file] {
			continue
		}
		seen[file] = true
		fileErrs := errs.ByFile(file)
		if len(fileErrs) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", file)
		for _, err := range fileErrs {
			fmt.Fprintf(w, "  %s\n", err.Error())
		}
	}
	if dropped := errs.Total() - len(errs.Errors()); dropped > 0 {
		fmt.Fprintf(w, "... %d more not shown (raise report.max_errors to see them)\n", dropped)
	}
}
