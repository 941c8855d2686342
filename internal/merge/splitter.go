package merge

import (
	"fmt"
	"regexp"
	"strings"
)

// Fragment is a candidate record cut out of a line that failed to parse.
type Fragment struct {
	Text string
	// Offset is the byte offset of Text within the line.
	Offset int
	// Balanced is false when the fragment's braces do not pair up.
	// Unbalanced fragments are never parsed.
	Balanced bool
}

// Splitter cuts a line into fragments.
type Splitter interface {
	Name() string
	Split(line string) []Fragment
}

// NewSplitter returns the splitter registered under name.
func NewSplitter(name string) (Splitter, error) {
	switch name {
	case "depth", "":
		return DepthSplitter{}, nil
	case "regex":
		return RegexSplitter{}, nil
	default:
		return nil, fmt.Errorf("unknown splitter %q", name)
	}
}

// fragmentPattern matches a brace group containing at most one level of
// nested groups.
var fragmentPattern = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\})*[^{}]*\}`)

// RegexSplitter finds fragments with a pattern that understands one level of
// nesting. Deeper records are cut at their innermost groups, which then fail
// the category check or the parse.
type RegexSplitter struct{}

func (RegexSplitter) Name() string { return "regex" }

func (RegexSplitter) Split(line string) []Fragment {
	matches := fragmentPattern.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return nil
	}
	fragments := make([]Fragment, 0, len(matches))
	for _, m := range matches {
		text := line[m[0]:m[1]]
		fragments = append(fragments, Fragment{
			Text:     text,
			Offset:   m[0],
			Balanced: strings.Count(text, "{") == strings.Count(text, "}"),
		})
	}
	return fragments
}

// DepthSplitter tracks brace depth and skips braces inside quoted strings,
// so it cuts records of any depth at their top-level groups. A group still
// open at the end of the line is returned unbalanced. Closing braces outside
// any group are ignored.
type DepthSplitter struct{}

func (DepthSplitter) Name() string { return "depth" }

func (DepthSplitter) Split(line string) []Fragment {
	var fragments []Fragment
	depth, start := 0, 0

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case depth > 0 && (c == '\'' || c == '"'):
			i = skipQuoted(line, i) - 1
		case c == '{':
			if depth == 0 {
				start = i
			}
			depth++
		case c == '}' && depth > 0:
			depth--
			if depth == 0 {
				fragments = append(fragments, Fragment{Text: line[start : i+1], Offset: start, Balanced: true})
			}
		}
	}

	if depth > 0 {
		fragments = append(fragments, Fragment{Text: line[start:], Offset: start, Balanced: false})
	}
	return fragments
}

// skipQuoted returns the index just past the string literal opening at i,
// or len(line) when it never closes. Triple quotes are recognised.
func skipQuoted(line string, i int) int {
	quote := line[i]
	closing := string(quote)
	if strings.HasPrefix(line[i:], strings.Repeat(closing, 3)) {
		closing = strings.Repeat(closing, 3)
	}

	j := i + len(closing)
	for j < len(line) {
		switch {
		case line[j] == '\\':
			j += 2
		case strings.HasPrefix(line[j:], closing):
			return j + len(closing)
		case len(closing) == 1 && line[j] == '\n':
			return j
		default:
			j++
		}
	}
	return len(line)
}
