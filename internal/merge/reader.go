package merge

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lineReader yields the lines of a UTF-8 text stream. A leading byte order
// mark is dropped and invalid bytes decode to U+FFFD. "\n", "\r\n" and a lone
// "\r" all end a line. Lines have no length limit.
type lineReader struct {
	r       *bufio.Reader
	pending []string
	done    bool
}

func newLineReader(r io.Reader) *lineReader {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return &lineReader{r: bufio.NewReader(transform.NewReader(r, decoder))}
}

// next returns the next line without its terminator. It returns io.EOF after
// the last line.
func (lr *lineReader) next() (string, error) {
	for len(lr.pending) == 0 {
		if lr.done {
			return "", io.EOF
		}
		chunk, err := lr.r.ReadString('\n')
		if err == io.EOF {
			lr.done = true
			if chunk == "" {
				return "", io.EOF
			}
		} else if err != nil {
			return "", err
		}

		chunk = strings.TrimSuffix(chunk, "\n")
		chunk = strings.TrimSuffix(chunk, "\r")
		lr.pending = strings.Split(chunk, "\r")
	}

	line := lr.pending[0]
	lr.pending = lr.pending[1:]
	return line, nil
}
