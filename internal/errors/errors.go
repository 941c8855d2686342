package errors

import (
	"errors"
	"sort"
)

// Collector gathers the recoverable errors of a run so they can be
// reported after processing.
type Collector struct {
	errors []*MergeError
	limit  int
	total  int
}

// NewCollector creates a collector keeping at most limit errors.
// A limit of zero or less keeps every error.
func NewCollector(limit int) *Collector {
	return &Collector{
		errors: make([]*MergeError, 0),
		limit:  limit,
	}
}

// Add records err. Errors that are not MergeErrors are wrapped as internal errors.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.total++
	if c.limit > 0 && len(c.errors) >= c.limit {
		return
	}

	var me *MergeError
	if !errors.As(err, &me) {
		me = NewInternalError(ErrCodeInternalError, "unexpected error", err)
	}
	c.errors = append(c.errors, me)
}

// Errors returns a copy of the kept errors in insertion order.
func (c *Collector) Errors() []*MergeError {
	result := make([]*MergeError, len(c.errors))
	copy(result, c.errors)
	return result
}

// Total returns how many errors were added, including those dropped by the limit.
func (c *Collector) Total() int {
	return c.total
}

// HasErrors returns true if any error was added.
func (c *Collector) HasErrors() bool {
	return c.total > 0
}

// ByFile returns the kept errors for one input file.
func (c *Collector) ByFile(file string) []*MergeError {
	var out []*MergeError
	for _, err := range c.errors {
		if err.File == file {
			out = append(out, err)
		}
	}
	return out
}

// CountByCode returns how many kept errors carry each code, with codes in
// sorted order.
func (c *Collector) CountByCode() ([]string, map[string]int) {
	counts := make(map[string]int)
	for _, err := range c.errors {
		counts[err.Code]++
	}
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, counts
}
