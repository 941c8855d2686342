//go:build property

package errors

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCollectorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("total counts every error regardless of limit", prop.ForAll(
		func(limit, count int) bool {
			collector := NewCollector(limit)
			for i := 0; i < count; i++ {
				collector.Add(NewSplitError(ErrCodeNoFragments, fmt.Sprintf("line %d", i)))
			}
			kept := len(collector.Errors())
			if collector.Total() != count {
				return false
			}
			if limit > 0 && count > limit {
				return kept == limit
			}
			return kept == count
		},
		gen.IntRange(-2, 20),
		gen.IntRange(0, 60),
	))

	properties.Property("code counts sum to kept errors", prop.ForAll(
		func(codes []int) bool {
			all := []string{ErrCodeInvalidLiteral, ErrCodeNotMapping, ErrCodeNoFragments, ErrCodeKeywordType}
			collector := NewCollector(0)
			for _, c := range codes {
				collector.Add(NewRecordError(all[c], "bad record"))
			}
			names, counts := collector.CountByCode()
			sum := 0
			for i, name := range names {
				if i > 0 && names[i-1] >= name {
					return false
				}
				sum += counts[name]
			}
			return sum == len(collector.Errors())
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.Property("wrapped errors keep their kind", prop.ForAll(
		func(message string) bool {
			err := WrapIO(fmt.Errorf("%s", message), ErrCodeFileRead, "read failed")
			return Kind(err) == ErrCodeFileRead && IsType(err, ErrorTypeIO) && !err.Recoverable
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
