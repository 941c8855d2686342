package merge

import (
	"errors"
	"testing"

	mergeerrors "github.com/conneroisu/keywordmerge/internal/errors"
	"github.com/conneroisu/keywordmerge/internal/literal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		record   string
		matched  bool
		expected Contribution
		errCode  string
	}{
		{
			name:     "single direction",
			record:   `{'C1': {'sub': {'dir': ['x', 'y']}}}`,
			matched:  true,
			expected: Contribution{Category: "C1", Keywords: []string{"x", "y"}},
		},
		{
			name:   "category not matching",
			record: `{'Z9': {'sub': {'dir': ['x']}}}`,
		},
		{
			name:   "lowercase category not matching",
			record: `{'c1': {'sub': {'dir': ['x']}}}`,
		},
		{
			name:     "falsy subcategories skipped",
			record:   `{'C1': {'a': None, 'b': {}, 'c': [], 'd': {'up': ['k']}}}`,
			matched:  true,
			expected: Contribution{Category: "C1", Keywords: []string{"k"}},
		},
		{
			name:     "only list directions contribute",
			record:   `{'C12': {'a': {'text': 'x', 'tuple': ('t',), 'none': None, 'list': ['k']}}}`,
			matched:  true,
			expected: Contribution{Category: "C12", Keywords: []string{"k"}},
		},
		{
			name:     "empty category registers",
			record:   `{'C3': {}}`,
			matched:  true,
			expected: Contribution{Category: "C3"},
		},
		{
			name:     "only the first key counts",
			record:   `{'C1': {'a': {'d': ['x']}}, 'C2': {'a': {'d': ['y']}}}`,
			matched:  true,
			expected: Contribution{Category: "C1", Keywords: []string{"x"}},
		},
		{
			name:     "keywords keep duplicates and order",
			record:   `{'C1': {'a': {'d': ['b', 'a'], 'e': ['b']}}}`,
			matched:  true,
			expected: Contribution{Category: "C1", Keywords: []string{"b", "a", "b"}},
		},
		{
			name:    "empty record",
			record:  `{}`,
			errCode: mergeerrors.ErrCodeEmptyRecord,
		},
		{
			name:    "non string category",
			record:  `{1: {'a': {'d': ['x']}}}`,
			errCode: mergeerrors.ErrCodeCategoryType,
		},
		{
			name:     "category value not a dict registers the category",
			record:   `{'C1': ['x']}`,
			matched:  true,
			expected: Contribution{Category: "C1"},
			errCode:  mergeerrors.ErrCodeNotMapping,
		},
		{
			name:     "subcategory not a dict",
			record:   `{'C1': {'a': ['x']}}`,
			matched:  true,
			expected: Contribution{Category: "C1"},
			errCode:  mergeerrors.ErrCodeSubcategoryType,
		},
		{
			name:     "keywords before a bad subcategory are kept",
			record:   `{'C1': {'a': {'d': ['x']}, 'b': 5, 'c': {'d': ['y']}}}`,
			matched:  true,
			expected: Contribution{Category: "C1", Keywords: []string{"x"}},
			errCode:  mergeerrors.ErrCodeSubcategoryType,
		},
		{
			name:     "keyword not a string",
			record:   `{'C1': {'a': {'d': ['x', 2, 'y']}, 'b': {'d': ['z']}}}`,
			matched:  true,
			expected: Contribution{Category: "C1", Keywords: []string{"x", "y"}},
			errCode:  mergeerrors.ErrCodeKeywordType,
		},
		{
			name:   "bad shape under a non matching category",
			record: `{'Z1': 5}`,
		},
		{
			name:   "category with trailing newline",
			record: `{'C1\n': {'a': {'d': ['x']}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := literal.ParseDict(tt.record)
			require.NoError(t, err)

			got, matched, err := Extract(record, DefaultCategoryPattern)
			if tt.errCode != "" {
				require.Error(t, err)
				var me *mergeerrors.MergeError
				require.True(t, errors.As(err, &me))
				assert.Equal(t, tt.errCode, me.Code)
				assert.Equal(t, mergeerrors.ErrorTypeRecord, me.Type)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.matched, matched)
			if tt.matched {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestExtractNilRecord(t *testing.T) {
	_, _, err := Extract(nil, DefaultCategoryPattern)
	assert.True(t, errors.Is(err, mergeerrors.NewRecordError(mergeerrors.ErrCodeEmptyRecord, "")))
}
