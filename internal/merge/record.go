// Package merge turns loosely formatted keyword records into per-category
// keyword sets.
//
// A record is one line holding a literal of the shape
//
//	{'C1': {'subcategory': {'direction': ['keyword', ...]}}}
//
// Lines that do not parse as a whole are split into brace-delimited
// fragments and each fragment is tried on its own.
package merge

import (
	"fmt"
	"regexp"

	mergeerrors "github.com/conneroisu/keywordmerge/internal/errors"
	"github.com/conneroisu/keywordmerge/internal/literal"
)

// Contribution is what one record adds to the accumulator.
type Contribution struct {
	Category string
	Keywords []string
}

// Extract reads the category and keywords out of a parsed record.
//
// It reports ok=false when the first key does not match pattern; such records
// contribute nothing and are not errors. Once the category matches, the
// record registers it and contributes every keyword list reached before a
// shape error: the returned contribution stays valid alongside the error.
// A list holding a non-string keyword still contributes its strings.
func Extract(record *literal.Dict, pattern *regexp.Regexp) (Contribution, bool, error) {
	if record == nil || record.Len() == 0 {
		return Contribution{}, false, mergeerrors.NewRecordError(mergeerrors.ErrCodeEmptyRecord, "record has no keys")
	}

	key, value := record.Entry(0)
	category, isString := key.(string)
	if !isString {
		return Contribution{}, false, mergeerrors.NewRecordError(mergeerrors.ErrCodeCategoryType,
			fmt.Sprintf("category key must be a string, got %s", literal.TypeName(key)))
	}
	if !pattern.MatchString(category) {
		return Contribution{}, false, nil
	}

	contribution := Contribution{Category: category}
	subcategories, isDict := value.(*literal.Dict)
	if !isDict {
		return contribution, true, mergeerrors.NewRecordError(mergeerrors.ErrCodeNotMapping,
			fmt.Sprintf("value of %s must be a dict, got %s", category, literal.TypeName(value))).
			WithContext("category", category)
	}

	for _, sub := range subcategories.Values() {
		if !literal.Truthy(sub) {
			continue
		}
		directions, isDict := sub.(*literal.Dict)
		if !isDict {
			return contribution, true, mergeerrors.NewRecordError(mergeerrors.ErrCodeSubcategoryType,
				fmt.Sprintf("subcategory of %s must be a dict, got %s", category, literal.TypeName(sub))).
				WithContext("category", category)
		}
		for _, direction := range directions.Values() {
			keywords, isList := direction.(literal.List)
			if !isList {
				continue
			}
			badType := ""
			for _, kw := range keywords {
				s, isString := kw.(string)
				if !isString {
					if badType == "" {
						badType = literal.TypeName(kw)
					}
					continue
				}
				contribution.Keywords = append(contribution.Keywords, s)
			}
			if badType != "" {
				return contribution, true, mergeerrors.NewRecordError(mergeerrors.ErrCodeKeywordType,
					fmt.Sprintf("keyword in %s must be a string, got %s", category, badType)).
					WithContext("category", category)
			}
		}
	}

	return contribution, true, nil
}
