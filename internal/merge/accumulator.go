package merge

import "sort"

// Accumulator collects keyword sets per category. Categories keep the order
// in which they were first seen; keywords are deduplicated.
type Accumulator struct {
	order []string
	sets  map[string]map[string]struct{}
}

func NewAccumulator() *Accumulator {
	return &Accumulator{sets: make(map[string]map[string]struct{})}
}

// Add merges c into the accumulator. The category is registered even when c
// carries no keywords.
func (a *Accumulator) Add(c Contribution) {
	set, ok := a.sets[c.Category]
	if !ok {
		set = make(map[string]struct{}, len(c.Keywords))
		a.sets[c.Category] = set
		a.order = append(a.order, c.Category)
	}
	for _, kw := range c.Keywords {
		set[kw] = struct{}{}
	}
}

// Len returns the number of categories.
func (a *Accumulator) Len() int { return len(a.order) }

// Count returns the number of distinct keywords held for category.
func (a *Accumulator) Count(category string) int { return len(a.sets[category]) }

// Result converts the sets to sorted keyword lists.
func (a *Accumulator) Result() *Result {
	result := &Result{Categories: make([]Category, 0, len(a.order))}
	for _, name := range a.order {
		keywords := make([]string, 0, len(a.sets[name]))
		for kw := range a.sets[name] {
			keywords = append(keywords, kw)
		}
		sort.Strings(keywords)
		result.Categories = append(result.Categories, Category{Name: name, Keywords: keywords})
	}
	return result
}

// Category is one entry of the final result.
type Category struct {
	Name     string
	Keywords []string
}

// Result is the merged output: categories in first-seen order, each with an
// ascending, duplicate-free keyword list.
type Result struct {
	Categories []Category
}

// Get returns the keywords of category.
func (r *Result) Get(category string) ([]string, bool) {
	for _, c := range r.Categories {
		if c.Name == category {
			return c.Keywords, true
		}
	}
	return nil, false
}

// Names returns the category names in sorted order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}
