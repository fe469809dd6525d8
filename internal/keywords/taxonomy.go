// Package keywords extracts technical keywords from free text by matching tokens
// against a categorized taxonomy, then scores and compares the results.
package keywords

import (
	"fmt"
	"strings"
)

// DefaultWeight is the weight of any category without an explicit entry.
const DefaultWeight = 1.0

// Category is a named, ordered list of canonical keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is an immutable catalog of categories and their weights.
// Categories may share keywords. A Taxonomy is safe for concurrent use.
type Taxonomy struct {
	categories []Category
	weights    map[string]float64

	// all holds every keyword once, in category declaration order
	// followed by insertion order within the category.
	all      []string
	memberOf map[string][]string
}

// NewTaxonomy validates categories and weights and builds a Taxonomy.
// weights may be nil; categories without a weight use DefaultWeight.
func NewTaxonomy(categories []Category, weights map[string]float64) (*Taxonomy, error) {
	if len(categories) == 0 {
		return nil, &TaxonomyError{Message: "taxonomy has no categories"}
	}

	t := &Taxonomy{
		categories: make([]Category, 0, len(categories)),
		weights:    make(map[string]float64, len(weights)),
		memberOf:   make(map[string][]string),
	}

	seenCategory := make(map[string]bool, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, &TaxonomyError{Message: "category name is empty"}
		}
		if seenCategory[c.Name] {
			return nil, &TaxonomyError{Category: c.Name, Message: "duplicate category"}
		}
		seenCategory[c.Name] = true

		seenKeyword := make(map[string]bool, len(c.Keywords))
		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if err := validateKeyword(kw); err != nil {
				return nil, &TaxonomyError{Category: c.Name, Keyword: kw, Message: err.Error()}
			}
			if seenKeyword[kw] {
				return nil, &TaxonomyError{Category: c.Name, Keyword: kw, Message: "duplicate keyword in category"}
			}
			seenKeyword[kw] = true
			kws = append(kws, kw)

			if _, known := t.memberOf[kw]; !known {
				t.all = append(t.all, kw)
			}
			t.memberOf[kw] = append(t.memberOf[kw], c.Name)
		}
		t.categories = append(t.categories, Category{Name: c.Name, Keywords: kws})
	}

	for name, w := range weights {
		if !seenCategory[name] {
			return nil, &TaxonomyError{Category: name, Message: "weight given for unknown category"}
		}
		if w <= 0 {
			return nil, &TaxonomyError{Category: name, Message: fmt.Sprintf("weight must be positive, got %v", w)}
		}
		t.weights[name] = w
	}

	return t, nil
}

// validateKeyword accepts lowercase keywords built from the token alphabet.
// '-' is tolerated so legacy entries such as "problem-solving" load; such
// keywords can only ever be reached through partial matching.
func validateKeyword(kw string) error {
	if kw == "" {
		return fmt.Errorf("keyword is empty")
	}
	for _, r := range kw {
		if !isTokenChar(r) && r != '-' {
			return fmt.Errorf("keyword contains invalid character %q", r)
		}
	}
	return nil
}

// Categories returns a copy of the categories in declaration order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// CategoryNames returns category names in declaration order.
func (t *Taxonomy) CategoryNames() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// AllKeywords returns the union of all category keywords in definition order.
func (t *Taxonomy) AllKeywords() []string {
	return append([]string(nil), t.all...)
}

// Contains reports whether kw belongs to at least one category.
func (t *Taxonomy) Contains(kw string) bool {
	_, ok := t.memberOf[kw]
	return ok
}

// CategoriesOf returns the categories containing kw, in declaration order.
func (t *Taxonomy) CategoriesOf(kw string) []string {
	return append([]string(nil), t.memberOf[kw]...)
}

// Weight returns the weight of a category, or DefaultWeight when none is set.
func (t *Taxonomy) Weight(category string) float64 {
	if w, ok := t.weights[category]; ok {
		return w
	}
	return DefaultWeight
}

// Weights returns a copy of the explicit category weights.
func (t *Taxonomy) Weights() map[string]float64 {
	out := make(map[string]float64, len(t.weights))
	for k, v := range t.weights {
		out[k] = v
	}
	return out
}

// KeywordWeight is the largest weight among the keyword's categories, never
// below DefaultWeight.
func (t *Taxonomy) KeywordWeight(kw string) float64 {
	weight := DefaultWeight
	for _, c := range t.memberOf[kw] {
		if w := t.Weight(c); w > weight {
			weight = w
		}
	}
	return weight
}
