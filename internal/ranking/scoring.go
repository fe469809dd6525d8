package ranking

import (
	"sort"

	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/types"
)

// matchedWeightedScore is the weighted score of the job's matched keywords at
// their job frequencies. Jobs with the same match percentage rank higher when
// the keywords they repeat and weight most are the ones covered.
func matchedWeightedScore(comparison *types.ComparisonResult, t *keywords.Taxonomy) int {
	frequency := make(map[string]int, len(comparison.Matched))
	for _, kw := range comparison.Matched {
		frequency[kw] = comparison.Job.Frequency[kw]
	}
	return keywords.WeightedScore(frequency, t)
}

// categoryCoverage is the matched fraction of the job's keywords per
// category. Categories the job never mentions are absent.
type categoryCoverage struct {
	category string
	matched  int
	total    int
}

func (c categoryCoverage) ratio() float64 {
	return float64(c.matched) / float64(c.total)
}

// computeCategoryCoverage returns coverage for every category the job draws
// on, in taxonomy order.
func computeCategoryCoverage(comparison *types.ComparisonResult, t *keywords.Taxonomy) []categoryCoverage {
	matched := make(map[string]bool, len(comparison.Matched))
	for _, kw := range comparison.Matched {
		matched[kw] = true
	}

	index := make(map[string]*categoryCoverage)
	for _, kw := range comparison.Job.Keywords {
		for _, category := range t.CategoriesOf(kw) {
			cov, ok := index[category]
			if !ok {
				cov = &categoryCoverage{category: category}
				index[category] = cov
			}
			cov.total++
			if matched[kw] {
				cov.matched++
			}
		}
	}

	out := make([]categoryCoverage, 0, len(index))
	for _, name := range t.CategoryNames() {
		if cov, ok := index[name]; ok {
			out = append(out, *cov)
		}
	}
	return out
}

// strongestAndWeakest picks the best and worst covered categories. Ties keep
// taxonomy order.
func strongestAndWeakest(coverage []categoryCoverage) (best, worst categoryCoverage, ok bool) {
	if len(coverage) == 0 {
		return best, worst, false
	}
	sorted := append([]categoryCoverage(nil), coverage...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ratio() > sorted[j].ratio()
	})
	return sorted[0], sorted[len(sorted)-1], true
}
