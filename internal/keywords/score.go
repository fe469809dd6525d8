package keywords

import (
	"math"
	"sort"
)

// tally accumulates matches for one document.
type tally struct {
	frequency map[string]int
	hits      map[string]int
}

func newTally(t *Taxonomy) *tally {
	hits := make(map[string]int, len(t.categories))
	for _, c := range t.categories {
		hits[c.Name] = 0
	}
	return &tally{frequency: make(map[string]int), hits: hits}
}

// add records one matched occurrence of kw. Every category containing kw
// gets a hit.
func (tl *tally) add(t *Taxonomy, kw string) {
	tl.frequency[kw]++
	for _, c := range t.memberOf[kw] {
		tl.hits[c]++
	}
}

func (tl *tally) keywords() []string {
	kws := make([]string, 0, len(tl.frequency))
	for kw := range tl.frequency {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	return kws
}

// RawScore sums each keyword's count, capped at perKeywordCap.
func RawScore(frequency map[string]int, perKeywordCap int) int {
	total := 0
	for _, count := range frequency {
		total += min(count, perKeywordCap)
	}
	return total
}

// WeightedScore sums each keyword's count, capped at 5, times the keyword's
// weight in t. Rounding happens once, on the total.
func WeightedScore(frequency map[string]int, t *Taxonomy) int {
	kws := make([]string, 0, len(frequency))
	for kw := range frequency {
		kws = append(kws, kw)
	}
	sort.Strings(kws)

	total := 0.0
	for _, kw := range kws {
		total += float64(min(frequency[kw], WeightedScoreCap)) * t.KeywordWeight(kw)
	}
	return int(math.Round(total))
}

// CategoryPercentages converts per-category hit counts into rounded shares of
// all hits. Every category of t is present; all are 0 when there are no hits.
func CategoryPercentages(hits map[string]int, t *Taxonomy) map[string]int {
	total := 0
	for _, n := range hits {
		total += n
	}

	out := make(map[string]int, len(t.categories))
	for _, c := range t.categories {
		if total == 0 {
			out[c.Name] = 0
			continue
		}
		out[c.Name] = int(math.Round(float64(hits[c.Name]) / float64(total) * 100))
	}
	return out
}
