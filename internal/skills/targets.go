// Package skills turns a comparison into prioritized keyword targets: the
// missing job keywords worth adding to a resume first.
package skills

import (
	"errors"
	"math"
	"sort"

	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/types"
)

// BuildKeywordTargets builds a weighted list of the keywords missing from the
// document in comparison. A target's weight is its job frequency, capped at
// keywords.WeightedScoreCap, times the keyword's category weight in t.
// Targets are sorted by weight (descending), then frequency, then keyword.
func BuildKeywordTargets(comparison *types.ComparisonResult, t *keywords.Taxonomy) (*types.KeywordTargets, error) {
	if comparison == nil || comparison.Job == nil {
		return nil, errors.New("comparison has no job extraction")
	}
	if t == nil {
		return nil, errors.New("taxonomy is required")
	}

	targets := make([]types.KeywordTarget, 0, len(comparison.Missing))
	seen := make(map[string]bool, len(comparison.Missing))
	for _, kw := range comparison.Missing {
		if seen[kw] {
			continue
		}
		seen[kw] = true

		freq := comparison.Job.Frequency[kw]
		targets = append(targets, types.KeywordTarget{
			Keyword:    kw,
			Weight:     roundWeight(float64(min(freq, keywords.WeightedScoreCap)) * t.KeywordWeight(kw)),
			Frequency:  freq,
			Categories: t.CategoriesOf(kw),
		})
	}

	sort.SliceStable(targets, func(i, j int) bool {
		if targets[i].Weight != targets[j].Weight {
			return targets[i].Weight > targets[j].Weight
		}
		if targets[i].Frequency != targets[j].Frequency {
			return targets[i].Frequency > targets[j].Frequency
		}
		return targets[i].Keyword < targets[j].Keyword
	})

	return &types.KeywordTargets{Targets: targets}, nil
}

// Top returns at most n targets from the front of the list.
func Top(targets *types.KeywordTargets, n int) []types.KeywordTarget {
	if targets == nil || n <= 0 {
		return nil
	}
	return targets.Targets[:min(n, len(targets.Targets))]
}

// roundWeight keeps two decimals so 1.2×3 reads as 3.6 rather than 3.5999999999999996.
func roundWeight(w float64) float64 {
	return math.Round(w*100) / 100
}
