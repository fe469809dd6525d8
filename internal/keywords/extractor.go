package keywords

import (
	"math"

	"github.com/jonathan/ats-scanner/internal/types"
)

// Match rating thresholds, in percent.
const (
	StrongMatchThreshold = 70
	FairMatchThreshold   = 40
)

// Extractor runs the extraction pipeline with fixed options and taxonomy.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	taxonomy *Taxonomy
	opts     Options
	matcher  *Matcher
}

// NewExtractor validates opts and returns an Extractor over t.
// A nil taxonomy selects DefaultTaxonomy.
func NewExtractor(t *Taxonomy, opts Options) (*Extractor, error) {
	if t == nil {
		t = DefaultTaxonomy()
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		taxonomy: t,
		opts:     opts,
		matcher:  NewMatcher(t, opts.StrictMode, opts.MinPartialLength),
	}, nil
}

// Taxonomy returns the extractor's taxonomy.
func (e *Extractor) Taxonomy() *Taxonomy {
	return e.taxonomy
}

// Options returns the effective options, defaults applied.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract scans text and returns its keywords, frequencies, scores and
// category distribution.
func (e *Extractor) Extract(text string) *types.ExtractionResult {
	tl := newTally(e.taxonomy)
	for token := range Tokens(Normalize(text), e.opts.MinWordLength, e.opts.MaxWordLength) {
		if kw, tier := e.matcher.Match(token); tier != types.TierNone {
			tl.add(e.taxonomy, kw)
		}
	}

	kws := tl.keywords()
	return &types.ExtractionResult{
		Keywords:      kws,
		Frequency:     tl.frequency,
		Score:         RawScore(tl.frequency, e.opts.ScoreCapPerKeyword),
		WeightedScore: WeightedScore(tl.frequency, e.taxonomy),
		Matches:       len(kws),
		Categories:    CategoryPercentages(tl.hits, e.taxonomy),
	}
}

// Explain reports how every token of text was resolved, in text order.
func (e *Extractor) Explain(text string) []types.TokenMatch {
	var out []types.TokenMatch
	for token := range Tokens(Normalize(text), e.opts.MinWordLength, e.opts.MaxWordLength) {
		kw, tier := e.matcher.Match(token)
		tm := types.TokenMatch{
			Token:      token,
			Normalized: NormalizeToken(token),
			Keyword:    kw,
			Tier:       tier,
		}
		if kw != "" {
			tm.Categories = e.taxonomy.CategoriesOf(kw)
		}
		out = append(out, tm)
	}
	return out
}

// Compare extracts both texts and reports which job keywords the document
// covers. Matched and missing keep the job result's order. The percentage is
// 0 when the job text yields no keywords.
func (e *Extractor) Compare(document, job string) *types.ComparisonResult {
	docResult := e.Extract(document)
	jobResult := e.Extract(job)

	inDocument := make(map[string]bool, len(docResult.Keywords))
	for _, kw := range docResult.Keywords {
		inDocument[kw] = true
	}

	matched := make([]string, 0, len(jobResult.Keywords))
	missing := make([]string, 0, len(jobResult.Keywords))
	for _, kw := range jobResult.Keywords {
		if inDocument[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	pct := MatchPercentage(len(matched), len(jobResult.Keywords))
	return &types.ComparisonResult{
		Matched:         matched,
		Missing:         missing,
		MatchPercentage: pct,
		Rating:          Rate(pct),
		Document:        docResult,
		Job:             jobResult,
	}
}

// MatchPercentage returns round(matched/total*100), or 0 when total is 0.
func MatchPercentage(matched, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(total) * 100))
}

// Rate buckets a match percentage.
func Rate(pct int) types.MatchRating {
	switch {
	case pct >= StrongMatchThreshold:
		return types.RatingStrong
	case pct >= FairMatchThreshold:
		return types.RatingFair
	default:
		return types.RatingWeak
	}
}
