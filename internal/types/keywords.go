// Package types provides type definitions for structured data used throughout the ATS scanner.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExtractionResult is the outcome of scanning one text against a taxonomy.
type ExtractionResult struct {
	Keywords      []string       `json:"keywords"`       // sorted, unique
	Frequency     map[string]int `json:"frequency"`      // keyword -> occurrence count
	Score         int            `json:"score"`          // capped raw score
	WeightedScore int            `json:"weighted_score"` // category-weighted score
	Matches       int            `json:"matches"`        // number of distinct keywords
	Categories    map[string]int `json:"categories"`     // category -> percentage of hits
}

// MatchRating buckets a comparison's match percentage.
type MatchRating string

const (
	RatingStrong MatchRating = "strong"
	RatingFair   MatchRating = "fair"
	RatingWeak   MatchRating = "weak"
)

// ComparisonResult is the overlap between a document and a job description.
type ComparisonResult struct {
	Matched         []string          `json:"matched"`
	Missing         []string          `json:"missing"`
	MatchPercentage int               `json:"match_percentage"`
	Rating          MatchRating       `json:"rating"`
	Document        *ExtractionResult `json:"document"`
	Job             *ExtractionResult `json:"job"`
}

// MatchTier names the matching rule that resolved a token.
type MatchTier string

const (
	TierExact      MatchTier = "exact"
	TierNormalized MatchTier = "normalized"
	TierPartial    MatchTier = "partial"
	TierNone       MatchTier = "none"
)

// TokenMatch explains how a single token was resolved.
type TokenMatch struct {
	Token      string    `json:"token"`
	Normalized string    `json:"normalized"`
	Keyword    string    `json:"keyword,omitempty"`
	Tier       MatchTier `json:"tier"`
	Categories []string  `json:"categories,omitempty"`
}
