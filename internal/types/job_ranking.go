// Package types provides type definitions for structured data used throughout the ATS scanner.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobRanking represents job descriptions ordered by resume coverage
type JobRanking struct {
	Ranked []RankedJob `json:"ranked"`
}

// RankedJob represents a single job description with its comparison scores
type RankedJob struct {
	Source          string      `json:"source"`
	MatchPercentage int         `json:"match_percentage"`
	WeightedScore   int         `json:"weighted_score"`
	Rating          MatchRating `json:"rating"`
	Matched         []string    `json:"matched"`
	Missing         []string    `json:"missing"`
	Notes           string      `json:"notes,omitempty"`
}
