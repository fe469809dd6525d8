// Package types provides type definitions for structured data used throughout the ATS scanner.
//
//nolint:revive // types is a standard Go package name pattern
package types

// KeywordTargets is a prioritized list of job keywords missing from a resume.
type KeywordTargets struct {
	Targets []KeywordTarget `json:"targets"`
}

// KeywordTarget represents a single missing keyword with its priority weight
type KeywordTarget struct {
	Keyword    string   `json:"keyword"`
	Weight     float64  `json:"weight"`
	Frequency  int      `json:"frequency"` // occurrences in the job description
	Categories []string `json:"categories,omitempty"`
}
