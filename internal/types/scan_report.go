// Package types provides type definitions for structured data used throughout the ATS scanner.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ScanReport is the full output of scanning a resume against a job description.
type ScanReport struct {
	ScanID     string            `json:"scan_id"`
	CreatedAt  time.Time         `json:"created_at"`
	JobSource  string            `json:"job_source,omitempty"` // file path or URL of the job description
	Comparison *ComparisonResult `json:"comparison"`
	Targets    *KeywordTargets   `json:"targets"`
}
