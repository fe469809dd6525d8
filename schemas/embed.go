// Package schemas holds the JSON Schemas for the scanner's file formats and
// reports.
package schemas

import "embed"

// Schema file names.
const (
	Taxonomy         = "taxonomy.schema.json"
	ExtractionResult = "extraction_result.schema.json"
	ScanReport       = "scan_report.schema.json"
	JobRanking       = "job_ranking.schema.json"
)

// FS contains every schema file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
