// Package types provides type definitions for structured data used throughout the ATS scanner.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TaxonomyFile is the on-disk form of a taxonomy. Categories are a list so
// declaration order survives JSON and YAML round trips.
type TaxonomyFile struct {
	Categories []TaxonomyCategory `json:"categories" yaml:"categories"`
}

// TaxonomyCategory is one named category in a TaxonomyFile.
type TaxonomyCategory struct {
	Name     string   `json:"name" yaml:"name"`
	Weight   float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}
