// Package taxonomy loads keyword taxonomies from JSON or YAML files and
// exports taxonomies back to that form.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/schemas"
	"github.com/jonathan/ats-scanner/internal/types"
	rootschemas "github.com/jonathan/ats-scanner/schemas"
	"gopkg.in/yaml.v3"
)

// Format identifies a taxonomy file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported taxonomy file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads, validates and builds the taxonomy stored at path.
func Load(path string) (*keywords.Taxonomy, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}

	tax, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}
	return tax, nil
}

// Parse decodes data in the given format, validates it against the taxonomy
// schema and builds a Taxonomy.
func Parse(data []byte, format Format) (*keywords.Taxonomy, error) {
	file, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return Build(file)
}

// Decode converts data into a schema-valid TaxonomyFile without building it.
func Decode(data []byte, format Format) (*types.TaxonomyFile, error) {
	jsonData := data
	switch format {
	case FormatJSON:
	case FormatYAML:
		// Validate YAML through its JSON rendering so both formats share one schema.
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse taxonomy YAML: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert taxonomy YAML: %w", err)
		}
		jsonData = converted
	default:
		return nil, fmt.Errorf("unsupported taxonomy format %q", format)
	}

	if err := schemas.ValidateEmbedded(rootschemas.Taxonomy, jsonData); err != nil {
		return nil, err
	}

	var file types.TaxonomyFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomy: %w", err)
	}
	return &file, nil
}

// Build turns a TaxonomyFile into a Taxonomy. Categories without a weight
// use keywords.DefaultWeight.
func Build(file *types.TaxonomyFile) (*keywords.Taxonomy, error) {
	categories := make([]keywords.Category, 0, len(file.Categories))
	weights := make(map[string]float64)
	for _, c := range file.Categories {
		categories = append(categories, keywords.Category{Name: c.Name, Keywords: c.Keywords})
		if c.Weight != 0 {
			weights[c.Name] = c.Weight
		}
	}
	return keywords.NewTaxonomy(categories, weights)
}

// Export renders t in file form, preserving category order.
func Export(t *keywords.Taxonomy) *types.TaxonomyFile {
	weights := t.Weights()
	file := &types.TaxonomyFile{}
	for _, c := range t.Categories() {
		file.Categories = append(file.Categories, types.TaxonomyCategory{
			Name:     c.Name,
			Weight:   weights[c.Name],
			Keywords: c.Keywords,
		})
	}
	return file
}

// Encode serializes a TaxonomyFile in the given format.
func Encode(file *types.TaxonomyFile, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(file, "", "  ")
	case FormatYAML:
		return yaml.Marshal(file)
	default:
		return nil, fmt.Errorf("unsupported taxonomy format %q", format)
	}
}
