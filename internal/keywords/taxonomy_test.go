package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomy_Categories(t *testing.T) {
	tax := DefaultTaxonomy()
	assert.Equal(t, []string{
		"languages", "frontend", "backend", "devops", "cloud", "databases", "testing",
		"ai_ml", "softskills", "methodologies", "security", "mobile", "architecture", "other",
	}, tax.CategoryNames())
}

func TestDefaultTaxonomy_Overlaps(t *testing.T) {
	tax := DefaultTaxonomy()
	assert.Equal(t, []string{"backend", "security"}, tax.CategoriesOf("jwt"))
	assert.Equal(t, []string{"languages", "backend"}, tax.CategoriesOf("php"))
	assert.Equal(t, []string{"devops", "methodologies"}, tax.CategoriesOf("ci"))
	assert.Equal(t, []string{"languages", "mobile"}, tax.CategoriesOf("kotlin"))
	assert.Empty(t, tax.CategoriesOf("cobol"))
}

func TestDefaultTaxonomy_AllKeywordsOrder(t *testing.T) {
	all := DefaultTaxonomy().AllKeywords()
	require.NotEmpty(t, all)
	assert.Equal(t, "javascript", all[0])
	assert.Equal(t, "storybook", all[len(all)-1])

	seen := make(map[string]bool)
	for _, kw := range all {
		assert.False(t, seen[kw], "keyword %q listed twice", kw)
		seen[kw] = true
	}
}

func TestDefaultTaxonomy_SharedInstance(t *testing.T) {
	assert.Same(t, DefaultTaxonomy(), DefaultTaxonomy())
}

func TestTaxonomy_AllKeywordsIsCopy(t *testing.T) {
	tax := DefaultTaxonomy()
	all := tax.AllKeywords()
	all[0] = "mutated"
	assert.Equal(t, "javascript", tax.AllKeywords()[0])
}

func TestTaxonomy_Weights(t *testing.T) {
	tax, err := NewTaxonomy([]Category{
		{Name: "high", Keywords: []string{"alpha", "shared"}},
		{Name: "low", Keywords: []string{"beta", "shared"}},
		{Name: "plain", Keywords: []string{"gamma"}},
	}, map[string]float64{"high": 1.5, "low": 0.5})
	require.NoError(t, err)

	assert.Equal(t, 1.5, tax.Weight("high"))
	assert.Equal(t, DefaultWeight, tax.Weight("plain"))
	assert.Equal(t, DefaultWeight, tax.Weight("missing"))

	assert.Equal(t, 1.5, tax.KeywordWeight("shared"))
	assert.Equal(t, DefaultWeight, tax.KeywordWeight("beta"), "weights below default do not reduce")
	assert.Equal(t, DefaultWeight, tax.KeywordWeight("gamma"))
}

func TestNewTaxonomy_Errors(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		weights    map[string]float64
		contains   string
	}{
		{"no categories", nil, nil, "no categories"},
		{"empty name", []Category{{Name: " ", Keywords: []string{"go"}}}, nil, "name is empty"},
		{"duplicate category", []Category{{Name: "a"}, {Name: "a"}}, nil, "duplicate category"},
		{"empty keyword", []Category{{Name: "a", Keywords: []string{""}}}, nil, "empty"},
		{"uppercase keyword", []Category{{Name: "a", Keywords: []string{"Go"}}}, nil, "invalid character"},
		{"space in keyword", []Category{{Name: "a", Keywords: []string{"node js"}}}, nil, "invalid character"},
		{"duplicate keyword", []Category{{Name: "a", Keywords: []string{"go", "go"}}}, nil, "duplicate keyword"},
		{"unknown weight", []Category{{Name: "a", Keywords: []string{"go"}}}, map[string]float64{"b": 1.1}, "unknown category"},
		{"zero weight", []Category{{Name: "a", Keywords: []string{"go"}}}, map[string]float64{"a": 0}, "positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTaxonomy(tt.categories, tt.weights)
			require.Error(t, err)
			var taxErr *TaxonomyError
			require.ErrorAs(t, err, &taxErr)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestNewTaxonomy_AllowsHyphen(t *testing.T) {
	tax, err := NewTaxonomy([]Category{{Name: "soft", Keywords: []string{"problem-solving"}}}, nil)
	require.NoError(t, err)
	assert.True(t, tax.Contains("problem-solving"))
}
