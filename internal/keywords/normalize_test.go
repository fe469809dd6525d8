package keywords

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "GoLang", "golang"},
		{"removes connectors", "Go and Rust or C", "go rust c"},
		{"keeps connector substrings", "android fortran", "android fortran"},
		{"collapses whitespace", "a\t\n  b", "a b"},
		{"removes all connectors", "the with for", " "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestTokens_MaximalRuns(t *testing.T) {
	text := Normalize("Rock and roll, the end; C++ & C# for node.js with ORacle")
	got := slices.Collect(Tokens(text, 2, 30))
	assert.Equal(t, []string{"rock", "roll", "end", "c++", "c#", "node", "js", "oracle"}, got)
}

func TestTokens_LengthBounds(t *testing.T) {
	got := slices.Collect(Tokens("a go java kubernetes", 2, 4))
	assert.Equal(t, []string{"go", "java"}, got)
}

func TestTokens_NonASCIISeparates(t *testing.T) {
	got := slices.Collect(Tokens("café résumé", 2, 30))
	assert.Equal(t, []string{"caf", "sum"}, got)
}

func TestTokens_Restartable(t *testing.T) {
	seq := Tokens("python docker react", 2, 30)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestTokens_EarlyStop(t *testing.T) {
	var got []string
	for tok := range Tokens("one two three four", 2, 30) {
		got = append(got, tok)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestTokens_Empty(t *testing.T) {
	assert.Empty(t, slices.Collect(Tokens("", 2, 30)))
	assert.Empty(t, slices.Collect(Tokens(Normalize("   \n\t "), 2, 30)))
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dockers", "docker"},
		{"apis", "api"},
		{"1990s", ""},
		{"react", "react"},
		{"c++", "c++"},
		{"ss", "s"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeToken(tt.in))
		})
	}
}
