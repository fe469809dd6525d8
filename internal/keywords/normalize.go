package keywords

import (
	"iter"
	"regexp"
	"strings"
)

var (
	connectorPattern  = regexp.MustCompile(`\b(?:and|or|the|for|with)\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	trailingDigitsPlural = regexp.MustCompile(`\d+s$`)
	trailingPlural       = regexp.MustCompile(`s$`)
)

// Normalize lowercases text, blanks out the connector words "and", "or",
// "the", "for" and "with", and collapses whitespace runs to a single space.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	stripped := connectorPattern.ReplaceAllString(lowered, " ")
	return whitespacePattern.ReplaceAllString(stripped, " ")
}

func isTokenChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '+' || r == '#'
}

// Tokens yields every maximal run of [a-z0-9+#] in normalized whose length is
// within [minLen, maxLen], left to right. The sequence can be iterated again
// and produces the same tokens.
func Tokens(normalized string, minLen, maxLen int) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i := 0; i <= len(normalized); i++ {
			inRun := i < len(normalized) && isTokenChar(rune(normalized[i]))
			if inRun {
				if start < 0 {
					start = i
				}
				continue
			}
			if start < 0 {
				continue
			}
			if n := i - start; n >= minLen && n <= maxLen {
				if !yield(normalized[start:i]) {
					return
				}
			}
			start = -1
		}
	}
}

// NormalizeToken strips a trailing digits-plus-"s" suffix, then a single
// trailing "s", then any character outside the token alphabet.
func NormalizeToken(token string) string {
	token = trailingDigitsPlural.ReplaceAllString(token, "")
	token = trailingPlural.ReplaceAllString(token, "")
	return strings.Map(func(r rune) rune {
		if isTokenChar(r) {
			return r
		}
		return -1
	}, token)
}
