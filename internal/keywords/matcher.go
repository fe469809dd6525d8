package keywords

import (
	"strings"

	"github.com/jonathan/ats-scanner/internal/types"
)

// Matcher resolves tokens to canonical taxonomy keywords.
type Matcher struct {
	taxonomy         *Taxonomy
	strict           bool
	minPartialLength int
}

// NewMatcher returns a Matcher over t. Partial matching is disabled when
// strict is true.
func NewMatcher(t *Taxonomy, strict bool, minPartialLength int) *Matcher {
	return &Matcher{taxonomy: t, strict: strict, minPartialLength: minPartialLength}
}

// Match resolves token to at most one keyword. Exact membership wins, then
// membership of the normalized token, then the first keyword in taxonomy order
// that contains or is contained in the normalized token.
func (m *Matcher) Match(token string) (string, types.MatchTier) {
	if m.taxonomy.Contains(token) {
		return token, types.TierExact
	}

	normalized := NormalizeToken(token)
	if m.taxonomy.Contains(normalized) {
		return normalized, types.TierNormalized
	}

	if m.strict {
		return "", types.TierNone
	}
	if kw, ok := m.partial(normalized); ok {
		return kw, types.TierPartial
	}
	return "", types.TierNone
}

func (m *Matcher) partial(normalized string) (string, bool) {
	if normalized == "" {
		return "", false
	}
	for _, kw := range m.taxonomy.all {
		if len(kw) >= m.minPartialLength && strings.Contains(normalized, kw) {
			return kw, true
		}
		if len(normalized) >= m.minPartialLength && strings.Contains(kw, normalized) {
			return kw, true
		}
	}
	return "", false
}
