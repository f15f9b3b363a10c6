package reconcile

import (
	"strings"
	"unicode"
)

// normalizeLabel lowercases a geography label, strips punctuation and
// collapses runs of whitespace, so that cosmetic differences between two
// sources' spellings of the same place compare equal.
func normalizeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	lastSpace := true
	for _, r := range strings.ToLower(label) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			// Punctuation and whitespace both act as a single separator.
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// cityTokens splits a label on hyphens and commas into its constituent
// city-name tokens, normalizing each. Empty tokens are dropped.
func cityTokens(label string) []string {
	parts := strings.FieldsFunc(label, func(r rune) bool {
		return r == '-' || r == ','
	})

	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if tok := normalizeLabel(part); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// tokensMatch applies the strict overlap rule: two tokens match only when one
// contains the other and the shorter covers at least 80% of the longer's
// length. The length floor keeps short fragments like "NY" from matching
// unrelated words.
func tokensMatch(a, b string) bool {
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	return float64(shorter) >= tokenLengthRatio*float64(longer)
}

// tokenLengthRatio is the minimum share of the longer token's length the
// shorter token must cover for the pair to count as a match.
const tokenLengthRatio = 0.8
