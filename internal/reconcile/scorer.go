package reconcile

import "strings"

// Confidence tiers. Exact normalized equality outranks containment, which
// outranks any token-overlap score.
const (
	ScoreExact       = 1.0
	ScoreContainment = 0.9

	// Token-overlap scores start at tokenBaseScore for a single matching
	// token and grow per additional match, capped below the containment tier.
	tokenBaseScore = 0.5
	tokenStepScore = 0.15
	tokenMaxScore  = 0.85

	// DefaultMinConfidence is the acceptance threshold: a candidate scoring
	// below it leaves the source label unmapped.
	DefaultMinConfidence = 0.5
)

// scoreLabels rates how likely a source label and a canonical label name the
// same real-world geography, returning 0 when no tier applies.
func scoreLabels(source, canonical string) float64 {
	normSource := normalizeLabel(source)
	normCanonical := normalizeLabel(canonical)
	if normSource == "" || normCanonical == "" {
		return 0
	}

	if normSource == normCanonical {
		return ScoreExact
	}

	if strings.Contains(normCanonical, normSource) {
		return ScoreContainment
	}

	return tokenOverlapScore(source, canonical)
}

// tokenOverlapScore counts source city tokens present in the canonical
// label's token set under the strict overlap rule.
func tokenOverlapScore(source, canonical string) float64 {
	sourceTokens := cityTokens(source)
	canonicalTokens := cityTokens(canonical)
	if len(sourceTokens) == 0 || len(canonicalTokens) == 0 {
		return 0
	}

	matches := 0
	for _, st := range sourceTokens {
		for _, ct := range canonicalTokens {
			if tokensMatch(st, ct) {
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return 0
	}

	score := tokenBaseScore + tokenStepScore*float64(matches-1)
	if score > tokenMaxScore {
		score = tokenMaxScore
	}
	return score
}
