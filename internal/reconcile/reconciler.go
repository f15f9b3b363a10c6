package reconcile

import (
	"log/slog"
	"sort"
)

// Mapping joins one source label to its resolved canonical label.
type Mapping struct {
	SourceLabel    string  `json:"source_label"`
	CanonicalLabel string  `json:"canonical_label"`
	Confidence     float64 `json:"confidence"`
}

// Result is the complete outcome of one reconciliation run: a mapping per
// resolved source label, plus the labels that cleared no candidate. Unmapped
// labels are a diagnostic, not an error; downstream consumers simply omit
// geographies without a resolved canonical identity.
type Result struct {
	Mappings map[string]Mapping `json:"mappings"`
	Unmapped []string           `json:"unmapped"`
}

// Reconciler maps one data source's informal geography labels onto another
// source's canonical vocabulary. It applies a deterministic override table
// first, then scored fuzzy matching with a minimum-confidence acceptance
// threshold. The two stages are kept separate so the scorer stays testable
// in isolation from the override data.
type Reconciler struct {
	overrides     map[string]string
	confusables   []string
	minConfidence float64
	logger        *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithOverrides replaces the default override table.
func WithOverrides(overrides map[string]string) Option {
	return func(r *Reconciler) { r.overrides = overrides }
}

// WithConfusables replaces the default confusable-canonical exclusion list.
func WithConfusables(confusables []string) Option {
	return func(r *Reconciler) { r.confusables = confusables }
}

// WithMinConfidence sets the acceptance threshold.
func WithMinConfidence(min float64) Option {
	return func(r *Reconciler) { r.minConfidence = min }
}

// NewReconciler creates a reconciler with the default override table,
// confusable list and acceptance threshold.
func NewReconciler(logger *slog.Logger, opts ...Option) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reconciler{
		overrides:     DefaultOverrides(),
		confusables:   DefaultConfusables(),
		minConfidence: DefaultMinConfidence,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile maps every source label onto the canonical vocabulary. It runs
// once per load cycle over the full label sets and returns a complete table;
// it is not meant to be called per lookup.
func (r *Reconciler) Reconcile(sourceLabels, canonicalLabels []string) *Result {
	result := &Result{
		Mappings: make(map[string]Mapping, len(sourceLabels)),
	}

	excluded := r.excludedCanonicals()

	for _, source := range sourceLabels {
		// Stage 1: the override table short-circuits all matching.
		if canonical, ok := r.overrides[source]; ok {
			result.Mappings[source] = Mapping{
				SourceLabel:    source,
				CanonicalLabel: canonical,
				Confidence:     ScoreExact,
			}
			continue
		}

		best, bestScore := r.bestCandidate(source, canonicalLabels, excluded)
		if bestScore < r.minConfidence {
			result.Unmapped = append(result.Unmapped, source)
			continue
		}

		result.Mappings[source] = Mapping{
			SourceLabel:    source,
			CanonicalLabel: best,
			Confidence:     bestScore,
		}
	}

	sort.Strings(result.Unmapped)

	r.logger.Info("geography reconciliation completed",
		"source_labels", len(sourceLabels),
		"mapped", len(result.Mappings),
		"unmapped", len(result.Unmapped))
	if len(result.Unmapped) > 0 {
		r.logger.Debug("unmapped geography labels", "labels", result.Unmapped)
	}

	return result
}

// bestCandidate scores the source label against every eligible canonical
// label and keeps the highest scorer.
func (r *Reconciler) bestCandidate(source string, canonicalLabels []string, excluded map[string]bool) (string, float64) {
	var best string
	bestScore := 0.0

	for _, canonical := range canonicalLabels {
		if excluded[normalizeLabel(canonical)] {
			continue
		}
		if score := scoreLabels(source, canonical); score > bestScore {
			best, bestScore = canonical, score
		}
	}
	return best, bestScore
}

// excludedCanonicals returns the normalized confusable labels whose shared
// city name is already claimed by an override entry. Only then is the
// confusable suppressed; a confusable with no competing override stays a
// normal candidate.
func (r *Reconciler) excludedCanonicals() map[string]bool {
	overrideCities := make(map[string]bool, len(r.overrides))
	for source := range r.overrides {
		if tokens := cityTokens(source); len(tokens) > 0 {
			overrideCities[tokens[0]] = true
		}
	}

	excluded := make(map[string]bool, len(r.confusables))
	for _, confusable := range r.confusables {
		tokens := cityTokens(confusable)
		if len(tokens) > 0 && overrideCities[tokens[0]] {
			excluded[normalizeLabel(confusable)] = true
		}
	}
	return excluded
}
