package score

import (
	"sort"
	"strings"

	"github.com/routelight/routelight/internal/engine"
	"github.com/routelight/routelight/internal/model"
)

// Normalize converts a raw engine report to canonical [0,1] category
// scores. Every audited category must be present; missing categories
// are a hard audit failure listing each absent key, never a silent
// zero.
//
// When the report declares its scale, that scale is trusted. For
// ScaleUnknown reports the inherited heuristic applies: a performance
// score greater than 1 marks the whole report as 0-100 and every
// category is divided by 100. The heuristic is ambiguous at exactly 1:
// a perfect 1.0 on the unit scale is indistinguishable from a 1/100
// performance score and is treated as unit scale. Engines should
// declare their scale to avoid this edge entirely.
func Normalize(raw *engine.RawReport) (model.CategoryScores, error) {
	if err := checkComplete(raw); err != nil {
		return nil, err
	}

	divide := false
	switch raw.Scale {
	case engine.ScaleUnit:
		divide = false
	case engine.ScaleCentum:
		divide = true
	case engine.ScaleUnknown:
		divide = raw.Scores[model.CategoryPerformance] > 1
	}

	normalized := make(model.CategoryScores, len(raw.Scores))
	for category, value := range raw.Scores {
		if divide {
			value /= 100
		}
		normalized[category] = value
	}
	return normalized, nil
}

// checkComplete verifies every audited category has a score.
func checkComplete(raw *engine.RawReport) error {
	var missing []string
	for _, category := range model.Categories() {
		if _, ok := raw.Scores[category]; !ok {
			missing = append(missing, category)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return model.NewFailure(model.KindAudit, "missing scores for: "+strings.Join(missing, ", "))
}

// MergeThresholds computes the effective threshold set for a route:
// built-in defaults, overlaid with global overrides, overlaid with
// per-route overrides, per category key independently. Either argument
// may be nil.
func MergeThresholds(global, route model.ThresholdSet) model.ThresholdSet {
	return model.DefaultThresholds().Merge(global).Merge(route)
}

// Evaluate computes the pass/fail verdict for normalized scores against
// effective thresholds. A route passes only when every category's score
// clears its threshold; scores exactly equal to the threshold pass.
func Evaluate(routeName, resolvedURL string, scores model.CategoryScores, thresholds model.ThresholdSet) *model.AuditOutcome {
	var failed []string
	for category, minimum := range thresholds {
		if scores[category]*100 < float64(minimum) {
			failed = append(failed, category)
		}
	}
	sort.Strings(failed)

	return &model.AuditOutcome{
		RouteName:           routeName,
		ResolvedURL:         resolvedURL,
		Scores:              scores,
		EffectiveThresholds: thresholds,
		Passed:              len(failed) == 0,
		FailedCategories:    failed,
	}
}
