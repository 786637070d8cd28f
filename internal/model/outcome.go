package model

import (
	"sort"
	"time"
)

// CategoryScores maps a category key to its normalized score in [0,1].
// Scores are always normalized before they reach this type, regardless
// of the scale the engine reported them on.
type CategoryScores map[string]float64

// AuditOutcome is the final per-route record of an audit: normalized
// scores, the effective thresholds they were evaluated against, and the
// pass/fail verdict. It is produced once per route and is immutable
// from the consumer's perspective.
//
// A failed threshold is not an error condition: it is a normal outcome
// with Passed=false, optionally escalated by the caller (CLI exit code,
// registered test function).
type AuditOutcome struct {
	// RouteName is the unique route identifier the audit ran for.
	RouteName string `json:"route_name"`

	// ResolvedURL is the full URL that was audited (baseURL + route path).
	ResolvedURL string `json:"resolved_url"`

	// Scores contains the normalized [0,1] category scores.
	Scores CategoryScores `json:"scores"`

	// EffectiveThresholds is the fully merged threshold set (built-in
	// defaults, global overrides, per-route overrides) the scores were
	// evaluated against.
	EffectiveThresholds ThresholdSet `json:"effective_thresholds"`

	// Passed is true when every category's score cleared its threshold.
	// Scores exactly equal to the threshold pass (>=, not >).
	Passed bool `json:"passed"`

	// FailedCategories lists the categories that missed their threshold,
	// in sorted order. Empty when Passed is true.
	FailedCategories []string `json:"failed_categories,omitempty"`
}

// ScorePercent returns the category score on the 0-100 scale for
// display next to its threshold. Returns 0 for unknown categories.
func (o *AuditOutcome) ScorePercent(category string) float64 {
	return o.Scores[category] * 100
}

// RouteResult records what happened to a single route during a run:
// either an outcome or a failure, never both. The orchestrator produces
// one RouteResult per supplied route, in input order.
type RouteResult struct {
	// RouteName is the unique route identifier.
	RouteName string `json:"route_name"`

	// DisplayTitle is the human-readable route title for report output.
	DisplayTitle string `json:"display_title"`

	// ResolvedURL is the target URL, populated even when the flow failed
	// before navigation completed.
	ResolvedURL string `json:"resolved_url"`

	// Outcome is the audit verdict. Nil when the flow failed before an
	// outcome could be produced.
	Outcome *AuditOutcome `json:"outcome,omitempty"`

	// Err is the failure that aborted the flow, nil on success.
	// Excluded from JSON; ErrorKind and ErrorMessage carry the
	// serializable form.
	Err error `json:"-"`

	// ErrorKind is the failure classification, empty on success.
	ErrorKind Kind `json:"error_kind,omitempty"`

	// ErrorMessage is the human-readable failure description, empty on success.
	ErrorMessage string `json:"error_message,omitempty"`

	// Elapsed is how long the route flow took, including failures.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Failed reports whether the route produced no passing outcome, either
// because the flow errored or because thresholds were missed.
func (r *RouteResult) Failed() bool {
	return r.Err != nil || r.Outcome == nil || !r.Outcome.Passed
}

// RunSummary aggregates the results of one full run for the reporting
// collaborators. Results are ordered the same way routes were supplied.
type RunSummary struct {
	// BaseURL is the base URL all route paths were resolved against.
	BaseURL string `json:"base_url"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Results holds one record per route, in input order.
	Results []RouteResult `json:"results"`
}

// PassedCount returns the number of routes that produced a passing outcome.
func (s *RunSummary) PassedCount() int {
	var n int
	for i := range s.Results {
		if !s.Results[i].Failed() {
			n++
		}
	}
	return n
}

// FailedCount returns the number of routes that errored or missed thresholds.
func (s *RunSummary) FailedCount() int {
	return len(s.Results) - s.PassedCount()
}

// AllPassed reports whether every route produced a passing outcome.
func (s *RunSummary) AllPassed() bool {
	return s.FailedCount() == 0
}

// SortedCategories returns the category keys of the given scores in
// sorted order, for deterministic report output.
func SortedCategories(scores CategoryScores) []string {
	keys := make([]string, 0, len(scores))
	for category := range scores {
		keys = append(keys, category)
	}
	sort.Strings(keys)
	return keys
}
