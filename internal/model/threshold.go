package model

import (
	"fmt"
	"sort"
	"strings"
)

// Audit category keys. These match the category identifiers used by the
// auditing engine and are the only categories routelight evaluates.
const (
	// CategoryPerformance measures page load and runtime performance.
	CategoryPerformance = "performance"

	// CategoryAccessibility measures conformance to accessibility guidelines.
	CategoryAccessibility = "accessibility"

	// CategoryBestPractices measures adherence to web development best practices.
	CategoryBestPractices = "best-practices"

	// CategorySEO measures search engine optimization basics.
	CategorySEO = "seo"
)

// Categories returns all audited category keys in canonical order.
// The returned slice is freshly allocated; callers may modify it.
func Categories() []string {
	return []string{
		CategoryPerformance,
		CategoryAccessibility,
		CategoryBestPractices,
		CategorySEO,
	}
}

// ThresholdSet maps a category key to its minimum acceptable score
// on the 0-100 scale. Three layers exist: built-in defaults, global
// overrides, and per-route overrides; merging is layered left-to-right
// with per-route values winning (see Merge).
type ThresholdSet map[string]int

// Built-in default thresholds, used only when neither a global nor a
// per-route override exists for a category. These are deliberately
// conservative fallbacks; documentation examples use friendlier values
// (50/80/80/80), but those are example configuration, not defaults.
const (
	// DefaultPerformanceThreshold is low because performance scores vary
	// heavily with hardware and load; an unconfigured run should not fail
	// on machine noise.
	DefaultPerformanceThreshold = 25

	// DefaultAccessibilityThreshold is the fallback accessibility minimum.
	DefaultAccessibilityThreshold = 50

	// DefaultBestPracticesThreshold is the fallback best-practices minimum.
	DefaultBestPracticesThreshold = 50

	// DefaultSEOThreshold is the fallback SEO minimum.
	DefaultSEOThreshold = 50
)

// DefaultThresholds returns the built-in threshold layer.
// The returned set is freshly allocated on every call so callers can
// mutate their copy without affecting others.
func DefaultThresholds() ThresholdSet {
	return ThresholdSet{
		CategoryPerformance:   DefaultPerformanceThreshold,
		CategoryAccessibility: DefaultAccessibilityThreshold,
		CategoryBestPractices: DefaultBestPracticesThreshold,
		CategorySEO:           DefaultSEOThreshold,
	}
}

// Merge layers override on top of ts, per category key independently,
// and returns the result as a new set. Neither input is modified.
// Unknown category keys in either set are carried through unchanged;
// validation of keys and ranges is the configuration loader's job.
func (ts ThresholdSet) Merge(override ThresholdSet) ThresholdSet {
	merged := make(ThresholdSet, len(ts)+len(override))
	for category, minimum := range ts {
		merged[category] = minimum
	}
	for category, minimum := range override {
		merged[category] = minimum
	}
	return merged
}

// String renders the set as "category=value" pairs in sorted key order.
// Used in log output and failure messages.
func (ts ThresholdSet) String() string {
	keys := make([]string, 0, len(ts))
	for category := range ts {
		keys = append(keys, category)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, category := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%d", category, ts[category]))
	}
	return strings.Join(pairs, " ")
}
