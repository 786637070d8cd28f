package model

import (
	"testing"
)

// TestDefaultThresholds verifies the built-in threshold layer.
// This test serves as living documentation of the defaults: changes to
// any built-in value must be intentional.
func TestDefaultThresholds(t *testing.T) {
	t.Parallel()

	defaults := DefaultThresholds()

	t.Run("performance default is 25", func(t *testing.T) {
		t.Parallel()
		if defaults[CategoryPerformance] != 25 {
			t.Errorf("expected performance default 25, got %d", defaults[CategoryPerformance])
		}
	})

	t.Run("accessibility default is 50", func(t *testing.T) {
		t.Parallel()
		if defaults[CategoryAccessibility] != 50 {
			t.Errorf("expected accessibility default 50, got %d", defaults[CategoryAccessibility])
		}
	})

	t.Run("best-practices default is 50", func(t *testing.T) {
		t.Parallel()
		if defaults[CategoryBestPractices] != 50 {
			t.Errorf("expected best-practices default 50, got %d", defaults[CategoryBestPractices])
		}
	})

	t.Run("seo default is 50", func(t *testing.T) {
		t.Parallel()
		if defaults[CategorySEO] != 50 {
			t.Errorf("expected seo default 50, got %d", defaults[CategorySEO])
		}
	})

	t.Run("every category has a default", func(t *testing.T) {
		t.Parallel()
		for _, category := range Categories() {
			if _, ok := defaults[category]; !ok {
				t.Errorf("category %q has no built-in default", category)
			}
		}
	})

	t.Run("returns a fresh set each call", func(t *testing.T) {
		t.Parallel()
		first := DefaultThresholds()
		first[CategoryPerformance] = 99
		second := DefaultThresholds()
		if second[CategoryPerformance] != DefaultPerformanceThreshold {
			t.Error("mutating one returned set affected a later call")
		}
	})
}

// TestThresholdSetMerge tests the layered merge behavior: per-category
// independence, override precedence, and input immutability.
func TestThresholdSetMerge(t *testing.T) {
	t.Parallel()

	t.Run("override wins per category", func(t *testing.T) {
		t.Parallel()

		base := ThresholdSet{CategoryPerformance: 25, CategoryAccessibility: 50}
		override := ThresholdSet{CategoryPerformance: 75}

		merged := base.Merge(override)

		if merged[CategoryPerformance] != 75 {
			t.Errorf("expected overridden performance 75, got %d", merged[CategoryPerformance])
		}
		if merged[CategoryAccessibility] != 50 {
			t.Errorf("expected untouched accessibility 50, got %d", merged[CategoryAccessibility])
		}
	})

	t.Run("nil override is a no-op", func(t *testing.T) {
		t.Parallel()

		base := ThresholdSet{CategorySEO: 80}
		merged := base.Merge(nil)

		if merged[CategorySEO] != 80 {
			t.Errorf("expected seo 80, got %d", merged[CategorySEO])
		}
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		t.Parallel()

		base := ThresholdSet{CategoryPerformance: 25}
		override := ThresholdSet{CategoryPerformance: 90}

		_ = base.Merge(override)

		if base[CategoryPerformance] != 25 {
			t.Errorf("base was modified: got %d", base[CategoryPerformance])
		}
		if override[CategoryPerformance] != 90 {
			t.Errorf("override was modified: got %d", override[CategoryPerformance])
		}
	})

	t.Run("three layers compose left to right", func(t *testing.T) {
		t.Parallel()

		global := ThresholdSet{CategoryPerformance: 50, CategoryAccessibility: 80}
		route := ThresholdSet{CategoryPerformance: 75}

		effective := DefaultThresholds().Merge(global).Merge(route)

		if effective[CategoryPerformance] != 75 {
			t.Errorf("expected route override 75, got %d", effective[CategoryPerformance])
		}
		if effective[CategoryAccessibility] != 80 {
			t.Errorf("expected global override 80, got %d", effective[CategoryAccessibility])
		}
		if effective[CategorySEO] != DefaultSEOThreshold {
			t.Errorf("expected built-in seo default, got %d", effective[CategorySEO])
		}
	})
}

// TestThresholdSetString verifies the sorted, deterministic rendering.
func TestThresholdSetString(t *testing.T) {
	t.Parallel()

	set := ThresholdSet{
		CategorySEO:         50,
		CategoryPerformance: 25,
	}

	got := set.String()
	want := "performance=25 seo=50"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
