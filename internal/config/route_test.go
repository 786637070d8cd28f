package config

import (
	"testing"

	"github.com/routelight/routelight/internal/model"
)

// TestRouteTitle verifies title derivation from the route name.
func TestRouteTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		route Route
		want  string
	}{
		{
			name:  "display name wins",
			route: Route{Name: "about-us", DisplayName: "Company"},
			want:  "Company",
		},
		{
			name:  "dashes become spaces and words are title-cased",
			route: Route{Name: "about-us"},
			want:  "About Us",
		},
		{
			name:  "underscores become spaces",
			route: Route{Name: "pricing_table"},
			want:  "Pricing Table",
		},
		{
			name:  "single word",
			route: Route{Name: "home"},
			want:  "Home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.route.Title(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestRouteURL verifies target URL resolution. Concatenation is raw:
// a trailing slash on the base URL produces a double slash, matching
// the documented behavior.
func TestRouteURL(t *testing.T) {
	t.Parallel()

	t.Run("base URL without trailing slash", func(t *testing.T) {
		t.Parallel()
		route := Route{Name: "pricing", Path: "/pricing"}
		if got := route.URL("https://example.com"); got != "https://example.com/pricing" {
			t.Errorf("unexpected URL: %q", got)
		}
	})

	t.Run("trailing slash is not collapsed", func(t *testing.T) {
		t.Parallel()
		route := Route{Name: "pricing", Path: "/pricing"}
		if got := route.URL("https://example.com/"); got != "https://example.com//pricing" {
			t.Errorf("unexpected URL: %q", got)
		}
	})
}

// TestFilenameSafe verifies the route name character whitelist.
func TestFilenameSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"home", true},
		{"about-us", true},
		{"pricing_table", true},
		{"v1.2", true},
		{"ABC123", true},
		{"", false},
		{"a/b", false},
		{"a b", false},
		{"café", false},
		{"a:b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := filenameSafe(tt.input); got != tt.want {
				t.Errorf("filenameSafe(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestRouteThresholdOverride verifies per-route thresholds survive YAML
// round-trips at the type level (the merge semantics live in model).
func TestRouteThresholdOverride(t *testing.T) {
	t.Parallel()

	route := Route{
		Name:       "checkout",
		Path:       "/checkout",
		Thresholds: model.ThresholdSet{model.CategoryPerformance: 75},
	}

	effective := model.DefaultThresholds().Merge(nil).Merge(route.Thresholds)
	if effective[model.CategoryPerformance] != 75 {
		t.Errorf("expected per-route override 75, got %d", effective[model.CategoryPerformance])
	}
	if effective[model.CategoryAccessibility] != model.DefaultAccessibilityThreshold {
		t.Errorf("expected built-in accessibility default, got %d", effective[model.CategoryAccessibility])
	}
}
