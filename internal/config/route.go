package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/routelight/routelight/internal/model"
)

// Route is one named, path-addressed target to be audited.
// Routes are owned by configuration: the audit core references them but
// never mutates them after loading.
type Route struct {
	// Name is the unique, filename-safe route identifier. It keys the
	// per-route report artifacts, so two routes must never share a name.
	Name string `yaml:"name"`

	// Path is the URL path to audit, always starting with "/". The
	// target URL is baseURL + Path with no further normalization.
	Path string `yaml:"path"`

	// Authenticated marks routes that require stored credentials.
	// For these routes credential injection is mandatory: a missing
	// auth file or an empty credential set aborts the route.
	Authenticated bool `yaml:"authenticated,omitempty"`

	// Thresholds holds per-route threshold overrides. Categories not
	// listed here fall back to the global overrides, then to the
	// built-in defaults.
	Thresholds model.ThresholdSet `yaml:"thresholds,omitempty"`

	// WaitSelector, when set, is a CSS selector the session waits on
	// after navigation. The selector must become visible within the
	// readiness bound or the route fails with a selector timeout.
	WaitSelector string `yaml:"waitSelector,omitempty"`

	// DisplayName is an optional human-readable title for reports.
	// When empty, a title is derived from Name (see Title).
	DisplayName string `yaml:"displayName,omitempty"`
}

// titleCaser converts derived route titles. English casing is fine for
// identifiers like "about-us"; DisplayName exists for anything else.
var titleCaser = cases.Title(language.English)

// Title returns the human-readable title for report output.
// It prefers DisplayName and otherwise derives one from Name by
// replacing dashes and underscores with spaces and title-casing the
// result ("about-us" becomes "About Us").
func (r *Route) Title() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	name := strings.NewReplacer("-", " ", "_", " ").Replace(r.Name)
	return titleCaser.String(name)
}

// URL resolves the route's target URL against the base URL.
// Concatenation is deliberate: duplicate slashes between a trailing
// baseURL slash and the leading path slash are NOT collapsed. This is a
// known rough edge kept for compatibility with existing configurations.
func (r *Route) URL(baseURL string) string {
	return baseURL + r.Path
}

// filenameSafe reports whether name can be used verbatim as a report
// file name on all supported platforms.
func filenameSafe(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}
