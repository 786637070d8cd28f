package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Errors that need dynamic context (which route,
// which category) wrap these sentinels with fmt.Errorf and %w.
var (
	// ErrNoBaseURL is returned when no base URL is configured.
	// Every route path is resolved against the base URL, so a run
	// cannot proceed without one.
	ErrNoBaseURL = errors.New("no base URL configured")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute
	// http or https URL.
	ErrInvalidBaseURL = errors.New("base URL must be an absolute http(s) URL")

	// ErrNoRoutes is returned when the route list is empty.
	ErrNoRoutes = errors.New("no routes configured: define at least one route")

	// ErrDuplicateRouteName is returned when two routes share a name.
	// Route names key report files, so they must be unique within a run.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrInvalidRouteName is returned when a route name is empty or not
	// filename-safe. Names become report file names verbatim.
	ErrInvalidRouteName = errors.New("route name must be non-empty and filename-safe")

	// ErrInvalidRoutePath is returned when a route path does not start with "/".
	ErrInvalidRoutePath = errors.New("route path must start with \"/\"")

	// ErrInvalidThreshold is returned when a threshold value is outside [0,100]
	// or uses an unknown category key.
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrInvalidRouteTimeout is returned when the per-route timeout is not positive.
	ErrInvalidRouteTimeout = errors.New("invalid route timeout: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// Use 1 for strictly sequential audits (the default).
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidViewport is returned when a viewport dimension is not positive.
	ErrInvalidViewport = errors.New("invalid viewport: dimensions must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
