package model

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a route failure. Callers branch on Kind rather than
// parsing message text.
//
// Design decision: We use a typed error with an explicit Kind tag
// instead of one error type per kind because every failure carries the
// same contextual fields (route, URL, cause) and the orchestrator treats
// all kinds identically: abort the route, release resources, record the
// failure without touching sibling routes.
type Kind string

// Failure kinds. ThresholdFailure has no kind on purpose: a missed
// threshold is a normal AuditOutcome with Passed=false, not an error.
const (
	// KindConfig marks malformed or missing upstream configuration.
	// The core receives these from the configuration collaborator; it
	// does not raise them itself.
	KindConfig Kind = "config"

	// KindAuth marks credential problems: auth source not configured for
	// an authenticated route, unreadable/unparsable source, or an empty
	// credential set.
	KindAuth Kind = "auth"

	// KindNavigation marks unreachable hosts, DNS failures, absent HTTP
	// responses, and HTTP statuses >= 400.
	KindNavigation Kind = "navigation"

	// KindSelectorTimeout marks a readiness selector that never became
	// visible within its bound. Distinct from KindNavigation: navigation
	// itself succeeded.
	KindSelectorTimeout Kind = "selector_timeout"

	// KindAudit marks engine invocation failures and malformed or
	// incomplete raw reports.
	KindAudit Kind = "audit"
)

// Failure is a route-level error with an explicit classification and
// structured context. It aborts the flow for its route only; sibling
// routes continue.
type Failure struct {
	// Kind is the failure classification.
	Kind Kind

	// Route is the name of the route the failure belongs to.
	Route string

	// URL is the resolved target URL, when known at failure time.
	URL string

	// Status is the HTTP status code for navigation failures, 0 otherwise.
	Status int

	// Reason is a short human-readable description of what went wrong.
	Reason string

	// Err is the underlying cause, nil when the failure originates here.
	Err error
}

// Error renders the failure with all available context.
func (f *Failure) Error() string {
	var sb strings.Builder
	sb.WriteString(string(f.Kind))
	sb.WriteString(" failure")
	if f.Route != "" {
		fmt.Fprintf(&sb, " for route %q", f.Route)
	}
	if f.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(f.Reason)
	}
	if f.URL != "" {
		fmt.Fprintf(&sb, " (url: %s", f.URL)
		if f.Status != 0 {
			fmt.Fprintf(&sb, ", status: %d", f.Status)
		}
		sb.WriteString(")")
	} else if f.Status != 0 {
		fmt.Fprintf(&sb, " (status: %d)", f.Status)
	}
	if f.Err != nil {
		fmt.Fprintf(&sb, ": %v", f.Err)
	}
	return sb.String()
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure creates a Failure of the given kind with a reason.
// Context fields (route, URL, status, cause) are attached via the
// With* methods so call sites stay readable.
func NewFailure(kind Kind, reason string) *Failure {
	return &Failure{Kind: kind, Reason: reason}
}

// WithRoute attaches the route name and returns the failure.
func (f *Failure) WithRoute(route string) *Failure {
	f.Route = route
	return f
}

// WithURL attaches the resolved URL and returns the failure.
func (f *Failure) WithURL(url string) *Failure {
	f.URL = url
	return f
}

// WithStatus attaches the HTTP status and returns the failure.
func (f *Failure) WithStatus(status int) *Failure {
	f.Status = status
	return f
}

// WithCause attaches the underlying error and returns the failure.
func (f *Failure) WithCause(err error) *Failure {
	f.Err = err
	return f
}

// KindOf returns the Kind of err if it is (or wraps) a Failure.
// Returns the empty Kind and false otherwise.
func KindOf(err error) (Kind, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind, true
	}
	return "", false
}

// IsKind reports whether err is (or wraps) a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	got, ok := KindOf(err)
	return ok && got == kind
}
