package session

import (
	"context"

	"github.com/routelight/routelight/internal/auth"
)

// Viewport is the fixed browser viewport in pixels.
// Audits run desktop form factor with a fixed viewport so scores are
// comparable between routes and runs.
type Viewport struct {
	Width  int
	Height int
}

// ContextSpec describes the browser execution context to allocate.
type ContextSpec struct {
	// DebugPort is the exclusively allocated DevTools protocol port the
	// context must listen on. The auditing engine attaches to it.
	DebugPort int

	// Viewport is the fixed window size for the context.
	Viewport Viewport
}

// Browser is the capability interface a browser engine must satisfy.
// Implementations allocate isolated execution contexts: private cookie
// storage, private cache, private debugging port.
type Browser interface {
	// NewContext allocates a fresh, isolated execution context.
	// The returned context is exclusively owned by one session and must
	// be closed by it.
	NewContext(ctx context.Context, spec ContextSpec) (BrowserContext, error)
}

// BrowserContext is one isolated browser execution context, equivalent
// to a dedicated profile with a single tab.
type BrowserContext interface {
	// SetCookies injects the given credentials into the context's cookie
	// storage. Called before navigation so authenticated pages load
	// logged-in.
	SetCookies(ctx context.Context, credentials []auth.Credential) error

	// Navigate loads url and returns the HTTP status of the main
	// document response. A status of 0 with a nil error means navigation
	// completed without producing an HTTP response; callers treat that
	// as a navigation failure.
	Navigate(ctx context.Context, url string) (int, error)

	// WaitVisible blocks until the element matched by the CSS selector
	// is visible, or ctx is done. Callers bound the wait through ctx.
	WaitVisible(ctx context.Context, selector string) error

	// Close tears the context down and frees its resources. Safe to
	// call more than once.
	Close() error
}
