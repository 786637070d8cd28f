package session

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/routelight/routelight/internal/auth"
	"github.com/routelight/routelight/internal/config"
	"github.com/routelight/routelight/internal/model"
)

// DefaultSelectorTimeout bounds the wait for a route's readiness
// selector to become visible after navigation.
const DefaultSelectorTimeout = 10 * time.Second

// Handle is an exclusively-owned, short-lived binding of a browser
// execution context to one route. It is always released exactly once
// regardless of outcome; Release is idempotent.
type Handle struct {
	// ID uniquely identifies the session for logging.
	ID string

	// RouteName is the route the session is bound to.
	RouteName string

	// URL is the resolved target URL the session navigated to.
	URL string

	// DebugPort is the DevTools port the auditing engine attaches to.
	DebugPort int

	bctx     BrowserContext
	released atomic.Bool
}

// Manager acquires and releases audit sessions. It owns the browser
// capability and the port registry; both are injected, never global.
type Manager struct {
	browser         Browser
	ports           *PortRegistry
	logger          *slog.Logger
	selectorTimeout time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets a custom logger for the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSelectorTimeout overrides the readiness-selector wait bound.
// Mainly used by tests; the contract value is DefaultSelectorTimeout.
func WithSelectorTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		if timeout > 0 {
			m.selectorTimeout = timeout
		}
	}
}

// NewManager creates a session manager over the given browser and port
// registry.
func NewManager(browser Browser, ports *PortRegistry, opts ...ManagerOption) *Manager {
	m := &Manager{
		browser:         browser,
		ports:           ports,
		selectorTimeout: DefaultSelectorTimeout,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}

	return m
}

// Acquire allocates an isolated browser context for the route, injects
// the given credentials, navigates to baseURL + route.Path, and waits
// for the route's readiness selector when one is set.
//
// Failure classification:
//   - navigation error, absent HTTP response, or status >= 400 is a
//     navigation failure carrying the resolved URL and status
//   - a readiness selector that never becomes visible within the bound
//     is a selector-timeout failure, distinct from navigation
//   - browser or port allocation problems are audit failures: the page
//     was never reached and the audit could not run
//
// On any failure every partially acquired resource is released before
// returning. On success the caller owns the handle and must Release it.
func (m *Manager) Acquire(ctx context.Context, route config.Route, baseURL string, credentials []auth.Credential, viewport Viewport) (*Handle, error) {
	url := route.URL(baseURL)

	port, err := m.ports.Acquire()
	if err != nil {
		return nil, model.NewFailure(model.KindAudit, "no debugging port available").
			WithRoute(route.Name).WithURL(url).WithCause(err)
	}

	bctx, err := m.browser.NewContext(ctx, ContextSpec{DebugPort: port, Viewport: viewport})
	if err != nil {
		m.ports.Release(port)
		return nil, model.NewFailure(model.KindAudit, "browser context unavailable").
			WithRoute(route.Name).WithURL(url).WithCause(err)
	}

	handle := &Handle{
		ID:        uuid.NewString(),
		RouteName: route.Name,
		URL:       url,
		DebugPort: port,
		bctx:      bctx,
	}

	m.logger.Debug("session acquired",
		"session", handle.ID,
		"route", route.Name,
		"port", port,
	)

	if len(credentials) > 0 {
		if err := bctx.SetCookies(ctx, credentials); err != nil {
			m.Release(handle)
			return nil, model.NewFailure(model.KindAuth, "credential injection failed").
				WithRoute(route.Name).WithURL(url).WithCause(err)
		}
		m.logger.Debug("credentials injected",
			"session", handle.ID,
			"route", route.Name,
			"count", len(credentials),
		)
	}

	status, err := bctx.Navigate(ctx, url)
	if err != nil {
		m.Release(handle)
		return nil, model.NewFailure(model.KindNavigation, "navigation failed").
			WithRoute(route.Name).WithURL(url).WithCause(err)
	}
	if status == 0 {
		m.Release(handle)
		return nil, model.NewFailure(model.KindNavigation, "no HTTP response received").
			WithRoute(route.Name).WithURL(url)
	}
	if status >= 400 {
		m.Release(handle)
		return nil, model.NewFailure(model.KindNavigation, "HTTP error status").
			WithRoute(route.Name).WithURL(url).WithStatus(status)
	}

	if route.WaitSelector != "" {
		waitCtx, cancel := context.WithTimeout(ctx, m.selectorTimeout)
		err := handle.bctx.WaitVisible(waitCtx, route.WaitSelector)
		cancel()
		if err != nil {
			m.Release(handle)
			reason := "readiness selector never became visible"
			if !errors.Is(err, context.DeadlineExceeded) {
				reason = "readiness selector wait failed"
			}
			return nil, model.NewFailure(model.KindSelectorTimeout, reason).
				WithRoute(route.Name).WithURL(url).WithCause(err)
		}
	}

	m.logger.Debug("session ready",
		"session", handle.ID,
		"route", route.Name,
		"status", status,
	)

	return handle, nil
}

// Release tears the session down and returns its port to the registry.
// It always succeeds and is idempotent: a leaked session is a defect,
// so callers release on every exit path and double releases are free.
func (m *Manager) Release(handle *Handle) {
	if handle == nil || !handle.released.CompareAndSwap(false, true) {
		return
	}

	if err := handle.bctx.Close(); err != nil {
		m.logger.Warn("browser context close failed",
			"session", handle.ID,
			"route", handle.RouteName,
			"error", err,
		)
	}
	m.ports.Release(handle.DebugPort)

	m.logger.Debug("session released",
		"session", handle.ID,
		"route", handle.RouteName,
	)
}
