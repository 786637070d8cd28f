package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/routelight/routelight/internal/auth"
	"github.com/routelight/routelight/internal/config"
	"github.com/routelight/routelight/internal/engine"
	"github.com/routelight/routelight/internal/model"
	"github.com/routelight/routelight/internal/score"
	"github.com/routelight/routelight/internal/session"
)

// Orchestrator runs the audit flow for routes. All collaborators are
// injected: the session manager, the engine, the logger, and the clock.
// It holds no global state and is safe for concurrent RunRoute calls.
type Orchestrator struct {
	cfg      *config.Config
	sessions *session.Manager
	eng      engine.Engine
	logger   *slog.Logger
	now      func() time.Time

	// Credential store, loaded at most once per run. Auth sources are
	// immutable during a run and the store is read-only, so one load
	// serves all concurrent authenticated routes.
	storeOnce sync.Once
	store     *auth.Store
	storeErr  error
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a custom logger for the orchestrator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for artifact naming and
// elapsed measurements. Used by tests for deterministic names.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an Orchestrator over validated configuration and injected
// capabilities.
func New(cfg *config.Config, sessions *session.Manager, eng engine.Engine, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		sessions: sessions,
		eng:      eng,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}

// RunRoute audits one route end to end and returns its outcome.
// The whole flow runs under the configured per-route deadline; the
// session is released on every exit path.
//
// The returned error is nil for any produced outcome, including one
// with Passed=false: missed thresholds are normal outcomes, not errors.
func (o *Orchestrator) RunRoute(ctx context.Context, route config.Route) (*model.AuditOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.RouteTimeout)
	defer cancel()

	resolvedURL := route.URL(o.cfg.BaseURL)

	o.logger.Info("auditing route",
		"route", route.Name,
		"url", resolvedURL,
		"authenticated", route.Authenticated,
	)

	// Credential checks happen before any navigation attempt, so a
	// misconfigured authenticated route fails fast without spending a
	// browser context.
	var credentials []auth.Credential
	if route.Authenticated {
		var err error
		credentials, err = o.matchCredentials(route, resolvedURL)
		if err != nil {
			return nil, err
		}
	}

	viewport := session.Viewport{Width: o.cfg.ViewportWidth, Height: o.cfg.ViewportHeight}
	handle, err := o.sessions.Acquire(ctx, route, o.cfg.BaseURL, credentials, viewport)
	if err != nil {
		return nil, err
	}
	defer o.sessions.Release(handle)

	raw, err := o.eng.Run(ctx, engine.Target{URL: handle.URL, DebugPort: handle.DebugPort}, engine.Options{
		Categories:     model.Categories(),
		ViewportWidth:  o.cfg.ViewportWidth,
		ViewportHeight: o.cfg.ViewportHeight,
		ReportDir:      o.cfg.ReportDir,
		BaseName:       engine.ArtifactBaseName(route.Name, o.now()),
	})
	if err != nil {
		return nil, enrich(err, model.KindAudit, route.Name, resolvedURL)
	}

	scores, err := score.Normalize(raw)
	if err != nil {
		return nil, enrich(err, model.KindAudit, route.Name, resolvedURL)
	}

	thresholds := score.MergeThresholds(o.cfg.Thresholds, route.Thresholds)
	outcome := score.Evaluate(route.Name, resolvedURL, scores, thresholds)

	o.logger.Info("route audited",
		"route", route.Name,
		"passed", outcome.Passed,
		"failedCategories", outcome.FailedCategories,
	)

	return outcome, nil
}

// matchCredentials loads the credential store (once per run) and
// returns the credentials applicable to the base URL's domain.
// A missing auth source on an authenticated route is a configuration
// error; an empty credential set is a distinct error.
func (o *Orchestrator) matchCredentials(route config.Route, resolvedURL string) ([]auth.Credential, error) {
	if o.cfg.AuthFile == "" {
		return nil, model.NewFailure(model.KindAuth, "authFile not configured").
			WithRoute(route.Name).WithURL(resolvedURL)
	}

	o.storeOnce.Do(func() {
		o.store, o.storeErr = auth.Load(o.cfg.AuthFile)
	})
	if o.storeErr != nil {
		return nil, enrich(o.storeErr, model.KindAuth, route.Name, resolvedURL)
	}

	if o.store.IsEmpty() {
		return nil, model.NewFailure(model.KindAuth, "no cookies present").
			WithRoute(route.Name).WithURL(resolvedURL)
	}

	parsed, err := url.Parse(o.cfg.BaseURL)
	if err != nil {
		// Config is validated upstream; this only fires on a programming
		// error in the caller.
		return nil, model.NewFailure(model.KindConfig, "unparsable base URL").
			WithRoute(route.Name).WithCause(err)
	}

	matched := o.store.MatchDomain(parsed.Hostname())
	o.logger.Debug("credentials matched",
		"route", route.Name,
		"domain", parsed.Hostname(),
		"matched", len(matched),
	)

	return matched, nil
}

// enrich ensures err is a model.Failure of some kind with route and URL
// context attached. Non-Failure errors are wrapped with the fallback
// kind; Failures keep their own kind and only gain missing context.
//
// The failure is never mutated in place: the cached credential-store
// load error is shared by every authenticated route, so attaching one
// route's context happens on a copy.
func enrich(err error, fallback model.Kind, routeName, resolvedURL string) error {
	var failure *model.Failure
	if errors.As(err, &failure) {
		if failure.Route != "" && failure.URL != "" {
			return err
		}
		enriched := *failure
		if enriched.Route == "" {
			enriched.Route = routeName
		}
		if enriched.URL == "" {
			enriched.URL = resolvedURL
		}
		return &enriched
	}
	return model.NewFailure(fallback, "").
		WithRoute(routeName).WithURL(resolvedURL).WithCause(err)
}
