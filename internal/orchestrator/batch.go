package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/routelight/routelight/internal/config"
	"github.com/routelight/routelight/internal/model"
)

// RunAll audits every route and returns one result per route, in the
// order routes were supplied, independent of completion order.
//
// Routes run sequentially when the configured concurrency is 1 (the
// default) and otherwise fan out over an errgroup-bounded pool. A
// failing route is recorded in its result and never aborts siblings;
// the only way RunAll stops early is cancellation of ctx, and even then
// already-buffered results are returned.
func (o *Orchestrator) RunAll(ctx context.Context, routes []config.Route) *model.RunSummary {
	started := o.now()

	o.logger.Info("starting run",
		"routes", len(routes),
		"concurrency", o.cfg.Concurrency,
		"baseUrl", o.cfg.BaseURL,
	)

	// Pre-allocate and write by originating index to preserve supply
	// order. Each goroutine writes a distinct element, so no lock is
	// needed.
	results := make([]model.RouteResult, len(routes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Concurrency)

	for i, route := range routes {
		g.Go(func() error {
			routeStart := o.now()

			result := model.RouteResult{
				RouteName:    route.Name,
				DisplayTitle: route.Title(),
				ResolvedURL:  route.URL(o.cfg.BaseURL),
			}

			select {
			case <-gctx.Done():
				result.Err = gctx.Err()
				result.ErrorMessage = gctx.Err().Error()
			default:
				outcome, err := o.RunRoute(gctx, route)
				if err != nil {
					result.Err = err
					result.ErrorMessage = err.Error()
					if kind, ok := model.KindOf(err); ok {
						result.ErrorKind = kind
					}
					o.logger.Warn("route failed",
						"route", route.Name,
						"kind", result.ErrorKind,
						"error", err,
					)
				} else {
					result.Outcome = outcome
				}
			}

			result.Elapsed = o.now().Sub(routeStart)
			results[i] = result

			// Failures are recorded, not returned: returning an error
			// would cancel sibling routes via the group context.
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // Goroutines always return nil; failures live in results

	summary := &model.RunSummary{
		BaseURL:   o.cfg.BaseURL,
		StartedAt: started,
		Elapsed:   o.now().Sub(started),
		Results:   results,
	}

	o.logger.Info("run complete",
		"routes", len(routes),
		"passed", summary.PassedCount(),
		"failed", summary.FailedCount(),
		"elapsed", summary.Elapsed,
	)

	return summary
}

// RegisterFunc is the test-registration capability: it registers a
// named test whose body is the given function. The host test framework
// owns execution and reporting; the function signals failure by
// returning a descriptive error.
type RegisterFunc func(name string, run func(ctx context.Context) error)

// RegisterAll hands every route to the injected registration capability
// as an independently runnable audit. A missed threshold is escalated
// to a test-framework-visible failure here, because the registered
// function is the caller that decides escalation.
func (o *Orchestrator) RegisterAll(routes []config.Route, register RegisterFunc) {
	for _, route := range routes {
		register(route.Name, func(ctx context.Context) error {
			outcome, err := o.RunRoute(ctx, route)
			if err != nil {
				return err
			}
			if !outcome.Passed {
				return thresholdError(outcome)
			}
			return nil
		})
	}
}

// thresholdError renders a missed-threshold outcome as a descriptive
// error for the host test framework.
func thresholdError(outcome *model.AuditOutcome) error {
	parts := make([]string, 0, len(outcome.FailedCategories))
	for _, category := range outcome.FailedCategories {
		parts = append(parts, fmt.Sprintf("%s %.0f < %d",
			category, outcome.ScorePercent(category), outcome.EffectiveThresholds[category]))
	}
	return fmt.Errorf("thresholds not met for route %q (%s): %s",
		outcome.RouteName, outcome.ResolvedURL, strings.Join(parts, ", "))
}
