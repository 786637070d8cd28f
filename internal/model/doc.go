// Package model defines the core data structures used throughout routelight.
//
// This package contains the following main types:
//   - ThresholdSet: minimum acceptable category scores with layered merging
//   - CategoryScores: normalized audit scores in the [0,1] range
//   - AuditOutcome: the per-route verdict (scores, thresholds, pass/fail)
//   - RouteResult / RunSummary: reporting records for a whole run
//   - Failure: the typed error carrying an explicit Kind and context
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (session, engine, score, orchestrator,
// report) need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
