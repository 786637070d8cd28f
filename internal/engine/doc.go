// Package engine provides the adapter to the external auditing engine.
//
// The core never implements page measurement itself: it drives an
// external engine (Lighthouse by default) through the Engine interface
// against a live browser session's debugging port. The adapter always
// invokes the engine in measurement-only mode: no engine-side pass/fail
// thresholds are ever passed, because threshold evaluation is entirely
// owned by the score evaluator. This keeps failure messages
// route-specific and consistent instead of dictated by engine-internal
// formatting.
//
// As a side effect of every run the adapter requests a persisted HTML
// report artifact with the deterministic name {routeName}-{isoDate} in
// the configured report directory.
package engine
