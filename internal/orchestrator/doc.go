// Package orchestrator sequences the audit flow per route and across a
// whole run.
//
// For one route the flow is: credential check and matching (for
// authenticated routes) -> session acquisition (isolated context,
// cookie injection, navigation, readiness wait) -> engine invocation ->
// score normalization and threshold evaluation -> session release.
// Release is guaranteed on every exit path, including failures
// mid-sequence and the per-route deadline; a leaked session is a
// defect.
//
// A run executes routes strictly sequentially by default, because the
// auditing engine is CPU-intensive and concurrent runs skew
// measurements. With a configured concurrency above one, routes fan out
// over an errgroup-bounded pool where every concurrent session holds an
// exclusively allocated debugging port. Results are always returned in
// the order routes were supplied, independent of completion order, by
// buffering per originating index.
//
// A route failure (auth, navigation, selector timeout, audit) aborts
// that route only and is recorded in its result; sibling routes always
// continue. Missed thresholds are not failures: they are normal
// outcomes with Passed=false. Nothing is retried automatically;
// transient failures are surfaced and retry policy is left to the
// invoking harness.
package orchestrator
