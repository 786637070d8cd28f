// Package score normalizes raw engine reports and evaluates them
// against threshold configuration.
//
// Normalization brings every score onto the [0,1] scale regardless of
// the unit the engine reported on. Threshold merging layers built-in
// defaults, global overrides, and per-route overrides, with per-route
// winning per category. Evaluation is strict per category: every
// category must individually clear its threshold (>=); there is no
// weighted aggregate.
package score
