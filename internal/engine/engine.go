package engine

import (
	"context"
	"fmt"
	"time"
)

// Scale declares the unit the engine reported its category scores on.
//
// Design decision: The adapter reports its own scale explicitly instead
// of leaving callers to infer it from score magnitudes. The inherited
// single-field heuristic (see score.Normalize) cannot distinguish a
// perfect 1.0 on the unit scale from a disastrous 1 on the 0-100 scale;
// an explicit hint removes that ambiguity wherever the adapter knows
// its engine version.
type Scale int

const (
	// ScaleUnknown means the adapter could not determine the scale;
	// normalization falls back to the magnitude heuristic.
	ScaleUnknown Scale = iota

	// ScaleUnit means scores are in [0,1].
	ScaleUnit

	// ScaleCentum means scores are in [0,100].
	ScaleCentum
)

// RawReport is the engine's category-score output before normalization.
type RawReport struct {
	// Scores maps category keys to raw scores on the reported Scale.
	// Categories the engine failed to score are absent, not zero.
	Scores map[string]float64

	// Scale is the unit the scores are on.
	Scale Scale
}

// Target identifies the live session the engine should measure.
type Target struct {
	// URL is the resolved route URL to audit.
	URL string

	// DebugPort is the session's DevTools protocol port the engine
	// attaches to. Exclusively allocated per session.
	DebugPort int
}

// Options configures one engine invocation.
type Options struct {
	// Categories is the category allowlist the engine should audit.
	Categories []string

	// ViewportWidth and ViewportHeight fix the emulated desktop screen.
	ViewportWidth  int
	ViewportHeight int

	// ReportDir is the directory the HTML report artifact is written to.
	ReportDir string

	// BaseName is the artifact base name, conventionally
	// {routeName}-{isoDate} (see ArtifactBaseName).
	BaseName string
}

// Engine is the capability interface for the external auditing engine.
// Implementations must run in measurement-only mode: never apply
// engine-internal pass/fail thresholds.
type Engine interface {
	// Run audits the target and returns the raw category-score report.
	// The context bounds the whole invocation.
	Run(ctx context.Context, target Target, opts Options) (*RawReport, error)
}

// ArtifactBaseName returns the deterministic report-artifact base name
// for a route audited at the given time: {routeName}-{isoDate}.
func ArtifactBaseName(routeName string, at time.Time) string {
	return fmt.Sprintf("%s-%s", routeName, at.UTC().Format("2006-01-02"))
}
