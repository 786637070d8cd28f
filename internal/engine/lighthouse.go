package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// LighthouseRunner invokes the Lighthouse CLI against a live session's
// debugging port. Lighthouse reports category scores on the unit scale,
// so the runner declares ScaleUnit on every report.
type LighthouseRunner struct {
	// binary is the Lighthouse executable, looked up on PATH when not
	// an absolute path.
	binary string

	logger *slog.Logger
}

// LighthouseOption configures a LighthouseRunner.
type LighthouseOption func(*LighthouseRunner)

// WithLighthouseLogger sets a custom logger for the runner.
func WithLighthouseLogger(logger *slog.Logger) LighthouseOption {
	return func(r *LighthouseRunner) {
		r.logger = logger
	}
}

// NewLighthouseRunner creates a runner for the given engine binary.
// An empty binary name falls back to "lighthouse".
func NewLighthouseRunner(binary string, opts ...LighthouseOption) *LighthouseRunner {
	r := &LighthouseRunner{binary: binary}
	if r.binary == "" {
		r.binary = "lighthouse"
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// lighthouseResult is the subset of Lighthouse's JSON output the
// adapter consumes.
type lighthouseResult struct {
	Categories map[string]struct {
		Score *float64 `json:"score"`
	} `json:"categories"`
	RuntimeError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"runtimeError"`
}

// Run invokes Lighthouse against the target in measurement-only mode
// and parses its JSON output. The HTML report artifact is written to
// opts.ReportDir under opts.BaseName as a side effect; artifact write
// problems are logged, never fatal, because the scores are the product.
func (r *LighthouseRunner) Run(ctx context.Context, target Target, opts Options) (*RawReport, error) {
	if err := os.MkdirAll(opts.ReportDir, 0750); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	artifactPath := filepath.Join(opts.ReportDir, opts.BaseName)

	// Attach to the already-running browser via --port: Lighthouse must
	// measure the session's page (with its injected credentials), not a
	// fresh browser of its own. No assertion flags are ever passed; the
	// evaluator owns all thresholds.
	args := []string{
		target.URL,
		"--port", strconv.Itoa(target.DebugPort),
		"--only-categories", strings.Join(opts.Categories, ","),
		"--output", "json,html",
		"--output-path", artifactPath,
		"--formFactor", "desktop",
		"--screenEmulation.disabled",
		"--chrome-flags", fmt.Sprintf("--window-size=%d,%d", opts.ViewportWidth, opts.ViewportHeight),
		"--quiet",
	}

	r.logger.Debug("invoking engine",
		"binary", r.binary,
		"url", target.URL,
		"port", target.DebugPort,
		"artifact", opts.BaseName,
	)

	cmd := exec.CommandContext(ctx, r.binary, args...) //nolint:gosec // Binary and args come from validated config
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("engine invocation failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	// With --output json,html and a bare --output-path, Lighthouse
	// writes <path>.report.json and <path>.report.html.
	jsonPath := artifactPath + ".report.json"
	data, err := os.ReadFile(jsonPath) //nolint:gosec // Path is derived from validated config
	if err != nil {
		return nil, fmt.Errorf("read engine output: %w", err)
	}

	return parseLighthouseReport(data)
}

// parseLighthouseReport extracts category scores from Lighthouse JSON.
func parseLighthouseReport(data []byte) (*RawReport, error) {
	var result lighthouseResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("malformed engine output: %w", err)
	}

	if result.RuntimeError != nil && result.RuntimeError.Code != "NO_ERROR" {
		return nil, fmt.Errorf("engine runtime error %s: %s",
			result.RuntimeError.Code, result.RuntimeError.Message)
	}

	scores := make(map[string]float64, len(result.Categories))
	for category, entry := range result.Categories {
		// A null score means the category could not be measured; leave
		// it absent so the evaluator reports it as missing rather than
		// treating it as a zero.
		if entry.Score != nil {
			scores[category] = *entry.Score
		}
	}

	return &RawReport{Scores: scores, Scale: ScaleUnit}, nil
}
