package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/routelight/routelight/internal/model"
)

// Default configuration values. These mirror the defaults of the
// original audit runner where applicable.
const (
	// DefaultViewportWidth is the desktop viewport width used for every
	// session. Audits run with a fixed viewport so scores are comparable
	// between routes and runs.
	DefaultViewportWidth = 1280

	// DefaultViewportHeight is the desktop viewport height.
	DefaultViewportHeight = 720

	// DefaultRouteTimeout is the overall per-route deadline covering
	// session acquisition, navigation, readiness wait, and the engine
	// run. Exceeding it aborts the route and releases its session.
	DefaultRouteTimeout = 180 * time.Second

	// DefaultConcurrency of 1 runs routes strictly sequentially. The
	// auditing engine is CPU-intensive; concurrent runs skew performance
	// measurements, so parallelism is opt-in.
	DefaultConcurrency = 1

	// DefaultEngineBinary is the auditing engine executable looked up on
	// PATH when no explicit binary is configured.
	DefaultEngineBinary = "lighthouse"

	// AppName is the application name used for XDG directory paths.
	AppName = "routelight"
)

// Config holds all configuration options for a routelight run.
// It is populated from the configuration file and CLI flags, then passed
// through the application via dependency injection rather than global
// state. The audit core trusts it as already validated.
type Config struct {
	// BaseURL is the absolute URL all route paths are resolved against.
	BaseURL string `yaml:"baseUrl"`

	// Routes is the list of targets to audit. Immutable once loaded.
	Routes []Route `yaml:"routes"`

	// Thresholds holds the global threshold overrides applied to every
	// route unless the route overrides a category itself.
	Thresholds model.ThresholdSet `yaml:"thresholds,omitempty"`

	// AuthFile is the path to the stored-cookie document used for
	// authenticated routes. Empty means no credential source is
	// configured; authenticated routes then fail before navigation.
	AuthFile string `yaml:"authFile,omitempty"`

	// ViewportWidth is the fixed desktop viewport width in pixels.
	ViewportWidth int `yaml:"viewportWidth,omitempty"`

	// ViewportHeight is the fixed desktop viewport height in pixels.
	ViewportHeight int `yaml:"viewportHeight,omitempty"`

	// RouteTimeout is the overall per-route deadline.
	// Populated from RouteTimeoutRaw when loading a config file.
	RouteTimeout time.Duration `yaml:"-"`

	// RouteTimeoutRaw is the routeTimeout value as written in the
	// config file, in Go duration syntax ("180s", "3m"). YAML has no
	// native duration type, so the loader parses this field into
	// RouteTimeout.
	RouteTimeoutRaw string `yaml:"routeTimeout,omitempty"`

	// Concurrency is the maximum number of routes audited in parallel.
	// Each concurrent session gets an exclusively allocated debug port.
	Concurrency int `yaml:"concurrency,omitempty"`

	// ReportDir is the directory engine report artifacts are written to.
	// Defaults to the XDG data directory (see XDGDataDir).
	ReportDir string `yaml:"reportDir,omitempty"`

	// EngineBinary is the auditing engine executable. Defaults to
	// DefaultEngineBinary; mainly overridden in tests and CI images.
	EngineBinary string `yaml:"engineBinary,omitempty"`

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool `yaml:"-"`

	// JSONReport enables JSON run output instead of the human-readable
	// summary. Mutually exclusive with MarkdownReport.
	JSONReport bool `yaml:"-"`

	// MarkdownReport enables Markdown run output instead of the
	// human-readable summary. Mutually exclusive with JSONReport.
	MarkdownReport bool `yaml:"-"`

	// ReportFile is the output file path for the run report.
	// When empty, the report is written to stdout.
	ReportFile string `yaml:"-"`
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; loading a config file
// and CLI flags override specific values after creation.
func NewConfig() *Config {
	return &Config{
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		RouteTimeout:   DefaultRouteTimeout,
		Concurrency:    DefaultConcurrency,
		ReportDir:      XDGDataDir(),
		EngineBinary:   DefaultEngineBinary,
	}
}

// XDGDataDir returns the XDG data directory for routelight.
// On Linux: ~/.local/share/routelight
// On macOS: ~/Library/Application Support/routelight
// On Windows: %LOCALAPPDATA%\routelight
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for routelight.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing the first problem found;
// fixing one error often makes others irrelevant, so errors are not
// collected. This is called once after loading, before any audit
// begins — the audit core does not re-validate.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}

	if len(c.Routes) == 0 {
		return ErrNoRoutes
	}

	seen := make(map[string]bool, len(c.Routes))
	for i := range c.Routes {
		route := &c.Routes[i]

		if !filenameSafe(route.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidRouteName, route.Name)
		}
		if seen[route.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, route.Name)
		}
		seen[route.Name] = true

		if len(route.Path) == 0 || route.Path[0] != '/' {
			return fmt.Errorf("%w: route %q has path %q", ErrInvalidRoutePath, route.Name, route.Path)
		}

		if err := validateThresholds(route.Thresholds); err != nil {
			return fmt.Errorf("route %q: %w", route.Name, err)
		}
	}

	if err := validateThresholds(c.Thresholds); err != nil {
		return err
	}

	if c.RouteTimeout <= 0 {
		return ErrInvalidRouteTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return ErrInvalidViewport
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// validateThresholds checks category keys and the [0,100] value range.
func validateThresholds(ts model.ThresholdSet) error {
	known := make(map[string]bool, 4)
	for _, category := range model.Categories() {
		known[category] = true
	}
	for category, minimum := range ts {
		if !known[category] {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidThreshold, category)
		}
		if minimum < 0 || minimum > 100 {
			return fmt.Errorf("%w: %s=%d outside [0,100]", ErrInvalidThreshold, category, minimum)
		}
	}
	return nil
}
