package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/routelight/routelight/internal/model"
)

// writeConfigFile writes content to a temp config file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// TestLoadConfigFile tests YAML loading, duration parsing, and default
// re-application.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
baseUrl: https://staging.example.com
authFile: cookies.json
routeTimeout: 3m
concurrency: 4
viewportWidth: 1920
viewportHeight: 1080
engineBinary: /opt/lighthouse/bin/lighthouse
thresholds:
  performance: 50
  accessibility: 80
routes:
  - name: home
    path: /
  - name: account
    path: /account
    authenticated: true
    waitSelector: "[data-ready]"
    thresholds:
      performance: 75
`)

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BaseURL != "https://staging.example.com" {
			t.Errorf("unexpected BaseURL: %q", cfg.BaseURL)
		}
		if cfg.AuthFile != "cookies.json" {
			t.Errorf("unexpected AuthFile: %q", cfg.AuthFile)
		}
		if cfg.RouteTimeout != 3*time.Minute {
			t.Errorf("expected RouteTimeout 3m, got %v", cfg.RouteTimeout)
		}
		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency 4, got %d", cfg.Concurrency)
		}
		if cfg.ViewportWidth != 1920 || cfg.ViewportHeight != 1080 {
			t.Errorf("unexpected viewport: %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
		}
		if cfg.EngineBinary != "/opt/lighthouse/bin/lighthouse" {
			t.Errorf("unexpected EngineBinary: %q", cfg.EngineBinary)
		}
		if cfg.Thresholds[model.CategoryPerformance] != 50 {
			t.Errorf("expected global performance threshold 50, got %d", cfg.Thresholds[model.CategoryPerformance])
		}
		if len(cfg.Routes) != 2 {
			t.Fatalf("expected 2 routes, got %d", len(cfg.Routes))
		}
		account := cfg.Routes[1]
		if !account.Authenticated {
			t.Error("expected account route to be authenticated")
		}
		if account.WaitSelector != "[data-ready]" {
			t.Errorf("unexpected WaitSelector: %q", account.WaitSelector)
		}
		if account.Thresholds[model.CategoryPerformance] != 75 {
			t.Errorf("expected per-route performance threshold 75, got %d", account.Thresholds[model.CategoryPerformance])
		}
	})

	t.Run("minimal config gets defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
baseUrl: https://example.com
routes:
  - name: home
    path: /
`)

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.RouteTimeout != DefaultRouteTimeout {
			t.Errorf("expected default RouteTimeout, got %v", cfg.RouteTimeout)
		}
		if cfg.Concurrency != DefaultConcurrency {
			t.Errorf("expected default Concurrency, got %d", cfg.Concurrency)
		}
		if cfg.ViewportWidth != DefaultViewportWidth {
			t.Errorf("expected default ViewportWidth, got %d", cfg.ViewportWidth)
		}
		if cfg.EngineBinary != DefaultEngineBinary {
			t.Errorf("expected default EngineBinary, got %q", cfg.EngineBinary)
		}
	})

	t.Run("invalid routeTimeout syntax", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
baseUrl: https://example.com
routeTimeout: three minutes
routes:
  - name: home
    path: /
`)

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for unparsable routeTimeout")
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "baseUrl: [unclosed")
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// TestFindConfigFile tests explicit-path resolution. The cwd/home
// discovery branches depend on ambient state and are left to manual
// verification.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned verbatim", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "baseUrl: https://example.com\n")
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "absent.yaml")
		if got := FindConfigFile(missing); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
