package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/routelight/routelight/internal/config"
	"github.com/routelight/routelight/internal/engine"
	"github.com/routelight/routelight/internal/log"
	"github.com/routelight/routelight/internal/model"
	"github.com/routelight/routelight/internal/orchestrator"
	"github.com/routelight/routelight/internal/report"
	"github.com/routelight/routelight/internal/session"
)

// errRoutesFailed marks a completed run with failing routes, so the
// process exits non-zero without cobra printing a usage screen.
var errRoutesFailed = errors.New("one or more routes failed")

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the configured routes and evaluate score thresholds",
		Long: `Audit runs the external auditing engine against every configured route.

For each route it acquires an isolated browser session, injects stored
cookies when the route is authenticated, navigates, invokes the engine,
and evaluates the category scores (performance, accessibility,
best-practices, seo) against the effective thresholds.

Examples:
  # Audit routes from .routelight in the current or home directory
  routelight audit

  # Use an explicit configuration file and write a markdown report
  routelight audit -c audits.yaml --markdown -o report.md

  # Fan out over four concurrent sessions
  routelight audit --concurrency 4

Configuration file (.routelight) example:
  baseUrl: https://staging.example.com
  authFile: cookies.json
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
        performance: 75`,
		Args: cobra.NoArgs,
		RunE: runAuditCmd,
	}

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .routelight in current or home directory)")

	// Run behavior flags
	cmd.Flags().String("base-url", "", "Override the configured base URL")
	cmd.Flags().Int("concurrency", 0, "Number of concurrent route audits (default: sequential)")
	cmd.Flags().Duration("route-timeout", 0, "Overall per-route deadline")
	cmd.Flags().String("report-dir", "", "Directory for engine report artifacts")
	cmd.Flags().String("engine", "", "Auditing engine binary")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger.With("component", "audit"))
}

// buildConfig loads the configuration file and applies flag overrides.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPathFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, its absence is an
	// error; with discovery, a missing file just means flag-only config.
	configPath := config.FindConfigFile(configPathFlag)
	if configPath == "" && configPathFlag != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configPathFlag)
	}

	cfg := config.NewConfig()
	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" { //nolint:errcheck // Flag is defined above
		cfg.BaseURL = baseURL
	}
	if concurrency, _ := cmd.Flags().GetInt("concurrency"); concurrency > 0 { //nolint:errcheck // Flag is defined above
		cfg.Concurrency = concurrency
	}
	if timeout, _ := cmd.Flags().GetDuration("route-timeout"); timeout > 0 { //nolint:errcheck // Flag is defined above
		cfg.RouteTimeout = timeout
	}
	if reportDir, _ := cmd.Flags().GetString("report-dir"); reportDir != "" { //nolint:errcheck // Flag is defined above
		cfg.ReportDir = reportDir
	}
	if binary, _ := cmd.Flags().GetString("engine"); binary != "" { //nolint:errcheck // Flag is defined above
		cfg.EngineBinary = binary
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runAudit wires the capabilities together and executes the run.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Printf("Auditing %d route(s) against %s (concurrency: %d)...\n\n",
		len(cfg.Routes), cfg.BaseURL, cfg.Concurrency)

	startTime := time.Now()

	ports := session.NewPortRegistry(session.DefaultPortBase, session.DefaultPortPoolSize)
	browser := session.NewChromeBrowser()
	sessions := session.NewManager(browser, ports, session.WithLogger(logger))
	runner := engine.NewLighthouseRunner(cfg.EngineBinary, engine.WithLighthouseLogger(logger))

	orch := orchestrator.New(cfg, sessions, runner, orchestrator.WithLogger(logger))
	summary := orch.RunAll(ctx, cfg.Routes)

	if err := outputReport(cfg, summary); err != nil {
		return fmt.Errorf("report output failed: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nAudit completed in %s\n", elapsed.Round(time.Millisecond))

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !summary.AllPassed() {
		return fmt.Errorf("%w (%d of %d)", errRoutesFailed, summary.FailedCount(), len(summary.Results))
	}
	return nil
}

// outputReport writes the run report in the requested format.
func outputReport(cfg *config.Config, summary *model.RunSummary) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(summary)
	return err
}
