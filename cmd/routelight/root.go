package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for routelight.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routelight",
		Short: "Performance and quality audits for declared web routes",
		Long: `Routelight turns a declarative list of web routes into automated
performance/quality audits. Each route gets an isolated browser session
(with stored cookies injected for authenticated routes), is measured by
an external auditing engine, and is evaluated against configurable
score thresholds.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
