// Package main provides the entry point for the routelight CLI.
//
// Routelight audits a declarative list of web routes with an external
// auditing engine and evaluates the resulting category scores against
// configurable thresholds.
//
// Usage:
//
//	routelight audit
//	routelight audit -c myconfig.yaml --markdown
//
// See --help for all available options.
package main

// main is the entry point for routelight.
func main() {
	Execute()
}
