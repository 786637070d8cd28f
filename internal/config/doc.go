// Package config provides configuration structures and utilities for routelight.
// It defines the resolved run configuration (base URL, routes, thresholds,
// viewport, timing), the YAML configuration file loader and discovery logic,
// and validation with sentinel errors.
//
// The audit core trusts the configuration produced here as already validated:
// URL shape, threshold ranges, and path prefixing are checked once by
// Validate, not re-checked at every point of use.
package config
