// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// Routelight handles stored authentication cookies, so log output is a
// real leak vector: a verbose run would otherwise print every injected
// cookie value. The SecureHandler masks attribute values whose keys
// look credential-shaped (cookie, token, password, ...) and string
// values matching common secret patterns (JWTs, bearer tokens) before
// they reach the underlying handler.
//
// Loggers built here are passed to components via dependency injection;
// nothing in the module reaches for a process-wide logger except as a
// fallback default.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("cookie injected",
//	    "cookie", "session=abc123", // masked in output
//	    "route", "home",
//	)
package log
