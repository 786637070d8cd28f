// Package session provides isolated, disposable browser sessions for
// route audits.
//
// # Architecture
//
//   - PortRegistry: a capability-scoped pool of debugging ports with
//     acquire/release semantics, so concurrent sessions never collide
//     on a port and exhaustion is deterministic and testable
//   - Browser / BrowserContext: the capability interface a browser
//     engine must satisfy (context allocation, cookie injection,
//     navigation with response capture, selector visibility waits)
//   - ChromeBrowser: the chromedp-backed implementation driving a
//     headless Chrome over the DevTools protocol
//   - Manager: acquires a session for one route (exclusive context,
//     credential injection, navigation, readiness wait) and releases
//     it exactly once regardless of outcome
//
// # Isolation
//
// Every session gets its own browser execution context with a private
// user data directory and a private debugging port: no shared cookie
// jar, no shared cache. Parallel route audits therefore cannot
// cross-contaminate authentication state.
//
// Design decision: The Manager only sees the Browser interface, never
// chromedp types. Any execution environment exposing navigation, cookie
// injection, and a debugging port satisfies the contract, and tests
// substitute a fake browser without a Chrome install.
package session
