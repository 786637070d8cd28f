package session

import (
	"errors"
	"sync"
)

// Default port pool bounds. The base is Chrome's conventional debugging
// port; the pool size caps how many browser contexts can be live at
// once, which in practice is bounded by the orchestrator's concurrency.
const (
	// DefaultPortBase is the first debugging port handed out.
	DefaultPortBase = 9222

	// DefaultPortPoolSize is the number of ports in the pool.
	DefaultPortPoolSize = 32
)

// ErrPortsExhausted is returned by Acquire when every port in the pool
// is held by an active session. It indicates the pool is smaller than
// the effective concurrency, not a transient condition worth retrying.
var ErrPortsExhausted = errors.New("debugging port pool exhausted")

// PortRegistry hands out unique debugging ports to concurrently active
// sessions and recycles them on release. It is the only process-wide
// shared resource of the audit core.
//
// Design decision: We allocate from a fixed contiguous range instead of
// asking the OS for ephemeral ports so exclusivity is guaranteed by the
// registry itself and exhaustion behavior is deterministic under test.
type PortRegistry struct {
	mu    sync.Mutex
	base  int
	size  int
	inUse map[int]bool
}

// NewPortRegistry creates a registry over [base, base+size).
// Non-positive arguments fall back to the defaults.
func NewPortRegistry(base, size int) *PortRegistry {
	if base <= 0 {
		base = DefaultPortBase
	}
	if size <= 0 {
		size = DefaultPortPoolSize
	}
	return &PortRegistry{
		base:  base,
		size:  size,
		inUse: make(map[int]bool, size),
	}
}

// Acquire reserves the lowest free port in the pool.
// Returns ErrPortsExhausted when no port is free.
func (r *PortRegistry) Acquire() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for port := r.base; port < r.base+r.size; port++ {
		if !r.inUse[port] {
			r.inUse[port] = true
			return port, nil
		}
	}
	return 0, ErrPortsExhausted
}

// Release returns a port to the pool. Releasing a port that is not
// currently held is a no-op, which keeps session release idempotent.
func (r *PortRegistry) Release(port int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inUse, port)
}

// Active returns the number of ports currently held.
func (r *PortRegistry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inUse)
}
