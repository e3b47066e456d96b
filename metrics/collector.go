// Package metrics provides per-session metrics collection.
//
// The Collector accumulates counters across the generations of one session.
// It is a leaf package with no internal dependencies. All increment methods
// are nil-receiver safe so callers never need to guard instrumentation.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of session metrics.
// Safe to read concurrently after creation.
type Snapshot struct {
	// Generation lifecycle
	GenerationsStarted   int64
	GenerationsSucceeded int64
	GenerationsFailed    int64

	// Failure classification
	RemoteFailures    int64
	TransportFailures int64

	// Results by accuracy tier label
	ResultsByTier map[string]int64

	// Dimensions (informational, set at construction)
	SessionID string
}

// Collector accumulates metrics during a session.
// Thread-safe via sync.Mutex.
type Collector struct {
	mu sync.Mutex

	generationsStarted   int64
	generationsSucceeded int64
	generationsFailed    int64

	remoteFailures    int64
	transportFailures int64

	resultsByTier map[string]int64

	sessionID string
}

// NewCollector creates a Collector labeled with the session identifier.
func NewCollector(sessionID string) *Collector {
	return &Collector{
		sessionID:     sessionID,
		resultsByTier: make(map[string]int64),
	}
}

// IncGenerationStarted records a generation request being issued.
func (c *Collector) IncGenerationStarted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generationsStarted++
}

// IncGenerationSucceeded records a completed generation and tallies its
// accuracy tier.
func (c *Collector) IncGenerationSucceeded(tier string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generationsSucceeded++
	c.resultsByTier[tier]++
}

// IncRemoteFailure records a generation the service rejected.
func (c *Collector) IncRemoteFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generationsFailed++
	c.remoteFailures++
}

// IncTransportFailure records a generation that failed before any service
// response could be interpreted.
func (c *Collector) IncTransportFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generationsFailed++
	c.transportFailures++
}

// Snapshot returns an immutable copy of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{ResultsByTier: map[string]int64{}}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	byTier := make(map[string]int64, len(c.resultsByTier))
	for k, v := range c.resultsByTier {
		byTier[k] = v
	}
	return Snapshot{
		GenerationsStarted:   c.generationsStarted,
		GenerationsSucceeded: c.generationsSucceeded,
		GenerationsFailed:    c.generationsFailed,
		RemoteFailures:       c.remoteFailures,
		TransportFailures:    c.transportFailures,
		ResultsByTier:        byTier,
		SessionID:            c.sessionID,
	}
}
