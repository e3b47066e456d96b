package metrics

import (
	"sync"
	"testing"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("s1")

	c.IncGenerationStarted()
	c.IncGenerationSucceeded("excellent")
	c.IncGenerationStarted()
	c.IncRemoteFailure()
	c.IncGenerationStarted()
	c.IncTransportFailure()

	snap := c.Snapshot()
	if snap.GenerationsStarted != 3 {
		t.Errorf("started = %d, want 3", snap.GenerationsStarted)
	}
	if snap.GenerationsSucceeded != 1 {
		t.Errorf("succeeded = %d, want 1", snap.GenerationsSucceeded)
	}
	if snap.GenerationsFailed != 2 {
		t.Errorf("failed = %d, want 2", snap.GenerationsFailed)
	}
	if snap.RemoteFailures != 1 || snap.TransportFailures != 1 {
		t.Errorf("failure split = (%d remote, %d transport), want (1, 1)",
			snap.RemoteFailures, snap.TransportFailures)
	}
	if snap.ResultsByTier["excellent"] != 1 {
		t.Errorf("excellent tally = %d, want 1", snap.ResultsByTier["excellent"])
	}
	if snap.SessionID != "s1" {
		t.Errorf("session id = %q", snap.SessionID)
	}
}

func TestNilCollectorSafe(t *testing.T) {
	var c *Collector

	// Must not panic.
	c.IncGenerationStarted()
	c.IncGenerationSucceeded("good")
	c.IncRemoteFailure()
	c.IncTransportFailure()

	snap := c.Snapshot()
	if snap.GenerationsStarted != 0 {
		t.Errorf("nil collector counted: %+v", snap)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	c := NewCollector("s1")
	c.IncGenerationSucceeded("good")

	snap := c.Snapshot()
	snap.ResultsByTier["good"] = 99

	if got := c.Snapshot().ResultsByTier["good"]; got != 1 {
		t.Errorf("collector mutated through snapshot: %d", got)
	}
}

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector("s1")
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncGenerationStarted()
			c.IncGenerationSucceeded("good")
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.GenerationsStarted != 100 || snap.GenerationsSucceeded != 100 {
		t.Errorf("counts = (%d, %d), want (100, 100)",
			snap.GenerationsStarted, snap.GenerationsSucceeded)
	}
}
