package runtime

import (
	"github.com/gnomonworks/yantra/log"
	"github.com/gnomonworks/yantra/metrics"
)

// SessionReport is the end-of-session summary of generation activity,
// composed from the metrics collector's counters.
type SessionReport struct {
	SessionID            string           `json:"session_id"`
	GenerationsStarted   int64            `json:"generations_started"`
	GenerationsSucceeded int64            `json:"generations_succeeded"`
	GenerationsFailed    int64            `json:"generations_failed"`
	RemoteFailures       int64            `json:"remote_failures"`
	TransportFailures    int64            `json:"transport_failures"`
	ResultsByTier        map[string]int64 `json:"results_by_tier,omitempty"`
}

// BuildSessionReport composes a SessionReport from a metrics snapshot.
func BuildSessionReport(snap metrics.Snapshot) *SessionReport {
	return &SessionReport{
		SessionID:            snap.SessionID,
		GenerationsStarted:   snap.GenerationsStarted,
		GenerationsSucceeded: snap.GenerationsSucceeded,
		GenerationsFailed:    snap.GenerationsFailed,
		RemoteFailures:       snap.RemoteFailures,
		TransportFailures:    snap.TransportFailures,
		ResultsByTier:        snap.ResultsByTier,
	}
}

// LogSessionReport emits the session summary through the logger. Sessions
// that never issued a generation stay silent.
func LogSessionReport(logger *log.Logger, snap metrics.Snapshot) {
	if snap.GenerationsStarted == 0 {
		return
	}
	report := BuildSessionReport(snap)
	logger.Info("session summary", map[string]any{
		"generations_started":   report.GenerationsStarted,
		"generations_succeeded": report.GenerationsSucceeded,
		"generations_failed":    report.GenerationsFailed,
		"remote_failures":       report.RemoteFailures,
		"transport_failures":    report.TransportFailures,
		"results_by_tier":       report.ResultsByTier,
	})
}
