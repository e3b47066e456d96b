// Package runtime orchestrates generation requests for one session.
//
// The Orchestrator is the only component that issues compute calls: it
// validates preconditions, enforces the single-flight discipline, and folds
// every outcome back into the session store. Callers outside this package
// never call the store's generation transitions directly.
package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/gnomonworks/yantra/accuracy"
	"github.com/gnomonworks/yantra/compute"
	"github.com/gnomonworks/yantra/log"
	"github.com/gnomonworks/yantra/metrics"
	"github.com/gnomonworks/yantra/session"
	"github.com/gnomonworks/yantra/types"
)

// Local precondition errors. Both are surfaced to the caller before any
// state change and never reach the store's LastError.
var (
	// ErrMissingLocation indicates generate was called with no location
	// selected. The compute service is never contacted.
	ErrMissingLocation = errors.New("no location selected")

	// ErrGenerationInFlight indicates generate was called while a previous
	// request was still outstanding. Rejected without side effects.
	ErrGenerationInFlight = errors.New("a generation is already in flight")
)

// ResultSink receives successful generation results for persistence.
// Sink failures are logged and never affect the session outcome.
type ResultSink interface {
	Save(result *types.GenerationResult) error
}

// Config configures an Orchestrator.
type Config struct {
	// Store is the session state holder (required).
	Store *session.Store
	// Service is the compute service boundary (required).
	Service compute.Service
	// Sink optionally persists successful results.
	Sink ResultSink
	// Collector is the session metrics collector. Nil disables metrics.
	Collector *metrics.Collector
	// Logger defaults to a no-op logger when nil.
	Logger *log.Logger
}

// Orchestrator owns the request lifecycle for one session.
type Orchestrator struct {
	store     *session.Store
	service   compute.Service
	sink      ResultSink
	collector *metrics.Collector
	logger    *log.Logger
}

// New creates an Orchestrator from the given config.
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}
	return &Orchestrator{
		store:     cfg.Store,
		service:   cfg.Service,
		sink:      cfg.Sink,
		collector: cfg.Collector,
		logger:    logger,
	}
}

// Generate runs one generation request end to end.
//
// Preconditions are checked against a point-in-time snapshot before any
// state change: a missing location or an in-flight request returns an error
// with the store untouched. Otherwise the in-flight flag is set, the
// request is built from the snapshot (later edits do not affect it), and
// the outcome is folded into the store:
//
//   - success installs the result and clears any prior error
//   - a service-reported failure records the service's detail verbatim
//   - a transport failure records a generic fallback message
//
// The returned result aliases the one installed in the store. No retries
// are performed; a failed generation requires a new call.
func (o *Orchestrator) Generate(ctx context.Context) (*types.GenerationResult, error) {
	snap := o.store.Snapshot()

	if snap.Location == nil {
		return nil, ErrMissingLocation
	}
	if snap.InFlight {
		return nil, ErrGenerationInFlight
	}
	if !o.store.BeginGeneration() {
		// Lost a race with another caller between snapshot and begin.
		return nil, ErrGenerationInFlight
	}

	o.collector.IncGenerationStarted()
	started := time.Now()

	req := &compute.GenerationRequest{
		Instrument:        snap.Params.Instrument,
		Location:          *snap.Location,
		Scale:             snap.Params.Scale,
		MaterialThickness: snap.Params.MaterialThickness,
		KerfCompensation:  snap.Params.KerfCompensation,
		IncludeBase:       snap.Params.IncludeBase,
	}

	o.logger.Info("generation started", map[string]any{
		"instrument": string(req.Instrument),
		"location":   req.Location.Name,
		"scale":      req.Scale,
	})

	result, err := o.service.Generate(ctx, req)
	if err != nil {
		message := failureMessage(err)
		o.recordFailure(err)
		o.store.FailGeneration(message)
		o.logger.Error("generation failed", map[string]any{
			"error":    err.Error(),
			"message":  message,
			"duration": time.Since(started).String(),
		})
		return nil, err
	}

	annotateTier(result)
	o.store.CompleteGeneration(result)
	o.collector.IncGenerationSucceeded(result.Validation.AccuracyTier)

	if o.sink != nil {
		if err := o.sink.Save(result); err != nil {
			o.logger.Warn("result persistence failed (best effort)", map[string]any{
				"error": err.Error(),
			})
		}
	}

	o.logger.Info("generation completed", map[string]any{
		"id":       result.ID,
		"tier":     result.Validation.AccuracyTier,
		"duration": time.Since(started).String(),
	})
	return result, nil
}

// failureMessage extracts the display message folded into the store:
// the service's own text when it sent one, else the generic fallback.
func failureMessage(err error) string {
	var remote *compute.RemoteError
	if errors.As(err, &remote) {
		return remote.DisplayMessage()
	}
	return compute.TransportFallbackMessage
}

// recordFailure classifies the failure for metrics.
func (o *Orchestrator) recordFailure(err error) {
	var remote *compute.RemoteError
	if errors.As(err, &remote) {
		o.collector.IncRemoteFailure()
		return
	}
	o.collector.IncTransportFailure()
}

// annotateTier fills in or corrects the result's accuracy tier from the
// validation metric when the service left it unset or unrecognizable.
func annotateTier(result *types.GenerationResult) {
	if accuracy.Tier(result.Validation.AccuracyTier).Valid() {
		return
	}
	result.Validation.AccuracyTier = string(accuracy.Classify(result.Validation.RMSError))
}
