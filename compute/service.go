// Package compute defines the boundary contract with the remote compute
// service and its HTTP implementation.
//
// The service owns geometry synthesis, ephemeris math, validation, and
// export generation. This package only builds requests, sends them, and
// classifies failures into *RemoteError (the service answered with a
// failure) and *TransportError (no interpretable answer arrived).
package compute

import (
	"context"

	"github.com/gnomonworks/yantra/types"
)

// GenerationRequest is the payload for one generation call.
// Field names match the service's request contract.
type GenerationRequest struct {
	Instrument        types.InstrumentType `json:"instrument_type"`
	Location          types.Location       `json:"location"`
	Scale             float64              `json:"scale"`
	MaterialThickness float64              `json:"material_thickness"`
	KerfCompensation  float64              `json:"kerf_compensation"`
	IncludeBase       bool                 `json:"include_base"`
}

// DefaultSunPathPoints is the sample count used when a request leaves
// NumPoints unset.
const DefaultSunPathPoints = 96

// SunPathRequest asks for the sun's trajectory over one day.
type SunPathRequest struct {
	Location  types.Location `json:"location"`
	Date      string         `json:"date"` // ISO 8601 date
	NumPoints int            `json:"num_points,omitempty"`
}

// Service is the compute service boundary consumed by the orchestrator.
//
// Implementations must respect context cancellation and classify every
// failure as either *RemoteError or *TransportError; no other error types
// cross this boundary.
type Service interface {
	// Generate synthesizes an instrument and returns the full result.
	Generate(ctx context.Context, req *GenerationRequest) (*types.GenerationResult, error)

	// SunPath computes the sun's path for a location and date.
	SunPath(ctx context.Context, req *SunPathRequest) (*types.SunPath, error)
}
