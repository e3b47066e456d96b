// Package params holds the mutable generation parameters for a session.
//
// Each field has a declared bound enforced at the setter, matching the
// compute service's request validation, so a request built from a Snapshot
// can never be rejected for a parameter range violation. Fields are
// independent; there is no cross-field validation.
package params

import (
	"errors"
	"fmt"
	"math"

	"github.com/gnomonworks/yantra/types"
)

// Parameter bounds from the compute service's request contract.
// Scale and thickness lower bounds are exclusive; all upper bounds and the
// kerf lower bound are inclusive. Units are meters.
const (
	MinScale = 0.1
	MaxScale = 1000.0

	MinThickness = 0.0
	MaxThickness = 1.0

	MinKerf = 0.0
	MaxKerf = 0.01
)

// Defaults for a fresh session.
const (
	DefaultScale     = 1.0
	DefaultThickness = 0.01
	DefaultKerf      = 0.0
)

// ErrOutOfBounds indicates a parameter value outside its declared bound.
var ErrOutOfBounds = errors.New("parameter out of bounds")

// ErrUnknownInstrument indicates an instrument type the service cannot generate.
var ErrUnknownInstrument = errors.New("unknown instrument type")

// BoundError wraps an out-of-bounds parameter rejection with the field,
// offending value, and the declared bound.
type BoundError struct {
	Field    string
	Value    float64
	Min, Max float64
}

func (e *BoundError) Error() string {
	return fmt.Sprintf("%s %v outside (%v, %v]: %v", e.Field, e.Value, e.Min, e.Max, ErrOutOfBounds)
}

// Unwrap returns ErrOutOfBounds for errors.Is assertions.
func (e *BoundError) Unwrap() error { return ErrOutOfBounds }

// Params is the mutable parameter set for generation requests.
// Mutate through the setters; read through Snapshot. The zero value is not
// usable; construct with Defaults.
type Params struct {
	instrument        types.InstrumentType
	scale             float64
	materialThickness float64
	kerfCompensation  float64
	includeBase       bool
}

// Snapshot is an immutable point-in-time copy of the parameters, used to
// build a request even while the user keeps editing.
type Snapshot struct {
	Instrument        types.InstrumentType
	Scale             float64
	MaterialThickness float64
	KerfCompensation  float64
	IncludeBase       bool
}

// Defaults returns a parameter set with the contract defaults: a samrat
// instrument at 1m scale, 10mm material, no kerf compensation, with base.
func Defaults() *Params {
	return &Params{
		instrument:        types.InstrumentSamrat,
		scale:             DefaultScale,
		materialThickness: DefaultThickness,
		kerfCompensation:  DefaultKerf,
		includeBase:       true,
	}
}

// SetInstrument sets the instrument type.
func (p *Params) SetInstrument(t types.InstrumentType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownInstrument, t)
	}
	p.instrument = t
	return nil
}

// SetScale sets the overall scale in meters, (0.1, 1000].
func (p *Params) SetScale(v float64) error {
	if !inBounds(v, MinScale, MaxScale) {
		return &BoundError{Field: "scale", Value: v, Min: MinScale, Max: MaxScale}
	}
	p.scale = v
	return nil
}

// SetMaterialThickness sets the material thickness in meters, (0, 1].
func (p *Params) SetMaterialThickness(v float64) error {
	if !inBounds(v, MinThickness, MaxThickness) {
		return &BoundError{Field: "material_thickness", Value: v, Min: MinThickness, Max: MaxThickness}
	}
	p.materialThickness = v
	return nil
}

// SetKerfCompensation sets the cut-width compensation in meters, [0, 0.01].
func (p *Params) SetKerfCompensation(v float64) error {
	// Kerf alone has an inclusive lower bound: zero means no compensation.
	if math.IsNaN(v) || v < MinKerf || v > MaxKerf {
		return &BoundError{Field: "kerf_compensation", Value: v, Min: MinKerf, Max: MaxKerf}
	}
	p.kerfCompensation = v
	return nil
}

// SetIncludeBase sets whether the generated instrument includes a base platform.
func (p *Params) SetIncludeBase(v bool) {
	p.includeBase = v
}

// Snapshot returns an immutable copy of the current parameters.
func (p *Params) Snapshot() Snapshot {
	return Snapshot{
		Instrument:        p.instrument,
		Scale:             p.scale,
		MaterialThickness: p.materialThickness,
		KerfCompensation:  p.kerfCompensation,
		IncludeBase:       p.includeBase,
	}
}

// inBounds checks v against an exclusive lower and inclusive upper bound.
func inBounds(v, min, max float64) bool {
	return !math.IsNaN(v) && v > min && v <= max
}
