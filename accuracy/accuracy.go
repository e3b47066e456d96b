// Package accuracy classifies validation-error metrics into discrete
// accuracy tiers for display.
//
// The tier thresholds are a contract with the compute service's validation
// step and are not derived locally. Classification is pure: no I/O, no
// failure path.
package accuracy

import "math"

// Tier is a discrete accuracy label, ordered from best to worst.
type Tier string

// Accuracy tiers.
const (
	Excellent  Tier = "excellent"
	Good       Tier = "good"
	Acceptable Tier = "acceptable"
	Poor       Tier = "poor"
)

// Tier thresholds in degrees of RMS pointing error. An error below
// ThresholdExcellent classifies as Excellent, and so on; at or above
// ThresholdAcceptable the tier is Poor.
const (
	ThresholdExcellent  = 0.1
	ThresholdGood       = 0.5
	ThresholdAcceptable = 1.0
)

// Classify maps an RMS pointing error in degrees to a Tier.
// NaN and negative inputs classify as Poor.
func Classify(rmsError float64) Tier {
	switch {
	case math.IsNaN(rmsError) || rmsError < 0:
		return Poor
	case rmsError < ThresholdExcellent:
		return Excellent
	case rmsError < ThresholdGood:
		return Good
	case rmsError < ThresholdAcceptable:
		return Acceptable
	default:
		return Poor
	}
}

// Valid reports whether t is a known tier label.
func (t Tier) Valid() bool {
	switch t {
	case Excellent, Good, Acceptable, Poor:
		return true
	}
	return false
}
