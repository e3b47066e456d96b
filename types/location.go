// Package types defines the shared data model for the generation session:
// locations, instrument parameters on the wire, and the GenerationResult
// returned by the compute service.
//
// All wire-facing structs carry JSON tags matching the compute service's
// snake_case field names. Optional fields are pointers, never sentinel
// values, so presence is always distinguishable from absence.
package types

import "fmt"

// Latitude and longitude bounds accepted anywhere in the system.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Location is a geographic site an instrument is generated for.
// A Location is replaced wholesale on re-selection, never mutated in place.
type Location struct {
	// Name is a human-readable site name.
	Name string `json:"name"`
	// Latitude in decimal degrees, [-90, 90].
	Latitude float64 `json:"latitude"`
	// Longitude in decimal degrees, [-180, 180].
	Longitude float64 `json:"longitude"`
	// Elevation above sea level in meters. Zero when unknown.
	Elevation float64 `json:"elevation"`
	// Timezone is an IANA timezone identifier (e.g. "Asia/Kolkata").
	Timezone string `json:"timezone"`
}

// Validate reports whether the coordinates lie within their declared ranges.
func (l *Location) Validate() error {
	if l.Latitude < MinLatitude || l.Latitude > MaxLatitude {
		return fmt.Errorf("latitude %v out of range [%v, %v]", l.Latitude, MinLatitude, MaxLatitude)
	}
	if l.Longitude < MinLongitude || l.Longitude > MaxLongitude {
		return fmt.Errorf("longitude %v out of range [%v, %v]", l.Longitude, MinLongitude, MaxLongitude)
	}
	return nil
}

// String returns "name (lat, lon)" for logs and rendering.
func (l *Location) String() string {
	return fmt.Sprintf("%s (%.4f, %.4f)", l.Name, l.Latitude, l.Longitude)
}
