package types

import "time"

// SunPathPoint is a single sampled point on a day's sun path.
type SunPathPoint struct {
	Time      time.Time `json:"time"`
	Altitude  float64   `json:"altitude"`
	Azimuth   float64   `json:"azimuth"`
	IsVisible bool      `json:"is_visible"`
}

// SunPath is the sun's trajectory across one day at a location.
// Sunrise, sunset, and solar noon are absent for polar day/night.
type SunPath struct {
	Location       Location       `json:"location"`
	Date           time.Time      `json:"date"`
	Points         []SunPathPoint `json:"points"`
	Sunrise        *time.Time     `json:"sunrise,omitempty"`
	Sunset         *time.Time     `json:"sunset,omitempty"`
	SolarNoon      *time.Time     `json:"solar_noon,omitempty"`
	DayLengthHours float64        `json:"day_length_hours"`
}
