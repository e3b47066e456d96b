// Package site validates and normalizes geographic locations before they
// enter a session.
//
// Locations come from two sources: preset observatory sites, which are
// validated at definition time and looked up by identifier, and custom
// coordinate input, which is parsed and range-checked at this boundary.
// Out-of-range or non-numeric input never leaves this package as a Location.
package site

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/gnomonworks/yantra/types"
)

// Preset is a pre-validated observatory site.
type Preset struct {
	// ID is the lookup identifier (e.g. "jaipur").
	ID string
	// Location is the site's validated location.
	Location types.Location
	// Description is a short human-readable note about the site.
	Description string
}

// presets holds the known observatory sites, keyed by ID.
// The five surviving Jantar Mantar observatories.
var presets = map[string]Preset{
	"jaipur": {
		ID: "jaipur",
		Location: types.Location{
			Name:      "Jaipur Jantar Mantar",
			Latitude:  26.9124,
			Longitude: 75.7873,
			Elevation: 431,
			Timezone:  "Asia/Kolkata",
		},
		Description: "Historic observatory in Jaipur, Rajasthan",
	},
	"delhi": {
		ID: "delhi",
		Location: types.Location{
			Name:      "Delhi Jantar Mantar",
			Latitude:  28.6270,
			Longitude: 77.2167,
			Elevation: 216,
			Timezone:  "Asia/Kolkata",
		},
		Description: "Observatory at Sansad Marg, New Delhi",
	},
	"ujjain": {
		ID: "ujjain",
		Location: types.Location{
			Name:      "Ujjain Jantar Mantar",
			Latitude:  23.1793,
			Longitude: 75.7849,
			Elevation: 491,
			Timezone:  "Asia/Kolkata",
		},
		Description: "Observatory on the old prime meridian of Hindu astronomy",
	},
	"varanasi": {
		ID: "varanasi",
		Location: types.Location{
			Name:      "Varanasi Jantar Mantar",
			Latitude:  25.3176,
			Longitude: 83.0107,
			Elevation: 81,
			Timezone:  "Asia/Kolkata",
		},
		Description: "Rooftop observatory above Manmandir Ghat",
	},
	"mathura": {
		ID: "mathura",
		Location: types.Location{
			Name:      "Mathura Jantar Mantar",
			Latitude:  27.4924,
			Longitude: 77.6737,
			Elevation: 174,
			Timezone:  "Asia/Kolkata",
		},
		Description: "Lost observatory, location per historical records",
	},
}

// SelectPreset returns the Location for a known site identifier.
// Presets are validated at definition time, so the only failure mode is an
// unknown identifier.
func SelectPreset(id string) (types.Location, error) {
	p, ok := presets[id]
	if !ok {
		return types.Location{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return p.Location, nil
}

// Presets returns all preset sites sorted by ID for deterministic listing.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AcceptCustom parses raw latitude/longitude strings into a Location.
//
// Fails with ErrInvalidNumber if either string is not a finite number and
// ErrOutOfRange if latitude is outside [-90, 90] or longitude outside
// [-180, 180]. On success the Location carries elevation 0, timezone "UTC",
// and a display name embedding the coordinates rounded to 4 decimal places.
func AcceptCustom(rawLatitude, rawLongitude string) (types.Location, error) {
	lat, err := parseCoordinate("latitude", rawLatitude)
	if err != nil {
		return types.Location{}, err
	}
	lon, err := parseCoordinate("longitude", rawLongitude)
	if err != nil {
		return types.Location{}, err
	}

	if lat < types.MinLatitude || lat > types.MaxLatitude {
		return types.Location{}, &CoordinateError{Kind: ErrOutOfRange, Field: "latitude", Raw: rawLatitude}
	}
	if lon < types.MinLongitude || lon > types.MaxLongitude {
		return types.Location{}, &CoordinateError{Kind: ErrOutOfRange, Field: "longitude", Raw: rawLongitude}
	}

	return types.Location{
		Name:      fmt.Sprintf("Custom (%.4f, %.4f)", lat, lon),
		Latitude:  lat,
		Longitude: lon,
		Elevation: 0,
		Timezone:  "UTC",
	}, nil
}

// parseCoordinate parses one coordinate string, rejecting NaN and infinities.
func parseCoordinate(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &CoordinateError{Kind: ErrInvalidNumber, Field: field, Raw: raw}
	}
	return v, nil
}
