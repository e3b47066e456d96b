package types

import (
	"testing"
	"time"
)

func TestLocationValidate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"jaipur", 26.9124, 75.7873, false},
		{"equator prime meridian", 0, 0, false},
		{"north pole", 90, 0, false},
		{"south pole", -90, 0, false},
		{"date line east", 0, 180, false},
		{"date line west", 0, -180, false},
		{"latitude too high", 90.0001, 0, true},
		{"latitude too low", -90.0001, 0, true},
		{"longitude too high", 0, 180.0001, true},
		{"longitude too low", 0, -180.0001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Location{Name: tt.name, Latitude: tt.lat, Longitude: tt.lon}
			err := loc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{Name: "Jaipur Jantar Mantar", Latitude: 26.9124, Longitude: 75.7873}
	want := "Jaipur Jantar Mantar (26.9124, 75.7873)"
	if got := loc.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInstrumentTypeValid(t *testing.T) {
	tests := []struct {
		t    InstrumentType
		want bool
	}{
		{InstrumentSamrat, true},
		{InstrumentRama, true},
		{"digamsa", false},
		{"", false},
		{"SAMRAT", false},
	}

	for _, tt := range tests {
		if got := tt.t.Valid(); got != tt.want {
			t.Errorf("InstrumentType(%q).Valid() = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestResultExport(t *testing.T) {
	result := GenerationResult{
		Exports: []ExportArtifact{
			{Format: ExportDXF, URL: "https://cdn.example.net/a.dxf"},
			{Format: ExportSTL, URL: "https://cdn.example.net/a.stl"},
		},
	}

	if got := result.Export(ExportSTL); got == nil || got.URL != "https://cdn.example.net/a.stl" {
		t.Errorf("Export(stl) = %+v", got)
	}
	if got := result.Export(ExportPDF); got != nil {
		t.Errorf("Export(pdf) = %+v, want nil", got)
	}
}

func TestArtifactExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"future link", now.Add(time.Hour), false},
		{"past link", now.Add(-time.Hour), true},
		{"zero expiry never expires", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ExportArtifact{ExpiresAt: tt.expiresAt}
			if got := a.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
