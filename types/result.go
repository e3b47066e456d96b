package types

import "time"

// Dimension is a single dimensional measurement with tolerance.
type Dimension struct {
	Value       float64 `json:"value"`
	Tolerance   float64 `json:"tolerance"`
	Unit        string  `json:"unit"`
	Description *string `json:"description,omitempty"`
}

// Dimensions is the complete dimensional specification of a generated
// instrument. CriticalDimensions and BOMItems are open mappings owned by
// the compute service; the session passes them through unmodified and
// must not depend on any specific key existing.
type Dimensions struct {
	OverallLength Dimension `json:"overall_length"`
	OverallWidth  Dimension `json:"overall_width"`
	OverallHeight Dimension `json:"overall_height"`
	// CriticalDimensions maps named measurements to service-defined specs.
	CriticalDimensions map[string]any `json:"critical_dimensions"`
	// BOMItems is the ordered bill-of-materials part list.
	BOMItems []map[string]any `json:"bom_items"`
}

// SolarPosition is the sun's position at a specific time, as computed or
// predicted for the validation check.
type SolarPosition struct {
	Timestamp           time.Time `json:"timestamp"`
	Altitude            float64   `json:"altitude"`
	Azimuth             float64   `json:"azimuth"`
	Declination         float64   `json:"declination"`
	HourAngle           float64   `json:"hour_angle"`
	RefractionCorrected bool      `json:"refraction_corrected"`
}

// ValidationReport compares the instrument's predicted reading against the
// ephemeris truth position. Errors are in degrees.
type ValidationReport struct {
	Timestamp         time.Time     `json:"timestamp"`
	Location          Location      `json:"location"`
	PredictedPosition SolarPosition `json:"predicted_position"`
	ActualPosition    SolarPosition `json:"actual_position"`
	AltitudeError     float64       `json:"altitude_error"`
	AzimuthError      float64       `json:"azimuth_error"`
	RMSError          float64       `json:"rms_error"`
	MaxError          float64       `json:"max_error"`
	// AccuracyTier is the service-assigned tier label. The session core
	// re-derives it through the accuracy package when absent.
	AccuracyTier string `json:"accuracy_level"`
}

// ExportArtifact is a time-limited download link for one export format.
// URLs are opaque to the session; the compute service owns their lifetime.
type ExportArtifact struct {
	Format    ExportFormat `json:"format"`
	URL       string       `json:"url"`
	SizeBytes int64        `json:"size_bytes"`
	// Checksum is "sha256:<hex>" over the artifact bytes.
	Checksum  string    `json:"checksum"`
	ExpiresAt time.Time `json:"expires_at"`
	Filename  string    `json:"filename"`
}

// Expired reports whether the artifact link has passed its expiry.
func (a *ExportArtifact) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}

// GenerationResult is the complete artifact returned by the compute service
// for one generation request. Immutable once received; a new generation
// replaces it wholesale.
type GenerationResult struct {
	ID               string           `json:"id"`
	Instrument       InstrumentType   `json:"instrument_type"`
	Location         Location         `json:"location"`
	Scale            float64          `json:"scale"`
	Dimensions       Dimensions       `json:"dimensions"`
	Validation       ValidationReport `json:"validation"`
	Exports          []ExportArtifact `json:"exports"`
	PreviewURL       *string          `json:"preview_url,omitempty"`
	GeneratedAt      time.Time        `json:"generated_at"`
	ProcessingTimeMs float64          `json:"processing_time_ms"`
	// Metadata is an open mapping owned by the compute service,
	// passed through unmodified.
	Metadata map[string]any `json:"metadata"`
}

// Export returns the artifact for the given format, or nil if the result
// carries no export in that format.
func (r *GenerationResult) Export(format ExportFormat) *ExportArtifact {
	for i := range r.Exports {
		if r.Exports[i].Format == format {
			return &r.Exports[i]
		}
	}
	return nil
}
