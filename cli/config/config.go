package config

import (
	"fmt"
	"time"
)

// Config represents a yantra.yaml configuration file.
// All values are optional and act as defaults for CLI flags.
// CLI flags always override config values.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Session  SessionConfig  `yaml:"session"`
	Storage  StorageConfig  `yaml:"storage"`
	// CacheDir is where the last generation result is persisted.
	// Empty uses the platform user cache directory.
	CacheDir string `yaml:"cache_dir"`
}

// ServiceConfig holds compute service connection defaults.
type ServiceConfig struct {
	// URL is the compute service root.
	URL string `yaml:"url"`
	// Timeout is the per-request timeout (e.g. "60s").
	Timeout Duration `yaml:"timeout"`
	// Headers are custom HTTP headers added to each request
	// (API keys typically arrive here via ${VAR} expansion).
	Headers map[string]string `yaml:"headers,omitempty"`
}

// DefaultsConfig holds generation parameter defaults.
type DefaultsConfig struct {
	Instrument        string   `yaml:"instrument"`
	Preset            string   `yaml:"preset"`
	Scale             *float64 `yaml:"scale,omitempty"`
	MaterialThickness *float64 `yaml:"material_thickness,omitempty"`
	KerfCompensation  *float64 `yaml:"kerf_compensation,omitempty"`
	IncludeBase       *bool    `yaml:"include_base,omitempty"`
}

// SessionConfig holds session behavior options.
type SessionConfig struct {
	// ClearErrorOnEdit dismisses the last error display when the user
	// edits the location or parameters.
	ClearErrorOnEdit bool `yaml:"clear_error_on_edit"`
}

// StorageConfig holds object-store access options for s3:// export links.
type StorageConfig struct {
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
