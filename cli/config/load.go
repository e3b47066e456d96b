package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a yantra.yaml file, expands ${VAR} references against the
// environment, and unmarshals into a Config. Secrets such as API keys
// should reach service.headers through expansion rather than being
// committed to the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("yantra config not found: %s", path)
		}
		return nil, fmt.Errorf("read yantra config %q: %w", path, err)
	}

	expanded := ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse yantra config %s: %w", path, err)
	}

	return &cfg, nil
}
