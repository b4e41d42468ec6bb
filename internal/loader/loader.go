// Package loader handles configuration file loading and validation.
//
// This package is responsible for:
//   - Loading YAML configuration files
//   - Expanding environment variables
//   - Supplying documented defaults for omitted fields
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file. Fields omitted from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the daemon cannot run
// with.
func (c *Config) Validate() error {
	if c.Sampling.IntervalSec <= 0 {
		return fmt.Errorf("sampling.interval_sec must be positive, got %d", c.Sampling.IntervalSec)
	}
	// Decimation targets capacity-1 gaps, so 2 is the floor.
	if c.Sampling.Capacity < 2 {
		return fmt.Errorf("sampling.capacity must be at least 2, got %d", c.Sampling.Capacity)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}

	switch c.Sensor.Type {
	case "snmp", "file":
	default:
		return fmt.Errorf("sensor.type must be snmp or file, got %q", c.Sensor.Type)
	}
	return nil
}
