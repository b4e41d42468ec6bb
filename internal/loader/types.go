package loader

import (
	"time"

	"github.com/xtxerr/templog/config"
)

// Config is the top-level YAML configuration.
type Config struct {
	Sampling SamplingConfig `yaml:"sampling"`
	Storage  StorageConfig  `yaml:"storage"`
	Sensor   SensorConfig   `yaml:"sensor"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
}

// SamplingConfig controls the sampling cycle.
type SamplingConfig struct {
	// IntervalSec is the delay between sampling cycles in seconds.
	IntervalSec int `yaml:"interval_sec"`

	// Capacity is the shared capacity of the live buffer and archive.
	Capacity int `yaml:"capacity"`
}

// Interval returns the sampling interval as a duration.
func (c SamplingConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSec) * time.Second
}

// StorageConfig controls the archive database.
type StorageConfig struct {
	// Path is the DuckDB database file.
	Path string `yaml:"path"`
}

// SensorConfig selects and configures the temperature source.
type SensorConfig struct {
	// Type is "snmp" or "file".
	Type string `yaml:"type"`

	SNMP SNMPSensorConfig `yaml:"snmp"`
	File FileSensorConfig `yaml:"file"`
}

// SNMPSensorConfig configures the SNMP sensor.
type SNMPSensorConfig struct {
	Host      string `yaml:"host"`
	Port      uint16 `yaml:"port"`
	Community string `yaml:"community"`
	OID       string `yaml:"oid"`
	Scale     int32  `yaml:"scale"`
	TimeoutMs uint32 `yaml:"timeout_ms"`
	Retries   uint32 `yaml:"retries"`
}

// FileSensorConfig configures the file sensor.
type FileSensorConfig struct {
	Path  string `yaml:"path"`
	Scale int32  `yaml:"scale"`
}

// ExportConfig controls history exports.
type ExportConfig struct {
	// Compression is the Parquet codec: zstd, snappy, lz4, gzip, none.
	Compression string `yaml:"compression"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `yaml:"level"`

	// JSON selects JSON output instead of text.
	JSON bool `yaml:"json"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Sampling: SamplingConfig{
			IntervalSec: int(config.DefaultSamplingInterval / time.Second),
			Capacity:    config.DefaultBufferSize,
		},
		Storage: StorageConfig{
			Path: config.DefaultDBPath,
		},
		Sensor: SensorConfig{
			Type: "file",
			SNMP: SNMPSensorConfig{
				Port:      config.DefaultSNMPPort,
				Scale:     1,
				TimeoutMs: config.DefaultSNMPTimeoutMs,
				Retries:   config.DefaultSNMPRetries,
			},
			File: FileSensorConfig{
				Path:  config.DefaultThermalZonePath,
				Scale: 1000,
			},
		},
		Export: ExportConfig{
			Compression: config.DefaultExportCompression,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
