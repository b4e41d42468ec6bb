// Package config provides configuration defaults and utilities
// for the templog application.
//
// This package defines all configurable constants with documented defaults.
// Users can override these values via config.yaml or command-line flags.
package config

import "time"

// =============================================================================
// Sampling Defaults
// =============================================================================

const (
	// DefaultSamplingInterval is the fixed delay between sampling cycles.
	// The cadence is best-effort: a failed cycle is retried on the next tick.
	// Override via config: sampling.interval_sec
	DefaultSamplingInterval = 30 * time.Second

	// DefaultBufferSize is the capacity C shared by the live buffer and
	// the archive. It fixes both the in-memory footprint and the
	// decimation target length.
	// Override via config: sampling.capacity
	DefaultBufferSize = 100
)

// =============================================================================
// Storage Defaults
// =============================================================================

const (
	// DefaultDBPath is the default archive database path.
	// Override via config: storage.path
	DefaultDBPath = "templog.db"

	// DefaultStoreQueryTimeout bounds individual key-value operations.
	DefaultStoreQueryTimeout = 30 * time.Second
)

// =============================================================================
// Sensor Defaults
// =============================================================================

const (
	// DefaultSNMPPort is the standard SNMP agent port.
	// Override via config: sensor.snmp.port
	DefaultSNMPPort = 161

	// DefaultSNMPTimeoutMs is the per-request SNMP timeout.
	// Override via config: sensor.snmp.timeout_ms
	DefaultSNMPTimeoutMs = 5000

	// DefaultSNMPRetries is the number of SNMP request retries.
	// Override via config: sensor.snmp.retries
	DefaultSNMPRetries = 1

	// DefaultThermalZonePath is the Linux thermal zone read by the file
	// sensor when no path is configured.
	// Override via config: sensor.file.path
	DefaultThermalZonePath = "/sys/class/thermal/thermal_zone0/temp"
)

// =============================================================================
// Export Defaults
// =============================================================================

const (
	// DefaultExportCompression is the Parquet compression codec for
	// history exports.
	// Override via config: export.compression
	DefaultExportCompression = "zstd"
)
