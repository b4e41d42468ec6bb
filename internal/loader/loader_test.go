package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Sampling.IntervalSec != 30 {
		t.Errorf("expected default interval 30s, got %d", cfg.Sampling.IntervalSec)
	}
	if cfg.Sampling.Capacity != 100 {
		t.Errorf("expected default capacity 100, got %d", cfg.Sampling.Capacity)
	}
	if cfg.Sensor.Type != "file" {
		t.Errorf("expected default sensor type file, got %q", cfg.Sensor.Type)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Log.Level)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
sampling:
  interval_sec: 60
  capacity: 50
storage:
  path: /var/lib/templog/archive.db
sensor:
  type: snmp
  snmp:
    host: 192.0.2.1
    community: public
    oid: .1.3.6.1.4.1.2021.13.16.2.1.3.1
    scale: 1000
log:
  level: debug
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Sampling.Interval() != 60*time.Second {
		t.Errorf("expected 60s interval, got %v", cfg.Sampling.Interval())
	}
	if cfg.Sampling.Capacity != 50 {
		t.Errorf("expected capacity 50, got %d", cfg.Sampling.Capacity)
	}
	if cfg.Storage.Path != "/var/lib/templog/archive.db" {
		t.Errorf("unexpected storage path %q", cfg.Storage.Path)
	}
	if cfg.Sensor.SNMP.Host != "192.0.2.1" {
		t.Errorf("unexpected SNMP host %q", cfg.Sensor.SNMP.Host)
	}
	// Omitted SNMP fields keep their defaults.
	if cfg.Sensor.SNMP.Port != 161 {
		t.Errorf("expected default SNMP port 161, got %d", cfg.Sensor.SNMP.Port)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEMPLOG_DB", "/tmp/expanded.db")

	cfg, err := Load(writeConfig(t, `
storage:
  path: ${TEMPLOG_DB}
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/expanded.db" {
		t.Errorf("expected expanded path, got %q", cfg.Storage.Path)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(errUnwrapAll(err)) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

// errUnwrapAll walks to the root cause.
func errUnwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero interval", func(c *Config) { c.Sampling.IntervalSec = 0 }, true},
		{"capacity one", func(c *Config) { c.Sampling.Capacity = 1 }, true},
		{"capacity two", func(c *Config) { c.Sampling.Capacity = 2 }, false},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }, true},
		{"unknown sensor type", func(c *Config) { c.Sensor.Type = "i2c" }, true},
		{"snmp type", func(c *Config) { c.Sensor.Type = "snmp" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "sampling: [not a mapping"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}
