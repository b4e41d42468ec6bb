// templogd is the temperature logging daemon.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xtxerr/templog/internal/errors"
	"github.com/xtxerr/templog/internal/loader"
	"github.com/xtxerr/templog/internal/logging"
	"github.com/xtxerr/templog/internal/nvs"
	"github.com/xtxerr/templog/internal/sampler"
	"github.com/xtxerr/templog/internal/sensor"
	"github.com/xtxerr/templog/internal/settings"
	"github.com/xtxerr/templog/internal/uptime"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// CLI flags
	cfgPath := flag.String("config", "config.yaml", "config file path")
	dbPath := flag.String("db", "", "archive database path (overrides config)")
	interval := flag.Duration("interval", 0, "sampling interval (overrides config)")
	capacity := flag.Int("capacity", 0, "history capacity (overrides config)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	logJSON := flag.Bool("log-json", false, "log as JSON")
	flag.Parse()

	// Load config
	cfg, err := loader.Load(*cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = loader.DefaultConfig()
		} else {
			logging.Init(slog.LevelInfo, false)
			logging.Error("load config failed", "path", *cfgPath, "error", err)
			os.Exit(1)
		}
	}

	// CLI overrides
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	if *interval > 0 {
		cfg.Sampling.IntervalSec = int(*interval / time.Second)
	}
	if *capacity > 0 {
		cfg.Sampling.Capacity = *capacity
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		logging.Init(slog.LevelInfo, false)
		logging.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Init(parseLevel(cfg.Log.Level), cfg.Log.JSON || *logJSON)
	log := logging.Component("main")
	log.Info("templogd starting", "version", Version)

	// Archive store
	store, err := nvs.OpenDuckDB(nvs.DefaultDuckDBConfig(cfg.Storage.Path))
	if err != nil {
		log.Error("open archive store failed", "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Sensor
	sn, err := buildSensor(cfg.Sensor)
	if err != nil {
		log.Error("sensor setup failed", "type", cfg.Sensor.Type, "error", err)
		os.Exit(1)
	}

	smp := sampler.New(sampler.Config{
		Interval: cfg.Sampling.Interval(),
		Capacity: cfg.Sampling.Capacity,
	}, store, sn, uptime.NewSystemClock())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A capacity change invalidates the stored archive record; reconcile
	// before the first tick so the sampler never sees a stale size.
	if err := settings.Reconcile(ctx, store, settings.Settings{
		IntervalSec: uint32(cfg.Sampling.IntervalSec),
		Capacity:    uint32(cfg.Sampling.Capacity),
	}); err != nil {
		log.Error("reconcile settings failed", "error", err)
		os.Exit(1)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return smp.Run(ctx) })

	if err := g.Wait(); err != nil {
		log.Error("sampler exited", "error", err)
		os.Exit(1)
	}

	stats := smp.Stats()
	log.Info("templogd stopped",
		"ticks", stats.Ticks,
		"appends", stats.Appends,
		"compactions", stats.Compactions)
}

// buildSensor constructs the configured temperature source.
func buildSensor(cfg loader.SensorConfig) (sensor.Sensor, error) {
	switch cfg.Type {
	case "snmp":
		return sensor.NewSNMPSensor(sensor.SNMPConfig{
			Host:      cfg.SNMP.Host,
			Port:      cfg.SNMP.Port,
			Community: cfg.SNMP.Community,
			OID:       cfg.SNMP.OID,
			Scale:     cfg.SNMP.Scale,
			TimeoutMs: cfg.SNMP.TimeoutMs,
			Retries:   cfg.SNMP.Retries,
		})
	default:
		return sensor.NewFileSensor(sensor.FileConfig{
			Path:  cfg.File.Path,
			Scale: cfg.File.Scale,
		})
	}
}

// parseLevel maps a config level string to a slog level.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
