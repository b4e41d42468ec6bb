// Package sampler drives the periodic sampling cycle: acquire a
// reading each tick, append it to the live list, and fold the live
// list into the persisted archive whenever it fills.
//
// All state lives in an explicitly constructed Sampler: the live and
// scratch lists, the store handle, the sensor, and the clock. One
// background task runs the cycle; other tasks may read concurrently
// through History and Stats.
package sampler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/xtxerr/templog/internal/errors"
	"github.com/xtxerr/templog/internal/logging"
	"github.com/xtxerr/templog/internal/nvs"
	"github.com/xtxerr/templog/internal/sensor"
	"github.com/xtxerr/templog/internal/series"
	"github.com/xtxerr/templog/internal/temperature"
	"github.com/xtxerr/templog/internal/uptime"
)

var log = logging.Component("sampler")

// Config holds sampler configuration.
type Config struct {
	// Interval is the fixed delay between sampling cycles.
	Interval time.Duration

	// Capacity is the shared capacity C of the live buffer and the
	// archive, and therefore the decimation target length.
	Capacity int
}

// Sampler owns the bounded temperature history.
type Sampler struct {
	live    *series.List
	scratch *series.List // reused for every archive round-trip

	store  nvs.Store
	sensor sensor.Sensor
	clock  uptime.Clock

	interval time.Duration
	capacity int

	stats stats
}

// stats holds the sampler's counters.
type stats struct {
	ticks            atomic.Int64
	appends          atomic.Int64
	compactions      atomic.Int64
	compactionErrors atomic.Int64
	sensorErrors     atomic.Int64
}

// Stats is a point-in-time snapshot of the sampler's counters.
type Stats struct {
	Ticks            int64
	Appends          int64
	Compactions      int64
	CompactionErrors int64
	SensorErrors     int64
	LiveLen          int
}

// New creates a Sampler. Both lists start empty; the archive record is
// initialized lazily on the first compaction or history read.
func New(cfg Config, store nvs.Store, sn sensor.Sensor, clock uptime.Clock) *Sampler {
	return &Sampler{
		live:     series.NewList(cfg.Capacity),
		scratch:  series.NewList(cfg.Capacity),
		store:    store,
		sensor:   sn,
		clock:    clock,
		interval: cfg.Interval,
		capacity: cfg.Capacity,
	}
}

// Run executes sampling cycles at the fixed interval until ctx is
// cancelled. The cadence is best-effort and self-healing: the next
// tick is scheduled regardless of how the previous one fared.
func (s *Sampler) Run(ctx context.Context) error {
	log.Info("sampler started",
		"interval", s.interval,
		"capacity", s.capacity)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("sampler stopped")
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one sampling cycle. The live and scratch locks are held
// together for the whole cycle so no reader observes a half-finished
// compaction. Failures are logged and deferred to the next tick; the
// archive and the live list keep their last committed state.
func (s *Sampler) Tick(ctx context.Context) {
	series.Lock(s.live, s.scratch)
	defer series.Unlock(s.live, s.scratch)

	s.stats.ticks.Add(1)

	live := s.live.Buffer()
	if live.Full() {
		if err := s.compactLocked(ctx, live, s.scratch.Buffer()); err != nil {
			s.stats.compactionErrors.Add(1)
			log.Warn("compaction deferred to next tick", "error", err)
		} else {
			s.stats.compactions.Add(1)
			log.Debug("live buffer compacted into archive")
		}
	}

	reading, err := s.sensor.Acquire(ctx)
	minutes := s.clock.Minutes()
	if err != nil {
		s.stats.sensorErrors.Add(1)
		log.Warn("sample acquisition failed", "error", err)
		return
	}

	sample := series.Sample{
		Temperature: temperature.FromReading(reading.Whole, reading.Micros),
		Uptime:      minutes,
	}
	if err := live.Append(sample); err != nil {
		// Only reachable when the compaction above was deferred.
		log.Warn("sample dropped", "error", err)
		return
	}
	s.stats.appends.Add(1)
	log.Debug("sample appended", "uptime_min", sample.Uptime, "temperature", sample.Temperature)
}

// compactLocked folds the full live buffer into the archive: load the
// archive into scratch, compact live+scratch into scratch, store it
// back, and only then reset the live buffer. The store commits after a
// fully-successful compaction, so any failure leaves both the archive
// record and the live buffer as they were.
func (s *Sampler) compactLocked(ctx context.Context, live, scratch *series.Buffer) error {
	if err := scratch.Load(ctx, s.store, nvs.KeyTemperatureData); err != nil {
		return errors.Wrap(err, "load archive")
	}
	if err := series.Compact(live, scratch, scratch); err != nil {
		return errors.Wrap(err, "compact")
	}
	if err := scratch.Store(ctx, s.store, nvs.KeyTemperatureData); err != nil {
		return errors.Wrap(err, "store archive")
	}
	live.Reset()
	return nil
}

// History returns the chronological union of the archived and live
// samples. The read is non-destructive: the archive is fetched into a
// private buffer and a missing record simply contributes nothing.
func (s *Sampler) History(ctx context.Context) ([]series.Sample, error) {
	live := s.live.SnapshotBuffer()

	archive := series.NewBuffer(s.capacity)
	if err := archive.Fetch(ctx, s.store, nvs.KeyTemperatureData); err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, "fetch archive")
	}

	merged := series.NewBuffer(live.Len() + archive.Len())
	if err := series.Compact(archive, live, merged); err != nil {
		return nil, errors.Wrap(err, "merge history")
	}
	return merged.Samples(), nil
}

// Stats returns a snapshot of the sampler's counters.
func (s *Sampler) Stats() Stats {
	return Stats{
		Ticks:            s.stats.ticks.Load(),
		Appends:          s.stats.appends.Load(),
		Compactions:      s.stats.compactions.Load(),
		CompactionErrors: s.stats.compactionErrors.Load(),
		SensorErrors:     s.stats.sensorErrors.Load(),
		LiveLen:          s.live.Len(),
	}
}
