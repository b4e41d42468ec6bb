// Package settings persists the daemon's effective settings alongside
// the archive and reconciles them on startup. The archive record's size
// is a function of the history capacity, so a capacity change makes the
// stored record unreadable; reconciling detects the change and clears
// the archive instead of leaving the sampler stuck on a record it can
// never load.
package settings

import (
	"context"
	"encoding/binary"

	"github.com/xtxerr/templog/internal/errors"
	"github.com/xtxerr/templog/internal/logging"
	"github.com/xtxerr/templog/internal/nvs"
	"github.com/xtxerr/templog/internal/series"
)

var log = logging.Component("settings")

// Settings are the persisted daemon settings.
type Settings struct {
	// IntervalSec is the sampling interval in seconds.
	IntervalSec uint32

	// Capacity is the shared live/archive capacity.
	Capacity uint32
}

const recordSize = 8

func (s Settings) marshal() []byte {
	buf := make([]byte, 0, recordSize)
	buf = binary.LittleEndian.AppendUint32(buf, s.IntervalSec)
	return binary.LittleEndian.AppendUint32(buf, s.Capacity)
}

func unmarshal(data []byte) (Settings, error) {
	if len(data) != recordSize {
		return Settings{}, errors.Wrapf(errors.ErrStorageFailure, "settings record size mismatch: want %d bytes, got %d", recordSize, len(data))
	}
	return Settings{
		IntervalSec: binary.LittleEndian.Uint32(data),
		Capacity:    binary.LittleEndian.Uint32(data[4:]),
	}, nil
}

// Load reads the persisted settings. The second return is false when no
// settings record exists yet.
func Load(ctx context.Context, st nvs.Store) (Settings, bool, error) {
	data, err := st.Read(ctx, nvs.KeySettings, recordSize)
	if err != nil {
		if errors.IsNotFound(err) {
			return Settings{}, false, nil
		}
		return Settings{}, false, errors.Wrap(err, "read settings")
	}
	s, err := unmarshal(data)
	if err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}

// Store persists the settings.
func (s Settings) Store(ctx context.Context, st nvs.Store) error {
	payload := s.marshal()
	n, err := st.Write(ctx, nvs.KeySettings, payload)
	if err != nil {
		return errors.Wrap(err, "write settings")
	}
	if n != len(payload) && n != 0 {
		return errors.Wrapf(errors.ErrStorageFailure, "short settings write: want %d bytes or 0, wrote %d", len(payload), n)
	}
	return nil
}

// Reconcile compares the configured settings with the persisted ones
// and brings the store in line. A capacity change invalidates the
// archive record (its size no longer matches), so the archive is
// cleared and restarted empty at the new capacity.
func Reconcile(ctx context.Context, st nvs.Store, cfg Settings) error {
	prev, found, err := Load(ctx, st)
	if err != nil {
		return err
	}

	if found && prev.Capacity != cfg.Capacity {
		log.Warn("history capacity changed, clearing archive",
			"previous", prev.Capacity,
			"configured", cfg.Capacity)
		empty := series.NewBuffer(int(cfg.Capacity))
		if err := empty.Store(ctx, st, nvs.KeyTemperatureData); err != nil {
			return errors.Wrap(err, "clear archive")
		}
	}

	if !found || prev != cfg {
		return cfg.Store(ctx, st)
	}
	return nil
}
