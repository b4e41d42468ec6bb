// Package sensor provides temperature acquisition for the sampler.
//
// A Sensor performs one blocking acquisition per call and reports raw
// (whole degrees, fractional millionths) pairs; conversion to the
// fixed-point storage format happens downstream. Acquisition failures
// are generic and transient; the sampler skips the tick's append and
// retries on the next one.
package sensor

import (
	"context"
	"fmt"

	"github.com/xtxerr/templog/internal/errors"
)

// Reading is a raw temperature as reported by a sensor.
type Reading struct {
	// Whole is the integer part in degrees Celsius.
	Whole int32

	// Micros is the fractional part in millionths of a degree, with
	// the same sign as Whole.
	Micros int32
}

// Sensor acquires temperature readings.
type Sensor interface {
	// Acquire performs one blocking acquisition.
	Acquire(ctx context.Context) (Reading, error)
}

// failure wraps an acquisition error with the sensor failure sentinel.
func failure(err error, msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, errors.ErrSensorFailure, err)
}

// splitScaled converts a raw integer reading in 1/scale degree units
// into a Reading. Scale is the number of units per degree (1000 for
// millidegrees, 10 for decidegrees).
func splitScaled(raw int64, scale int32) Reading {
	s := int64(scale)
	return Reading{
		Whole:  int32(raw / s),
		Micros: int32(raw % s * 1_000_000 / s),
	}
}
