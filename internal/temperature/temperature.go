// Package temperature implements the signed fixed-point temperature
// encoding used throughout the history store.
//
// A Temperature is a 16-bit signed value with 4 fractional bits:
// 1 sign bit, 11 integer bits, and a scale factor of 16. Dividing the
// raw value by 16 yields degrees Celsius. The format has no NaN or
// infinity representation; callers must not feed non-finite inputs.
package temperature

import (
	"fmt"
	"math"
)

// Temperature is a fixed-point temperature, degrees Celsius times Scale.
type Temperature int16

const (
	// FractionalBits is the number of fractional bits in the encoding.
	FractionalBits = 4

	// Scale is the fixed-point scale factor (2^FractionalBits).
	Scale = 1 << FractionalBits

	// Min and Max bound the representable range (about ±2048 °C).
	Min Temperature = math.MinInt16
	Max Temperature = math.MaxInt16

	// Resolution is the smallest representable step in degrees.
	Resolution = 1.0 / Scale
)

// FromReading converts a sensor-reported (whole degrees, fractional
// millionths) pair into the fixed-point format. The result is rounded
// to the nearest representable step and clamped to the int16 range;
// out-of-range readings saturate rather than wrap.
func FromReading(whole, micros int32) Temperature {
	degrees := float64(whole) + float64(micros)/1e6
	return FromCelsius(degrees)
}

// FromCelsius converts degrees Celsius to the fixed-point format,
// rounding to the nearest step and clamping to the representable range.
// The input must be finite.
func FromCelsius(degrees float64) Temperature {
	scaled := math.Round(degrees * Scale)
	if scaled > float64(Max) {
		return Max
	}
	if scaled < float64(Min) {
		return Min
	}
	return Temperature(scaled)
}

// Celsius returns the temperature in degrees Celsius.
func (t Temperature) Celsius() float64 {
	return float64(t) / Scale
}

// String returns the temperature formatted in degrees Celsius.
func (t Temperature) String() string {
	return fmt.Sprintf("%.4g°C", t.Celsius())
}
