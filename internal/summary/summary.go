// Package summary computes descriptive statistics over a set of
// temperature samples, with optional percentiles backed by DDSketch.
package summary

import (
	"math"

	"github.com/DataDog/sketches-go/ddsketch"

	"github.com/xtxerr/templog/internal/series"
)

// DefaultAccuracy is the DDSketch relative accuracy for percentiles.
const DefaultAccuracy = 0.01

// Summary holds the statistics for a sample set. Min, Max, and Avg are
// degrees Celsius. Percentile pointers are nil when percentiles were
// not requested or could not be computed.
type Summary struct {
	Count int

	Min float64
	Max float64
	Avg float64

	FirstUptime uint32
	LastUptime  uint32

	P50 *float64
	P90 *float64
	P95 *float64
	P99 *float64
}

// Summarize computes statistics over samples. With withPercentiles set
// it also estimates p50/p90/p95/p99 at DefaultAccuracy. An empty input
// yields a zero Summary.
func Summarize(samples []series.Sample, withPercentiles bool) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	s := Summary{
		Count:       len(samples),
		Min:         math.MaxFloat64,
		Max:         -math.MaxFloat64,
		FirstUptime: samples[0].Uptime,
		LastUptime:  samples[0].Uptime,
	}

	var sketch *ddsketch.DDSketch
	if withPercentiles {
		// Construction only fails for an out-of-range accuracy.
		sketch, _ = ddsketch.NewDefaultDDSketch(DefaultAccuracy)
	}

	var sum float64
	for _, sample := range samples {
		v := sample.Temperature.Celsius()
		sum += v

		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		if sample.Uptime < s.FirstUptime {
			s.FirstUptime = sample.Uptime
		}
		if sample.Uptime > s.LastUptime {
			s.LastUptime = sample.Uptime
		}

		if sketch != nil {
			_ = sketch.Add(v)
		}
	}
	s.Avg = sum / float64(len(samples))

	if sketch != nil {
		s.setPercentiles(sketch)
	}
	return s
}

// setPercentiles fills the percentile fields from the sketch.
func (s *Summary) setPercentiles(sketch *ddsketch.DDSketch) {
	quantile := func(q float64) *float64 {
		v, err := sketch.GetValueAtQuantile(q)
		if err != nil {
			return nil
		}
		return &v
	}
	s.P50 = quantile(0.50)
	s.P90 = quantile(0.90)
	s.P95 = quantile(0.95)
	s.P99 = quantile(0.99)
}
