package summary

import (
	"math"
	"testing"

	"github.com/xtxerr/templog/internal/series"
	"github.com/xtxerr/templog/internal/temperature"
)

func samplesAt(degrees ...float64) []series.Sample {
	out := make([]series.Sample, len(degrees))
	for i, d := range degrees {
		out[i] = series.Sample{
			Temperature: temperature.FromCelsius(d),
			Uptime:      uint32(i * 10),
		}
	}
	return out
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, true)
	if s.Count != 0 {
		t.Errorf("expected zero count, got %d", s.Count)
	}
	if s.P50 != nil {
		t.Error("expected no percentiles for empty input")
	}
}

func TestSummarize_Basic(t *testing.T) {
	s := Summarize(samplesAt(20, 22, 24, 26), false)

	if s.Count != 4 {
		t.Errorf("expected count 4, got %d", s.Count)
	}
	if s.Min != 20 {
		t.Errorf("expected min 20, got %v", s.Min)
	}
	if s.Max != 26 {
		t.Errorf("expected max 26, got %v", s.Max)
	}
	if s.Avg != 23 {
		t.Errorf("expected avg 23, got %v", s.Avg)
	}
	if s.FirstUptime != 0 || s.LastUptime != 30 {
		t.Errorf("expected uptime range 0..30, got %d..%d", s.FirstUptime, s.LastUptime)
	}
	if s.P50 != nil {
		t.Error("percentiles must be nil when not requested")
	}
}

func TestSummarize_Negative(t *testing.T) {
	s := Summarize(samplesAt(-10, -20, 5), false)
	if s.Min != -20 {
		t.Errorf("expected min -20, got %v", s.Min)
	}
	if s.Max != 5 {
		t.Errorf("expected max 5, got %v", s.Max)
	}
}

func TestSummarize_Percentiles(t *testing.T) {
	degrees := make([]float64, 100)
	for i := range degrees {
		degrees[i] = float64(i + 1)
	}
	s := Summarize(samplesAt(degrees...), true)

	check := func(name string, got *float64, want float64) {
		t.Helper()
		if got == nil {
			t.Errorf("%s is nil", name)
			return
		}
		// DDSketch guarantees 1% relative accuracy.
		if math.Abs(*got-want)/want > 0.02 {
			t.Errorf("%s = %v, want about %v", name, *got, want)
		}
	}
	check("p50", s.P50, 50)
	check("p90", s.P90, 90)
	check("p99", s.P99, 99)
}

func TestSummarize_SingleSample(t *testing.T) {
	s := Summarize(samplesAt(21.5), true)
	if s.Min != 21.5 || s.Max != 21.5 || s.Avg != 21.5 {
		t.Errorf("expected all stats 21.5, got min=%v max=%v avg=%v", s.Min, s.Max, s.Avg)
	}
	if s.P50 == nil {
		t.Fatal("expected p50 for single sample")
	}
	if math.Abs(*s.P50-21.5) > 0.5 {
		t.Errorf("p50 = %v, want about 21.5", *s.P50)
	}
}
