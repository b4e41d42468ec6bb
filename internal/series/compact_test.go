package series

import (
	"testing"

	"github.com/xtxerr/templog/internal/errors"
	"github.com/xtxerr/templog/internal/temperature"
)

func fromBuffer(t *testing.T, samples ...Sample) *Buffer {
	t.Helper()
	b := NewBuffer(len(samples))
	for _, s := range samples {
		if err := b.Append(s); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return b
}

func assertSamples(t *testing.T, got []Sample, want []Sample) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = {%d, %d}, want {%d, %d}",
				i, got[i].Temperature, got[i].Uptime, want[i].Temperature, want[i].Uptime)
		}
	}
}

func TestCompact_DirectMerge(t *testing.T) {
	// Two disjoint runs whose union fits exactly: every sample survives
	// with its original timestamp and value.
	a := fromBuffer(t,
		Sample{Temperature: temperature.FromCelsius(10), Uptime: 10},
		Sample{Temperature: temperature.FromCelsius(20), Uptime: 20},
		Sample{Temperature: temperature.FromCelsius(30), Uptime: 30},
	)
	b := fromBuffer(t,
		Sample{Temperature: temperature.FromCelsius(40), Uptime: 40},
		Sample{Temperature: temperature.FromCelsius(50), Uptime: 50},
		Sample{Temperature: temperature.FromCelsius(60), Uptime: 60},
	)

	dst := NewBuffer(6)
	if err := Compact(a, b, dst); err != nil {
		t.Fatalf("compact: %v", err)
	}

	want := make([]Sample, 0, 6)
	for up := uint32(10); up <= 60; up += 10 {
		want = append(want, Sample{Temperature: temperature.FromCelsius(float64(up)), Uptime: up})
	}
	assertSamples(t, dst.Samples(), want)
}

func TestCompact_DirectMergeEmptySources(t *testing.T) {
	dst := NewBuffer(4)
	fill(t, dst, 2, 1, 1)

	if err := Compact(NewBuffer(2), NewBuffer(2), dst); err != nil {
		t.Fatalf("compact: %v", err)
	}
	if dst.Len() != 0 {
		t.Errorf("merging empty sources should empty dst, got len=%d", dst.Len())
	}
}

func TestCompact_Decimate(t *testing.T) {
	// Twelve samples spanning minutes 10..65 decimated to six. The base
	// gap is 55/5 = 11 with no remainder, so the targets land on
	// 10, 21, 32, 43, 54, 65. Raw temperatures equal their uptimes, so
	// linear interpolation is exact.
	a := NewBuffer(6)
	fill(t, a, 6, 10, 5) // 10..35
	b := NewBuffer(6)
	fill(t, b, 6, 40, 5) // 40..65

	dst := NewBuffer(6)
	if err := Compact(a, b, dst); err != nil {
		t.Fatalf("compact: %v", err)
	}

	want := []Sample{
		sample(10, 10), sample(21, 21), sample(32, 32),
		sample(43, 43), sample(54, 54), sample(65, 65),
	}
	assertSamples(t, dst.Samples(), want)
}

func TestCompact_DecimateRemainderSpread(t *testing.T) {
	// Duration 10 over 3 gaps: base 3, remainder 1. The extra minute
	// goes to the earliest gap, so gaps are 4,3,3 and targets are
	// 0, 4, 7, 10. Raw temperatures are twice the uptime, making the
	// expected interpolations 0, 8, 14, 20.
	a := fromBuffer(t, sample(0, 0), sample(8, 4), sample(16, 8))
	b := fromBuffer(t, sample(4, 2), sample(12, 6), sample(20, 10))

	dst := NewBuffer(4)
	if err := Compact(a, b, dst); err != nil {
		t.Fatalf("compact: %v", err)
	}

	want := []Sample{sample(0, 0), sample(8, 4), sample(14, 7), sample(20, 10)}
	assertSamples(t, dst.Samples(), want)

	// The gaps must sum to the full duration rather than truncating it.
	got := dst.Samples()
	var gapSum uint32
	for i := 1; i < len(got); i++ {
		gapSum += got[i].Uptime - got[i-1].Uptime
	}
	if gapSum != 10 {
		t.Errorf("gaps sum to %d, want full duration 10", gapSum)
	}
}

func TestCompact_DecimateEqualTimestampBracket(t *testing.T) {
	// Both sources start at minute 5. The first target sits on the
	// duplicated timestamp, so its value is the mean of the two samples
	// there, with the first source's sample ordered first.
	a := fromBuffer(t, sample(100, 5), sample(300, 10))
	b := fromBuffer(t, sample(200, 5), sample(400, 20))

	dst := NewBuffer(3)
	if err := Compact(a, b, dst); err != nil {
		t.Fatalf("compact: %v", err)
	}

	// Duration 15 over 2 gaps: base 7, remainder 1, targets 5, 13, 20.
	// The value at 13 interpolates the (300@10, 400@20) bracket.
	want := []Sample{sample(150, 5), sample(330, 13), sample(400, 20)}
	assertSamples(t, dst.Samples(), want)
}

func TestCompact_DecimateEndpointsExact(t *testing.T) {
	// First and last decimated samples reproduce the extreme source
	// samples exactly, whatever falls in between.
	a := NewBuffer(5)
	fill(t, a, 5, 100, 7)
	b := NewBuffer(5)
	fill(t, b, 5, 103, 7)

	dst := NewBuffer(4)
	if err := Compact(a, b, dst); err != nil {
		t.Fatalf("compact: %v", err)
	}

	got := dst.Samples()
	if len(got) != 4 {
		t.Fatalf("expected exactly 4 samples, got %d", len(got))
	}
	first, last := a.At(0), b.At(b.Len()-1)
	if got[0] != first {
		t.Errorf("first sample = %v, want %v", got[0], first)
	}
	if got[3] != last {
		t.Errorf("last sample = %v, want %v", got[3], last)
	}
}

func TestCompact_DestinationAliasesSource(t *testing.T) {
	// The usual archive shape: compact live+archive back into the
	// archive buffer.
	live := NewBuffer(3)
	fill(t, live, 3, 40, 10) // 40, 50, 60
	archive := NewBuffer(6)
	fill(t, archive, 3, 10, 10) // 10, 20, 30

	if err := Compact(live, archive, archive); err != nil {
		t.Fatalf("compact: %v", err)
	}

	want := []Sample{
		sample(10, 10), sample(20, 20), sample(30, 30),
		sample(40, 40), sample(50, 50), sample(60, 60),
	}
	assertSamples(t, archive.Samples(), want)
}

func TestCompact_DecimateAliasedDestination(t *testing.T) {
	live := NewBuffer(6)
	fill(t, live, 6, 40, 5) // 40..65
	archive := NewBuffer(6)
	fill(t, archive, 6, 10, 5) // 10..35

	if err := Compact(live, archive, archive); err != nil {
		t.Fatalf("compact: %v", err)
	}

	want := []Sample{
		sample(10, 10), sample(21, 21), sample(32, 32),
		sample(43, 43), sample(54, 54), sample(65, 65),
	}
	assertSamples(t, archive.Samples(), want)
}

func TestCompact_DecimateTinyDestination(t *testing.T) {
	a := NewBuffer(2)
	fill(t, a, 2, 0, 10)
	b := NewBuffer(2)
	fill(t, b, 2, 5, 10)

	err := Compact(a, b, NewBuffer(1))
	if !errors.IsInvalidArgument(err) {
		t.Errorf("expected invalid argument for capacity 1, got %v", err)
	}
}

func TestCompactLists(t *testing.T) {
	live := NewList(3)
	for _, s := range []Sample{sample(40, 40), sample(50, 50), sample(60, 60)} {
		if err := live.Append(s); err != nil {
			t.Fatal(err)
		}
	}
	archive := NewList(6)
	for _, s := range []Sample{sample(10, 10), sample(20, 20), sample(30, 30)} {
		if err := archive.Append(s); err != nil {
			t.Fatal(err)
		}
	}

	if err := CompactLists(live, archive, archive); err != nil {
		t.Fatalf("compact: %v", err)
	}

	got := archive.Snapshot()
	if len(got) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(got))
	}
	if got[0] != sample(10, 10) || got[5] != sample(60, 60) {
		t.Errorf("unexpected merged contents: %v", got)
	}
}
