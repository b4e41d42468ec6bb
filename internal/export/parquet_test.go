package export

import (
	"path/filepath"
	"testing"

	"github.com/xtxerr/templog/internal/series"
	"github.com/xtxerr/templog/internal/temperature"
)

func testSamples(n int) []series.Sample {
	out := make([]series.Sample, n)
	for i := range out {
		out[i] = series.Sample{
			Temperature: temperature.FromCelsius(20 + float64(i)*0.5),
			Uptime:      uint32(i * 30),
		}
	}
	return out
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
	}{
		{"zstd", CompressionZstd},
		{"snappy", CompressionSnappy},
		{"lz4", CompressionLZ4},
		{"gzip", CompressionGzip},
		{"none", CompressionNone},
		{"", CompressionNone},
		{"bogus", CompressionZstd},
	}
	for _, tt := range tests {
		if got := ParseCompressionType(tt.in); got != tt.want {
			t.Errorf("ParseCompressionType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	samples := testSamples(50)
	path := filepath.Join(t.TempDir(), "export.parquet")

	if err := Write(path, samples, DefaultOptions()); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := ReadAll(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != len(samples) {
		t.Fatalf("expected %d rows, got %d", len(samples), len(rows))
	}
	for i, row := range rows {
		if row.UptimeMin != int64(samples[i].Uptime) {
			t.Errorf("row %d uptime = %d, want %d", i, row.UptimeMin, samples[i].Uptime)
		}
		if row.TemperatureRaw != int32(samples[i].Temperature) {
			t.Errorf("row %d raw = %d, want %d", i, row.TemperatureRaw, samples[i].Temperature)
		}
		if row.Celsius != samples[i].Temperature.Celsius() {
			t.Errorf("row %d celsius = %v, want %v", i, row.Celsius, samples[i].Temperature.Celsius())
		}
	}
}

func TestWrite_Compressions(t *testing.T) {
	samples := testSamples(10)
	for _, ct := range []CompressionType{
		CompressionNone, CompressionSnappy, CompressionZstd, CompressionLZ4, CompressionGzip,
	} {
		path := filepath.Join(t.TempDir(), "export.parquet")
		if err := Write(path, samples, Options{Compression: ct}); err != nil {
			t.Errorf("write with compression %v: %v", ct, err)
			continue
		}
		rows, err := ReadAll(path)
		if err != nil {
			t.Errorf("read with compression %v: %v", ct, err)
			continue
		}
		if len(rows) != len(samples) {
			t.Errorf("compression %v: expected %d rows, got %d", ct, len(samples), len(rows))
		}
	}
}

func TestWrite_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "export.parquet")
	if err := Write(path, testSamples(1), DefaultOptions()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadAll(path); err != nil {
		t.Fatalf("read: %v", err)
	}
}

func TestWrite_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := Write(path, nil, DefaultOptions()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := ReadAll(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
