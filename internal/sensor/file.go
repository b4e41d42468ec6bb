package sensor

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xtxerr/templog/internal/errors"
)

// FileConfig holds file sensor configuration.
type FileConfig struct {
	// Path is the file to read, typically a Linux thermal zone such as
	// /sys/class/thermal/thermal_zone0/temp.
	Path string

	// Scale is the number of integer units per degree Celsius.
	// Thermal zones report millidegrees; defaults to 1000.
	Scale int32
}

// FileSensor reads a plain-text integer temperature from a file on
// each acquisition.
type FileSensor struct {
	cfg FileConfig
}

// NewFileSensor validates cfg and returns a file-backed sensor.
func NewFileSensor(cfg FileConfig) (*FileSensor, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errors.ErrInvalidArgument)
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1000
	}
	return &FileSensor{cfg: cfg}, nil
}

// Acquire reads and parses the configured file.
func (s *FileSensor) Acquire(ctx context.Context) (Reading, error) {
	data, err := os.ReadFile(s.cfg.Path)
	if err != nil {
		return Reading{}, failure(err, "read "+s.cfg.Path)
	}

	raw, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return Reading{}, failure(err, "parse "+s.cfg.Path)
	}
	return splitScaled(raw, s.cfg.Scale), nil
}
