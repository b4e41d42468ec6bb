package sensor

import (
	"context"
	"fmt"
	"sync"

	"github.com/xtxerr/templog/internal/errors"
)

// Scripted replays a fixed sequence of readings, then repeats the last
// one forever. Individual acquisitions can be made to fail via FailAt.
// Useful for tests and dry runs.
type Scripted struct {
	mu       sync.Mutex
	readings []Reading
	fail     []bool
	next     int
}

// NewScripted returns a sensor that replays readings in order.
func NewScripted(readings ...Reading) *Scripted {
	return &Scripted{readings: readings, fail: make([]bool, len(readings))}
}

// FailAt makes the i-th acquisition (zero-based) report a sensor
// failure instead of its reading.
func (s *Scripted) FailAt(i int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i >= 0 && i < len(s.fail) {
		s.fail[i] = true
	}
	return s
}

// Acquire returns the next scripted reading.
func (s *Scripted) Acquire(ctx context.Context) (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.readings) == 0 {
		return Reading{}, fmt.Errorf("%w: no scripted readings", errors.ErrSensorFailure)
	}

	i := s.next
	if i >= len(s.readings) {
		i = len(s.readings) - 1
	} else {
		s.next++
	}

	if s.fail[i] {
		return Reading{}, fmt.Errorf("%w: scripted failure at reading %d", errors.ErrSensorFailure, i)
	}
	return s.readings[i], nil
}
