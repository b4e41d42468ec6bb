// Package series implements the bounded temperature time series at the
// heart of templog: the fixed-capacity sample list, the chronological
// merge iterator over two lists, and the compactor that folds the live
// buffer into the archive, decimating by uniform time-resampling when
// the merged set would not fit.
package series

import (
	"github.com/xtxerr/templog/internal/temperature"
)

// Sample is a single temperature measurement. Samples are immutable
// once created and are copied by value between lists.
type Sample struct {
	// Temperature is the fixed-point measurement.
	Temperature temperature.Temperature

	// Uptime is minutes since boot. It is monotonic non-decreasing for
	// the process lifetime but restarts from zero on reboot, so an
	// archive spanning a restart can contain non-monotonic timestamps.
	// This is an accepted limitation of the format.
	Uptime uint32
}
