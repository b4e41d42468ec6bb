package series

import (
	"github.com/xtxerr/templog/internal/errors"
	"github.com/xtxerr/templog/internal/temperature"
)

// Compact merges src1 and src2 chronologically into dst. When the
// union fits dst's capacity it is copied verbatim; otherwise it is
// decimated to exactly dst.Cap() samples uniformly spaced in time.
// The choice depends on total input length only, so it is
// deterministic for a given pair of lists.
//
// dst may alias one of the sources; the merge is staged through a
// private buffer and committed at the end, so a failure leaves dst
// untouched. The caller must hold the owning lists' locks for all
// three arguments (see CompactLists).
func Compact(src1, src2, dst *Buffer) error {
	if src1.length+src2.length <= dst.Cap() {
		return mergeDirect(src1, src2, dst)
	}
	return mergeDecimate(src1, src2, dst)
}

// CompactLists runs Compact under the canonical three-way lock
// protocol. Aliased lists (for example dst == src2, the usual
// live-into-archive shape) are locked once.
func CompactLists(src1, src2, dst *List) error {
	Lock(src1, src2, dst)
	defer Unlock(src1, src2, dst)
	return Compact(src1.buf, src2.buf, dst.buf)
}

// mergeDirect copies the exact chronological union into dst,
// preserving timestamps and values. Requires the union to fit.
func mergeDirect(src1, src2, dst *Buffer) error {
	total := src1.length + src2.length
	if total > dst.Cap() {
		return errors.Wrap(errors.ErrInvalidArgument, "merged length exceeds destination capacity")
	}

	merged := make([]Sample, 0, total)
	it := newMergeIterator(src1, src2)
	for {
		s, err := it.next()
		if errors.IsEndOfSeries(err) {
			break
		}
		merged = append(merged, s)
	}

	dst.Reset()
	copy(dst.data, merged)
	dst.length = len(merged)
	return nil
}

// mergeDecimate resamples the union of src1 and src2 down to exactly
// dst.Cap() samples uniformly spaced between the earliest and latest
// source timestamps. With duration = end-start and C = dst.Cap(), the
// base gap is duration/(C-1); the division remainder is spread one
// minute at a time across the earliest gaps so the gaps sum to the
// duration exactly instead of truncating the tail.
//
// Each target timestamp is produced by walking the merge iterator
// until a (previous, current) bracket of consecutive merged samples
// straddles it, then linearly interpolating. The synthesized sample
// carries the exact target timestamp.
func mergeDecimate(src1, src2, dst *Buffer) error {
	c := dst.Cap()
	if c < 2 {
		return errors.Wrap(errors.ErrInvalidArgument, "decimation needs capacity of at least 2")
	}

	var (
		start uint32 = ^uint32(0)
		end   uint32
	)
	for _, src := range [...]*Buffer{src1, src2} {
		if src.length == 0 {
			continue
		}
		if f := src.data[0].Uptime; f < start {
			start = f
		}
		if l := src.data[src.length-1].Uptime; l > end {
			end = l
		}
	}

	duration := end - start
	base := duration / uint32(c-1)
	longGaps := duration % uint32(c-1)

	it := newMergeIterator(src1, src2)
	prev, err := it.next()
	if err != nil {
		return errors.Wrap(err, "decimation of empty sources")
	}
	curr, err := it.next()
	if err != nil {
		return errors.Wrap(err, "decimation needs at least two samples")
	}

	merged := make([]Sample, 0, c)
	target := start
	for len(merged) < c {
		if target >= prev.Uptime && target <= curr.Uptime {
			merged = append(merged, interpolate(prev, curr, target))
			gap := base
			if uint32(len(merged)) <= longGaps {
				gap++
			}
			target += gap
			continue
		}
		// Bracket does not straddle the target yet; shift it forward.
		prev = curr
		curr, err = it.next()
		if err != nil {
			return errors.Wrap(err, "sources exhausted before final target")
		}
	}

	dst.Reset()
	copy(dst.data, merged)
	dst.length = c
	return nil
}

// interpolate synthesizes a sample at target between the bracket
// (prev, curr). An equal-timestamp bracket yields the arithmetic mean;
// otherwise the temperature is interpolated linearly in a wider
// integer type and truncated back to the fixed-point width. A target
// on either bracket endpoint reproduces that endpoint's value exactly.
func interpolate(prev, curr Sample, target uint32) Sample {
	if prev.Uptime == curr.Uptime {
		mean := (int32(prev.Temperature) + int32(curr.Temperature)) / 2
		return Sample{Temperature: temperature.Temperature(mean), Uptime: target}
	}

	dTemp := int64(curr.Temperature) - int64(prev.Temperature)
	dt := int64(target) - int64(prev.Uptime)
	span := int64(curr.Uptime) - int64(prev.Uptime)
	t := int64(prev.Temperature) + dTemp*dt/span
	return Sample{Temperature: temperature.Temperature(t), Uptime: target}
}
