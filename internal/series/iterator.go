package series

import "github.com/xtxerr/templog/internal/errors"

// mergeIterator lazily walks the time-ordered union of two buffers
// without allocating a combined copy. It yields len(src1)+len(src2)
// samples in non-decreasing Uptime order; equal timestamps yield the
// src1 sample first. The iterator borrows both buffers read-only for
// its lifetime: the caller must hold the owning lists' locks for that
// entire span, and must not mutate the buffers while iterating.
//
// Once drained the iterator is terminal: every further next() reports
// end of series. It is not restartable.
type mergeIterator struct {
	src1, src2 *Buffer

	current *Buffer // source of the sample next() returns; nil when terminal
	index   int     // index of that sample within current

	next1, next2 int // first unconsumed index in src1/src2
}

// newMergeIterator positions the iterator on the globally-earliest
// sample of the two sources.
func newMergeIterator(src1, src2 *Buffer) *mergeIterator {
	m := &mergeIterator{src1: src1, src2: src2}

	switch {
	case src1.length == 0 && src2.length == 0:
		m.current = nil
	case src1.length == 0:
		m.current = src2
		m.next2 = 1
	case src2.length == 0:
		m.current = src1
		m.next1 = 1
	case src1.data[0].Uptime <= src2.data[0].Uptime:
		m.current = src1
		m.next1 = 1
	default:
		m.current = src2
		m.next2 = 1
	}
	return m
}

// next returns the chronologically next sample and advances the
// iterator, or ErrEndOfSeries once both sources are exhausted.
func (m *mergeIterator) next() (Sample, error) {
	if m.current == nil {
		return Sample{}, errors.ErrEndOfSeries
	}
	s := m.current.data[m.index]

	at1End := m.next1 == m.src1.length
	at2End := m.next2 == m.src2.length

	switch {
	case at1End && at2End:
		// Terminal from here on.
		m.current = nil
	case at1End:
		m.current = m.src2
		m.index = m.next2
		m.next2++
	case at2End:
		m.current = m.src1
		m.index = m.next1
		m.next1++
	case m.src1.data[m.next1].Uptime <= m.src2.data[m.next2].Uptime:
		m.current = m.src1
		m.index = m.next1
		m.next1++
	default:
		m.current = m.src2
		m.index = m.next2
		m.next2++
	}
	return s, nil
}
