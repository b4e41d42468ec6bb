package series

import (
	"sync"
	"sync/atomic"

	"github.com/xtxerr/templog/internal/errors"
)

// Buffer is the persistable core of a bounded sample list: a
// fixed-capacity slot array and the count of occupied slots. It carries
// no lock of its own; when a Buffer is shared it lives inside a List
// and the List's lock must be held for every access.
//
// Invariant: the occupied prefix is sorted non-decreasing by Uptime,
// both for live buffers (append-only with a monotonic clock) and for
// previously-compacted archives.
type Buffer struct {
	data   []Sample // len(data) == capacity, fixed at construction
	length int
}

// NewBuffer returns an empty buffer with the given fixed capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]Sample, capacity)}
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Len returns the number of occupied slots.
func (b *Buffer) Len() int { return b.length }

// Full reports whether the buffer is at capacity.
func (b *Buffer) Full() bool { return b.length == len(b.data) }

// At returns the sample at index i. i must be in [0, Len()).
func (b *Buffer) At(i int) Sample { return b.data[i] }

// Reset zeroes all slots and empties the buffer. It always succeeds.
func (b *Buffer) Reset() {
	clear(b.data)
	b.length = 0
}

// Append places s in the next free slot. It fails with
// ErrCapacityExhausted when the buffer is full and never mutates a
// full buffer.
func (b *Buffer) Append(s Sample) error {
	if b.length == len(b.data) {
		return errors.ErrCapacityExhausted
	}
	b.data[b.length] = s
	b.length++
	return nil
}

// Samples returns a copy of the occupied prefix.
func (b *Buffer) Samples() []Sample {
	out := make([]Sample, b.length)
	copy(out, b.data[:b.length])
	return out
}

// listIDs assigns each List a stable identity at construction time.
// The identities define the canonical lock acquisition order.
var listIDs atomic.Uint64

// List is a lock-guarded handle around a Buffer. The guarded buffer is
// only reachable through Buffer(), which requires the caller to hold
// the lock; single-operation convenience accessors lock internally.
type List struct {
	mu  sync.Mutex
	id  uint64
	buf *Buffer
}

// NewList returns an empty list with the given fixed capacity.
func NewList(capacity int) *List {
	return &List{id: listIDs.Add(1), buf: NewBuffer(capacity)}
}

// ID returns the list's assigned lock-ordering identity.
func (l *List) ID() uint64 { return l.id }

// Lock acquires the list's guard. Prefer the package-level Lock when
// more than one list is involved.
func (l *List) Lock() { l.mu.Lock() }

// Unlock releases the list's guard.
func (l *List) Unlock() { l.mu.Unlock() }

// Buffer returns the guarded buffer. The caller must hold the lock for
// the entire time it uses the returned value.
func (l *List) Buffer() *Buffer { return l.buf }

// Len returns the current length.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Len()
}

// Append adds a sample under the list's own lock.
func (l *List) Append(s Sample) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Append(s)
}

// Reset empties the list under its own lock.
func (l *List) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.Reset()
}

// Snapshot returns a copy of the current samples.
func (l *List) Snapshot() []Sample {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Samples()
}

// SnapshotBuffer returns a copy of the guarded buffer, sized to the
// same capacity. The copy is private to the caller and needs no lock.
func (l *List) SnapshotBuffer() *Buffer {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := NewBuffer(l.buf.Cap())
	copy(out.data, l.buf.data)
	out.length = l.buf.length
	return out
}
