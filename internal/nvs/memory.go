package nvs

import (
	"context"
	"sync"

	"github.com/xtxerr/templog/internal/errors"
)

// MemStore is an in-memory Store for tests. Failure injection fields
// let tests exercise the storage error paths deterministically.
type MemStore struct {
	mu      sync.Mutex
	records map[Key][]byte

	// FailReads makes every Read return a generic failure.
	FailReads bool

	// FailWrites makes every Write return a generic failure.
	FailWrites bool

	// ShortWrites makes Write report one byte fewer than requested
	// while leaving the stored record untouched.
	ShortWrites bool

	// Reads and Writes count completed operations.
	Reads, Writes int
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[Key][]byte)}
}

// Read returns the record stored under key, or ErrNotFound.
func (s *MemStore) Read(ctx context.Context, key Key, expectedSize int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailReads {
		return nil, errors.Wrap(errors.ErrStorageFailure, "injected read failure")
	}

	data, ok := s.records[key]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "key %d", key)
	}
	s.Reads++
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores data under key. Identical content reports 0 bytes
// written, mirroring the real store's "no change needed" signal.
func (s *MemStore) Write(ctx context.Context, key Key, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return 0, errors.Wrap(errors.ErrStorageFailure, "injected write failure")
	}
	if s.ShortWrites {
		return len(data) - 1, nil
	}

	if existing, ok := s.records[key]; ok && string(existing) == string(data) {
		return 0, nil
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	s.records[key] = stored
	s.Writes++
	return len(data), nil
}

// Close is a no-op.
func (s *MemStore) Close() error { return nil }
