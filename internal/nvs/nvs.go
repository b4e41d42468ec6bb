// Package nvs provides the non-volatile key-value store backing the
// temperature archive.
//
// Records are opaque fixed-size byte blobs keyed by a small integer
// identity. The interface mirrors flash-style NVS semantics: a missing
// key on read is not an error condition (it signals first run), and a
// write may report zero bytes written to mean "stored content already
// matches, no change needed".
package nvs

import "context"

// Key identifies a persisted record. Each subsystem owns a distinct key.
type Key uint16

const (
	// KeyTemperatureData is the archived temperature history record.
	KeyTemperatureData Key = 1

	// KeySettings is the persisted daemon settings record.
	KeySettings Key = 2
)

// Store is a non-volatile key-value store.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Read returns the bytes stored under key. expectedSize is a hint
	// for the caller's record size; implementations may use it to size
	// buffers but must return whatever is stored. A missing key yields
	// an error matching errors.ErrNotFound.
	Read(ctx context.Context, key Key, expectedSize int) ([]byte, error)

	// Write stores data under key and returns the number of bytes
	// written. A return of 0 with a nil error means the stored content
	// already matched and no change was needed. Any other count that
	// differs from len(data) is a storage failure.
	Write(ctx context.Context, key Key, data []byte) (int, error)

	// Close releases the store's resources.
	Close() error
}
