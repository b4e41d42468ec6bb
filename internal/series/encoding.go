package series

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/xtxerr/templog/internal/errors"
	"github.com/xtxerr/templog/internal/nvs"
	"github.com/xtxerr/templog/internal/temperature"
)

// Record format (binary, little-endian):
// - capacity sample slots, each: Temperature (2 bytes) + Uptime (4 bytes)
// - Length (4 bytes)
//
// All capacity slots are always written, zero-padded past Length, so a
// record's size is a function of capacity alone. The list's guard is
// never part of the persisted bytes.

const sampleSize = 2 + 4

// RecordSize returns the persisted record size for a buffer of the
// given capacity.
func RecordSize(capacity int) int {
	return capacity*sampleSize + 4
}

// CapacityForRecord derives the buffer capacity from a record's size,
// or an error if the size cannot correspond to any capacity.
func CapacityForRecord(size int) (int, error) {
	if size < 4 || (size-4)%sampleSize != 0 {
		return 0, errors.Wrapf(errors.ErrStorageFailure, "record size %d matches no capacity", size)
	}
	return (size - 4) / sampleSize, nil
}

// MarshalRecord encodes the buffer as a fixed-size record.
func (b *Buffer) MarshalRecord() []byte {
	buf := make([]byte, 0, RecordSize(b.Cap()))
	for _, s := range b.data {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s.Temperature))
		buf = binary.LittleEndian.AppendUint32(buf, s.Uptime)
	}
	return binary.LittleEndian.AppendUint32(buf, uint32(b.length))
}

// UnmarshalRecord decodes a fixed-size record into the buffer. The
// record must be exactly the size for this buffer's capacity and carry
// a plausible length field.
func (b *Buffer) UnmarshalRecord(data []byte) error {
	want := RecordSize(b.Cap())
	if len(data) != want {
		return errors.Wrapf(errors.ErrStorageFailure, "record size mismatch: want %d bytes, got %d", want, len(data))
	}

	length := int(binary.LittleEndian.Uint32(data[len(data)-4:]))
	if length > b.Cap() {
		return errors.Wrapf(errors.ErrStorageFailure, "record length %d exceeds capacity %d", length, b.Cap())
	}

	for i := range b.data {
		off := i * sampleSize
		b.data[i] = Sample{
			Temperature: temperature.Temperature(binary.LittleEndian.Uint16(data[off:])),
			Uptime:      binary.LittleEndian.Uint32(data[off+2:]),
		}
	}
	b.length = length
	return nil
}

// Fetch reads the record stored under key into the buffer without side
// effects. A missing key is reported as-is (errors.ErrNotFound).
func (b *Buffer) Fetch(ctx context.Context, st nvs.Store, key nvs.Key) error {
	data, err := st.Read(ctx, key, RecordSize(b.Cap()))
	if err != nil {
		if errors.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("read record: %w: %w", errors.ErrStorageFailure, err)
	}
	return b.UnmarshalRecord(data)
}

// Load reads the record stored under key into the buffer. A missing
// key signals first run: the buffer is reset, an initial record is
// written, and the load reports success. The first-run write is best
// effort; a failure there surfaces on the next store. The caller must
// hold the owning list's lock.
func (b *Buffer) Load(ctx context.Context, st nvs.Store, key nvs.Key) error {
	err := b.Fetch(ctx, st, key)
	if errors.IsNotFound(err) {
		b.Reset()
		_ = b.Store(ctx, st, key)
		return nil
	}
	return err
}

// Store writes the buffer's record under key. Success requires the
// store to report either the full record size or 0 bytes ("no change
// needed"); anything else is a storage failure. The caller must hold
// the owning list's lock.
func (b *Buffer) Store(ctx context.Context, st nvs.Store, key nvs.Key) error {
	payload := b.MarshalRecord()
	n, err := st.Write(ctx, key, payload)
	if err != nil {
		return fmt.Errorf("write record: %w: %w", errors.ErrStorageFailure, err)
	}
	if n != len(payload) && n != 0 {
		return errors.Wrapf(errors.ErrStorageFailure, "short write: want %d bytes or 0, wrote %d", len(payload), n)
	}
	return nil
}
