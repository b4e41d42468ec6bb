// Package errors consolidates error definitions for the entire project.
//
// This file provides:
// - Sentinel errors for all error conditions
// - Error category checking functions
// - Error wrapping utilities
package errors

import (
	"errors"
	"fmt"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrCapacityExhausted is returned when appending to a full sample list.
	ErrCapacityExhausted = errors.New("capacity exhausted")

	// ErrEndOfSeries is returned by a drained merge iterator.
	ErrEndOfSeries = errors.New("end of series")

	// ErrNotFound is returned when a key-value record does not exist.
	// On a first-run load this is expected and triggers initialization.
	ErrNotFound = errors.New("record not found")

	// ErrStorageFailure is returned when a non-volatile read or write
	// transfers a different number of bytes than expected.
	ErrStorageFailure = errors.New("storage failure")

	// ErrSensorFailure is returned when sample acquisition fails.
	// The sampler treats it as transient and skips the tick's append.
	ErrSensorFailure = errors.New("sensor failure")

	// ErrInvalidArgument is returned for malformed operation inputs.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("store closed")
)

// ============================================================================
// Category checking
// ============================================================================

// IsCapacityExhausted reports whether err indicates a full list.
func IsCapacityExhausted(err error) bool {
	return errors.Is(err, ErrCapacityExhausted)
}

// IsEndOfSeries reports whether err indicates a drained iterator.
func IsEndOfSeries(err error) bool {
	return errors.Is(err, ErrEndOfSeries)
}

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStorage reports whether err is a storage failure.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}

// IsSensor reports whether err is a sensor failure.
func IsSensor(err error) bool {
	return errors.Is(err, ErrSensorFailure)
}

// IsInvalidArgument reports whether err indicates a malformed input.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsTransient reports whether err is retried naturally by the next
// sampling tick rather than escalated.
func IsTransient(err error) bool {
	return IsStorage(err) || IsSensor(err) || IsCapacityExhausted(err)
}

// ============================================================================
// Wrapping utilities
// ============================================================================

// Wrap annotates err with a message, preserving the error chain.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf annotates err with a formatted message, preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
