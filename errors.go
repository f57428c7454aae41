package parsort

import (
	"errors"
	"fmt"
)

var (
	// ErrDispatch is returned when a sort task could not be started.
	ErrDispatch = errors.New("parsort: dispatch failed")
	// ErrInvalidRange is returned for a range that is inverted or outside the data.
	ErrInvalidRange = errors.New("parsort: invalid range")
	// ErrInvalidThreshold is returned for a negative threshold.
	ErrInvalidThreshold = errors.New("parsort: invalid threshold")
	// ErrMisalignedFile is returned when a file size is not a whole number of records.
	ErrMisalignedFile = errors.New("parsort: file size is not a multiple of the record size")
	// ErrClosed is returned when using a closed store.
	ErrClosed = errors.New("parsort: store is closed")
)

// SortError reports a range whose sort task could not be dispatched.
//
// The underlying cause can be accessed via errors.Unwrap; it always
// matches ErrDispatch.
type SortError struct {
	Range Range
	cause error
}

func (e *SortError) Error() string {
	return fmt.Sprintf("sort %s: %v", e.Range, e.cause)
}

func (e *SortError) Unwrap() error { return e.cause }

func dispatchError(r Range, err error) error {
	return &SortError{Range: r, cause: fmt.Errorf("%w: %w", ErrDispatch, err)}
}
