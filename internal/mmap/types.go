package mmap

import "errors"

// Mode selects the protection of a mapping.
type Mode int

const (
	// ModeReadOnly maps pages PROT_READ.
	ModeReadOnly Mode = iota
	// ModeReadWrite maps pages PROT_READ|PROT_WRITE, shared with the file.
	ModeReadWrite
)

// AccessPattern provides hints to the kernel about how the data will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed
	// AccessDontNeed expects data to not be accessed in the near future.
	AccessDontNeed
)

// Fder is implemented by open files that expose their descriptor.
type Fder interface {
	Fd() uintptr
}

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size is invalid (e.g. negative or too large).
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned when the offset is invalid (e.g. negative).
	ErrInvalidOffset = errors.New("mmap: invalid offset")
	// ErrUnsupported is returned on platforms without mmap support.
	ErrUnsupported = errors.New("mmap: unsupported platform")
)
