package mmap

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/hupe1980/parsort/internal/conv"
)

// Mapping represents a memory-mapped file.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	size   int
	mode   Mode
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// MapFile maps the first size bytes of f.
// The caller may close f once MapFile returns; the mapping keeps its own
// reference to the pages. A zero size yields an empty mapping without a
// system call.
func MapFile(f Fder, size int, mode Mode) (*Mapping, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{mode: mode}, nil
	}

	data, unmapFunc, err := osMap(int(f.Fd()), size, mode)
	if err != nil {
		return nil, err
	}

	return &Mapping{
		data:  data,
		size:  size,
		mode:  mode,
		unmap: unmapFunc,
	}, nil
}

// Open maps the whole file at path.
func Open(path string, mode Mode) (*Mapping, error) {
	flag := os.O_RDONLY
	if mode == ModeReadWrite {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size, err := conv.Int64ToInt(fi.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}

	return MapFile(f, size, mode)
}

// Close unmaps the memory. It is idempotent.
// A writable mapping is synced before it is unmapped.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap == nil || m.data == nil {
		return nil
	}
	var err error
	if m.mode == ModeReadWrite {
		err = osSync(m.data)
	}
	if unmapErr := m.unmap(m.data); unmapErr != nil && err == nil {
		err = unmapErr
	}
	m.data = nil
	return err
}

// Sync flushes dirty pages of a writable mapping to the backing file.
func (m *Mapping) Sync() error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil || m.mode != ModeReadWrite {
		return nil
	}
	return osSync(m.data)
}

// Bytes returns the underlying byte slice.
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return m.size
}

// Writable reports whether the mapping was created with ModeReadWrite.
func (m *Mapping) Writable() bool {
	return m.mode == ModeReadWrite
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (n int, err error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
