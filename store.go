package parsort

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/hupe1980/parsort/internal/conv"
	"github.com/hupe1980/parsort/internal/fs"
	"github.com/hupe1980/parsort/internal/mmap"
)

// RecordSize is the width of one record in bytes.
const RecordSize = 8

// Store is a record file mapped read-write into memory.
//
// Records returns a view whose writes land in the file; they are durable
// after Sync or Close.
type Store struct {
	path    string
	mapping *mmap.Mapping
	records []int64

	mu     sync.Mutex
	closed bool
}

// OpenStore maps the record file at path read-write.
func OpenStore(path string) (*Store, error) {
	return openStore(fs.Default, path)
}

func openStore(fsys fs.FileSystem, path string) (*Store, error) {
	f, err := fsys.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("parsort: open %s: %w", path, err)
	}
	// The mapping keeps the pages alive after the descriptor is closed.
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("parsort: stat %s: %w", path, err)
	}

	size := fi.Size()
	if size%RecordSize != 0 {
		return nil, fmt.Errorf("%w: %s has %d bytes", ErrMisalignedFile, path, size)
	}
	n, err := conv.Int64ToInt(size)
	if err != nil {
		return nil, fmt.Errorf("parsort: map %s: %w: %w", path, mmap.ErrInvalidSize, err)
	}

	m, err := mmap.MapFile(f, n, mmap.ModeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("parsort: map %s: %w", path, err)
	}
	// Quicksort touches pages out of order once the first split is done.
	_ = m.Advise(mmap.AccessRandom)

	return &Store{
		path:    path,
		mapping: m,
		records: bytesToRecords(m.Bytes()),
	}, nil
}

// bytesToRecords reinterprets a page-aligned mapping as native-endian int64s.
func bytesToRecords(b []byte) []int64 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&b[0])), len(b)/RecordSize) //nolint:gosec // mmap regions are page aligned
}

// Path returns the path the store was opened from.
func (s *Store) Path() string { return s.path }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Records returns the mapped records.
// The slice is valid only until Close is called.
func (s *Store) Records() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.records
}

// Bytes returns the raw mapped bytes.
// The slice is valid only until Close is called.
func (s *Store) Bytes() []byte {
	return s.mapping.Bytes()
}

// Sync flushes modified records to the file.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.mapping.Sync(); err != nil {
		return fmt.Errorf("parsort: sync %s: %w", s.path, err)
	}
	return nil
}

// Close syncs and unmaps the file. It is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.records = nil
	if err := s.mapping.Close(); err != nil {
		return fmt.Errorf("parsort: unmap %s: %w", s.path, err)
	}
	return nil
}
