// Package mmap provides shared, writable memory mappings of record files.
//
// # Overview
//
// A Mapping exposes the whole extent of a file as a byte slice. With
// ModeReadWrite the mapping is MAP_SHARED, so stores into the slice reach
// the backing file once the pages are synced or unmapped. This is what lets
// the sorter rewrite a file in place without ever copying it through the
// Go heap.
//
// # Usage
//
//	f, _ := os.OpenFile("records.bin", os.O_RDWR, 0)
//	fi, _ := f.Stat()
//	m, err := mmap.MapFile(f, int(fi.Size()), mmap.ModeReadWrite)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//	// mutate data ...
//	_ = m.Sync()
//
// # Platform Support
//
// Unix platforms use mmap(2), msync(2) and madvise(2). Other platforms
// report ErrUnsupported from MapFile.
//
// # Thread Safety
//
// Bytes may be read and written from many goroutines as long as their
// footprints do not overlap. Close is idempotent and guarded by an atomic
// flag; callers must stop touching Bytes() before Close returns.
package mmap
