// Package parsort sorts files of fixed-width int64 records in place.
//
// The file is memory-mapped read-write and sorted by a parallel quicksort:
// ranges longer than a threshold are partitioned around their middle
// element and the two halves are sorted by concurrent tasks; shorter ranges
// are sorted sequentially. Because the two halves of a split never overlap,
// every task writes straight into the shared mapping without locks.
//
// # Quick Start
//
//	ctx := context.Background()
//	store, err := parsort.OpenStore("records.bin")
//	if err != nil { ... }
//	defer store.Close()
//
//	engine := parsort.New(parsort.WithMaxTasks(256))
//	data := store.Records()
//	if err := engine.Sort(ctx, data, parsort.Range{End: len(data)}, 1024); err != nil { ... }
//
// # Threshold
//
// A threshold of 0 splits every range of two or more records; a threshold
// of at least len(data) sorts everything on the calling goroutine. Both
// produce identical output.
//
// # Failures
//
// The only failure a sort can report is ErrDispatch: a task could not be
// started, either because the task limit was reached or because the
// context was cancelled. The failure surfaces from the top-level Sort after
// every task that did start has been joined. The file is not restored; a
// failed sort leaves it partially partitioned.
//
// # Record Format
//
// One int64 per 8 bytes in native byte order, no header. A file whose size
// is not a multiple of 8 is rejected by OpenStore with ErrMisalignedFile.
package parsort
