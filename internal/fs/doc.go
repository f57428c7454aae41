// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/sync capabilities and a descriptor
//     that can be handed to mmap
//   - [FileSystem]: the handful of filesystem operations the record tools need
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate I/O errors)
//
// # Usage
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR, 0)
//
// Tests can inject [FaultyFS] to make opening, stat'ing or writing a
// particular file fail:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("records.bin", fs.Fault{FailOnStat: true})
//
// # Design Notes
//
// This package intentionally does NOT include context.Context parameters.
// Local filesystem calls are non-interruptible at the syscall level.
package fs
