// Package backup writes and restores compressed copies of record files.
//
// Sorting rewrites a file in place and a failed sort leaves it partially
// partitioned, so the CLI can take a compressed copy first. The copy is a
// plain zstd or lz4 frame stream of the raw bytes; the codec is chosen from
// the file extension.
package backup
