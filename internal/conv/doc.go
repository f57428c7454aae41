// Package conv provides safe integer type conversion utilities.
//
// File sizes arrive as int64 from os.FileInfo while mappings and slices are
// indexed by int, which is 32 bits wide on some platforms. Conversions here
// fail instead of truncating.
package conv
