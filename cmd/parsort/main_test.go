//go:build unix

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/parsort/internal/backup"
	"github.com/hupe1980/parsort/internal/fs"
)

func writeRecords(t *testing.T, path string, values []int64) {
	t.Helper()
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.NativeEndian.PutUint64(buf[i*8:], uint64(v))
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func decodeRecords(t *testing.T, buf []byte) []int64 {
	t.Helper()
	require.Zero(t, len(buf)%8)
	values := make([]int64, len(buf)/8)
	for i := range values {
		values[i] = int64(binary.NativeEndian.Uint64(buf[i*8:]))
	}
	return values
}

func readRecords(t *testing.T, path string) []int64 {
	t.Helper()
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	return decodeRecords(t, buf)
}

func TestRun_Usage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	writeRecords(t, path, []int64{2, 1})

	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"one arg", []string{path}},
		{"three args", []string{path, "1", "2"}},
		{"negative threshold", []string{path, "-1"}},
		{"non-numeric threshold", []string{path, "abc"}},
		{"hex threshold", []string{path, "0x10"}},
		{"unknown flag", []string{"-nope", path, "1"}},
		{"bad log level", []string{"-log-level", "loud", path, "1"}},
		{"bad log format", []string{"-log-format", "xml", path, "1"}},
		{"bad backup suffix", []string{"-backup", path + ".gz", path, "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stderr)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), usage)
		})
	}

	// Nothing was touched.
	assert.Equal(t, []int64{2, 1}, readRecords(t, path))
}

func TestRun_Sorts(t *testing.T) {
	tests := []struct {
		name      string
		in        []int64
		threshold string
		want      []int64
	}{
		{"mixed", []int64{5, 3, 3, 1, 4}, "2", []int64{1, 3, 3, 4, 5}},
		{"sequential", []int64{2, 1}, "100", []int64{1, 2}},
		{"empty", nil, "0", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "records.bin")
			writeRecords(t, path, tt.in)

			var stderr bytes.Buffer
			code := run(context.Background(), []string{"-verify", path, tt.threshold}, &stderr)
			require.Equal(t, 0, code, stderr.String())
			assert.Equal(t, tt.want, readRecords(t, path))
		})
	}
}

func TestRun_Large(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	input := make([]int64, 200_000)
	for i := range input {
		// Deterministic scramble with plenty of duplicates.
		input[i] = int64((uint64(i)*0x9e3779b97f4a7c15)>>40) % 5000
	}
	writeRecords(t, path, input)

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-verify", "-log-level", "debug", path, "1024"}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	want := slices.Clone(input)
	slices.Sort(want)
	assert.Equal(t, want, readRecords(t, path))
	assert.Contains(t, stderr.String(), "sort completed")
	assert.Contains(t, stderr.String(), "verify passed")
}

func TestRun_DispatchFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	input := make([]int64, 4096)
	for i := range input {
		input[i] = int64(len(input) - i)
	}
	writeRecords(t, path, input)

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-max-tasks", "1", path, "0"}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: sorting failed")
}

func TestRun_Backup(t *testing.T) {
	for _, ext := range []string{".zst", ".lz4"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "records.bin")
			backupPath := filepath.Join(dir, "records"+ext)
			input := []int64{9, -3, 7, 7, 0, 12, -40}
			writeRecords(t, path, input)

			var stderr bytes.Buffer
			code := run(context.Background(), []string{"-backup", backupPath, "-log-format", "json", "-log-level", "info", path, "2"}, &stderr)
			require.Equal(t, 0, code, stderr.String())
			assert.Contains(t, stderr.String(), `"msg":"backup written"`)

			restored := filepath.Join(dir, "restored.bin")
			_, err := backup.RestoreFile(context.Background(), fs.Default, backupPath, restored, nil)
			require.NoError(t, err)

			// The backup holds the unsorted input.
			assert.Equal(t, input, readRecords(t, restored))
			assert.Equal(t, []int64{-40, -3, 0, 7, 7, 9, 12}, readRecords(t, path))
		})
	}
}

func TestRun_BadFiles(t *testing.T) {
	dir := t.TempDir()
	misaligned := filepath.Join(dir, "odd.bin")
	require.NoError(t, os.WriteFile(misaligned, make([]byte, 13), 0o644))

	for _, path := range []string{filepath.Join(dir, "missing.bin"), misaligned} {
		var stderr bytes.Buffer
		code := run(context.Background(), []string{path, "4"}, &stderr)
		assert.Equal(t, 1, code, path)
		assert.Contains(t, stderr.String(), "Error:", path)
	}
}
