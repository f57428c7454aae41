//go:build unix

package parsort

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/parsort/internal/fs"
)

func writeRecords(t *testing.T, path string, values []int64) {
	t.Helper()
	buf := make([]byte, len(values)*RecordSize)
	for i, v := range values {
		binary.NativeEndian.PutUint64(buf[i*RecordSize:], uint64(v))
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func readRecords(t *testing.T, path string) []int64 {
	t.Helper()
	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Zero(t, len(buf)%RecordSize)
	values := make([]int64, len(buf)/RecordSize)
	for i := range values {
		values[i] = int64(binary.NativeEndian.Uint64(buf[i*RecordSize:]))
	}
	return values
}

func TestStore_SortInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	input := randomData(21, 100_000, 0)
	writeRecords(t, path, input)

	store, err := OpenStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.Equal(t, len(input), store.Len())
	assert.Equal(t, input, store.Records())

	data := store.Records()
	require.NoError(t, New().Sort(context.Background(), data, Range{End: len(data)}, 1000))
	require.NoError(t, store.Sync())
	require.NoError(t, store.Close())

	want := slices.Clone(input)
	slices.Sort(want)
	assert.Equal(t, want, readRecords(t, path))
}

func TestStore_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store, err := OpenStore(path)
	require.NoError(t, err)
	assert.Zero(t, store.Len())
	assert.Empty(t, store.Records())

	require.NoError(t, New().Sort(context.Background(), store.Records(), Range{}, 0))
	require.NoError(t, store.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestStore_Misaligned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 12), 0o644))

	_, err := OpenStore(path)
	assert.ErrorIs(t, err, ErrMisalignedFile)
}

func TestStore_Missing(t *testing.T) {
	_, err := OpenStore(filepath.Join(t.TempDir(), "missing.bin"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_InjectedFaults(t *testing.T) {
	dir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("noopen", fs.Fault{FailOnOpen: true})
	ffs.AddRule("nostat", fs.Fault{FailOnStat: true})

	for _, name := range []string{"noopen.bin", "nostat.bin"} {
		path := filepath.Join(dir, name)
		writeRecords(t, path, []int64{2, 1})

		_, err := openStore(ffs, path)
		assert.ErrorIs(t, err, fs.ErrInjected, name)
	}
}

func TestStore_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.bin")
	writeRecords(t, path, []int64{3, 2, 1})

	store, err := OpenStore(path)
	require.NoError(t, err)

	data := store.Records()
	data[0], data[2] = data[2], data[0]

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
	assert.Nil(t, store.Records())
	assert.Nil(t, store.Bytes())
	assert.ErrorIs(t, store.Sync(), ErrClosed)

	// Close syncs pending writes.
	assert.Equal(t, []int64{1, 2, 3}, readRecords(t, path))
}
