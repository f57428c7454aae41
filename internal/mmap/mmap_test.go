//go:build unix

package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap_OpenReadClose(t *testing.T) {
	content := []byte("Hello, Mmap!")
	path := filepath.Join(t.TempDir(), "mmap_test")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	m, err := Open(path, ModeReadOnly)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(content), m.Size())
	assert.Equal(t, content, m.Bytes())
	assert.False(t, m.Writable())

	// ReadAt
	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 7) // "Mmap!"
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "Mmap!", string(buf))

	// ReadAt out of bounds
	n, err = m.ReadAt(make([]byte, 10), 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	// ReadAt partial
	buf3 := make([]byte, 10)
	n, err = m.ReadAt(buf3, 7)
	assert.Equal(t, 5, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "Mmap!", string(buf3[:n]))

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)

	// Sync on a read-only mapping is a no-op.
	assert.NoError(t, m.Sync())
}

func TestMmap_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Open(path, ModeReadWrite)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Bytes())
	assert.NoError(t, m.Sync())
	assert.NoError(t, m.Close())
}

func TestMmap_ReadWritePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rw")
	require.NoError(t, os.WriteFile(path, []byte("abcdefgh"), 0o644))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	m, err := MapFile(f, 8, ModeReadWrite)
	require.NoError(t, err)
	// The mapping outlives the descriptor.
	require.NoError(t, f.Close())

	require.True(t, m.Writable())
	data := m.Bytes()
	data[0], data[7] = 'H', 'A'
	require.NoError(t, m.Sync())
	require.NoError(t, m.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "HbcdefgA", string(got))
}

func TestMmap_AfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	m, err := Open(path, ModeReadOnly)
	require.NoError(t, err)
	require.NoError(t, m.Advise(AccessRandom))
	require.NoError(t, m.Close())
	// Idempotent.
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Advise(AccessSequential), ErrClosed)
	assert.ErrorIs(t, m.Sync(), ErrClosed)
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMapFile_NegativeSize(t *testing.T) {
	_, err := MapFile(os.Stdin, -1, ModeReadOnly)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
