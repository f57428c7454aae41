package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/parsort/internal/fs"
	"github.com/hupe1980/parsort/internal/resource"
)

// Codec identifies the compression format of a backup.
type Codec uint8

const (
	// CodecZSTD compresses with zstd (better ratio).
	CodecZSTD Codec = iota + 1
	// CodecLZ4 compresses with lz4 frames (faster).
	CodecLZ4
)

func (c Codec) String() string {
	switch c {
	case CodecZSTD:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// ErrUnknownCodec is returned for an unsupported codec or file extension.
var ErrUnknownCodec = errors.New("backup: unknown codec")

// chunkSize bounds each write into the encoder so rate limiting stays smooth.
const chunkSize = 1 << 20

// CodecFromPath picks the codec from the extension of path.
func CodecFromPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CodecZSTD, nil
	case ".lz4":
		return CodecLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCodec, path)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func newEncoder(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case CodecZSTD:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
}

func newDecoder(r io.Reader, codec Codec) (io.Reader, func(), error) {
	switch codec {
	case CodecZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case CodecLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
}

// Write compresses src into w and returns the number of compressed bytes.
// Output is throttled by rc's IO limit; rc may be nil.
func Write(ctx context.Context, w io.Writer, src []byte, codec Codec, rc *resource.Controller) (int64, error) {
	cw := &countingWriter{w: w}
	enc, err := newEncoder(resource.NewRateLimitedWriter(ctx, cw, rc), codec)
	if err != nil {
		return 0, err
	}

	for off := 0; off < len(src); off += chunkSize {
		if err := ctx.Err(); err != nil {
			enc.Close()
			return cw.n, err
		}
		end := min(off+chunkSize, len(src))
		if _, err := enc.Write(src[off:end]); err != nil {
			enc.Close()
			return cw.n, err
		}
	}

	if err := enc.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Restore decompresses r into w and returns the number of raw bytes.
// Input is throttled by rc's IO limit; rc may be nil.
func Restore(ctx context.Context, w io.Writer, r io.Reader, codec Codec, rc *resource.Controller) (int64, error) {
	dec, release, err := newDecoder(resource.NewRateLimitedReader(ctx, r, rc), codec)
	if err != nil {
		return 0, err
	}
	defer release()

	return io.Copy(w, dec)
}

// WriteFile writes a compressed copy of src to path.
// The copy is written to a temporary file, synced, and renamed into place,
// so path never holds a truncated backup.
func WriteFile(ctx context.Context, fsys fs.FileSystem, path string, src []byte, rc *resource.Controller) (int64, error) {
	codec, err := CodecFromPath(path)
	if err != nil {
		return 0, err
	}

	tmp := path + ".tmp"
	f, err := fsys.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("backup: create %s: %w", tmp, err)
	}

	n, err := Write(ctx, f, src, codec, rc)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_ = fsys.Remove(tmp)
		return n, fmt.Errorf("backup: write %s: %w", path, err)
	}

	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return n, fmt.Errorf("backup: rename %s: %w", path, err)
	}
	return n, nil
}

// RestoreFile overwrites dst with the contents of the backup at path.
func RestoreFile(ctx context.Context, fsys fs.FileSystem, path, dst string, rc *resource.Controller) (int64, error) {
	codec, err := CodecFromPath(path)
	if err != nil {
		return 0, err
	}

	in, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("backup: open %s: %w", path, err)
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("backup: create %s: %w", dst, err)
	}

	n, err := Restore(ctx, out, in, codec, rc)
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("backup: restore %s: %w", dst, err)
	}
	return n, nil
}
