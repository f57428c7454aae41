//go:build !unix

package mmap

func osMap(int, int, Mode) ([]byte, func([]byte) error, error) {
	return nil, nil, ErrUnsupported
}

func osSync([]byte) error { return ErrUnsupported }

func osAdvise([]byte, AccessPattern) error { return nil }
