// Package input opens dump reports, decompressing gzip and zstd streams
// transparently.
package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// StdinName is the path that selects standard input.
const StdinName = "-"

// ErrStdinReused is returned when standard input is requested twice.
var ErrStdinReused = errors.New("standard input can only be read once")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Opener opens dump reports by path. The zero value reads standard input
// from os.Stdin.
type Opener struct {
	Stdin     io.Reader
	stdinUsed bool
}

// Open returns a reader over the decompressed dump text.
func (o *Opener) Open(path string) (io.ReadCloser, error) {
	if path == StdinName {
		if o.stdinUsed {
			return nil, ErrStdinReused
		}
		o.stdinUsed = true
		stdin := o.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return Decode(io.NopCloser(stdin))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return Decode(f)
}

// Decode sniffs the stream's magic bytes and wraps it in a decompressor
// when needed. Closing the result closes rc.
func Decode(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		rc.Close()
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return &readCloser{Reader: zr, close: func() error {
			return errors.Join(zr.Close(), rc.Close())
		}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return &readCloser{Reader: zr, close: func() error {
			zr.Close()
			return rc.Close()
		}}, nil
	default:
		return &readCloser{Reader: br, close: rc.Close}, nil
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}
