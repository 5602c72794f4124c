// ABOUTME: Transparent decompression of heap descriptions
// ABOUTME: Detects gzip, zstd, and lz4 frames by their magic bytes

package heapdump

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// decompress returns a reader over the uncompressed content of r and a
// function releasing decoder resources. Uncompressed input passes through.
func decompress(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(4)
	noop := func() {}

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return zr, func() { zr.Close() }, nil

	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return zr, zr.Close, nil

	case bytes.HasPrefix(magic, lz4Magic):
		return lz4.NewReader(br), noop, nil
	}

	return br, noop, nil
}
