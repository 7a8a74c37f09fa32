package schem

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

const inflateChunk = 8 << 10

// IsGzip reports whether data starts with the gzip magic 0x1F 0x8B.
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// Inflate expands a gzip stream in 8 KiB steps. Input without the gzip magic is
// returned unchanged; input shorter than the magic is truncated.
func Inflate(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: %d bytes, no room for a header", ErrTruncatedInput, len(data))
	}
	if !IsGzip(data) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompression, err)
	}
	defer zr.Close()
	out := bytes.NewBuffer(make([]byte, 0, len(data)*4))
	chunk := make([]byte, inflateChunk)
	for {
		n, err := zr.Read(chunk)
		out.Write(chunk[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecompression, err)
		}
	}
	return out.Bytes(), nil
}

// Decompress is Inflate with every failure collapsed into an empty result.
func Decompress(data []byte) []byte {
	out, err := Inflate(data)
	if err != nil {
		return nil
	}
	return out
}
