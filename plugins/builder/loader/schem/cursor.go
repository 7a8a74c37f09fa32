package schem

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Cursor reads big-endian primitives from a byte slice, failing with
// ErrTruncatedInput instead of returning partial values.
type Cursor struct {
	data []byte
	pos  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos is the number of bytes consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining is the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("%w: want %d bytes at offset %d, %d left", ErrTruncatedInput, n, c.pos, c.Remaining())
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) Skip(n int) error {
	_, err := c.next(n)
	return err
}

func (c *Cursor) U8() (uint8, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) I16() (int16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (c *Cursor) I32() (int32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (c *Cursor) I64() (int64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (c *Cursor) F32() (float32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (c *Cursor) F64() (float64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// length32 reads a declared element count. Negative counts are truncated input.
func (c *Cursor) length32() (int, error) {
	n, err := c.I32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative length %d at offset %d", ErrTruncatedInput, n, c.pos-4)
	}
	return int(n), nil
}

// Bytes reads an i32 length followed by that many bytes. The result aliases
// the cursor's buffer.
func (c *Cursor) Bytes() ([]byte, error) {
	n, err := c.length32()
	if err != nil {
		return nil, err
	}
	return c.next(n)
}

// UTF8 reads an i16 length followed by that many bytes of string data.
func (c *Cursor) UTF8() (string, error) {
	n, err := c.I16()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: negative string length %d at offset %d", ErrTruncatedInput, n, c.pos-2)
	}
	b, err := c.next(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Int32s reads an i32 count followed by that many big-endian i32 values.
func (c *Cursor) Int32s() ([]int32, error) {
	n, err := c.length32()
	if err != nil {
		return nil, err
	}
	b, err := c.next(n * 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(b[i*4:]))
	}
	return out, nil
}
