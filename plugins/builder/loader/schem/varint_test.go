package schem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 255, 300, 16383, 16384, 2097151, 2097152, 1<<28 + 5, 1<<31 - 1}
	var data []byte
	for _, v := range values {
		data = appendVarint(data, v)
	}
	got := DecodeVarints(data, len(values))
	want := make([]int32, len(values))
	for i, v := range values {
		want[i] = int32(v)
	}
	assert.Equal(t, want, got)
}

func TestVarintEncodedWidths(t *testing.T) {
	assert.Equal(t, []byte{0x7f}, appendVarint(nil, 127))
	assert.Equal(t, []byte{0x80, 0x01}, appendVarint(nil, 128))
	assert.Equal(t, []byte{0x80, 0x80, 0x01}, appendVarint(nil, 16384))
}

func TestVarintStopsAtLimit(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	assert.Equal(t, []int32{1, 2}, DecodeVarints(data, 2))
	assert.Nil(t, DecodeVarints(data, 0))
}

func TestVarintShortStream(t *testing.T) {
	// the trailing 0x81 never terminates and is kept as 1
	data := []byte{5, 0x80, 0x01, 0x81}
	assert.Equal(t, []int32{5, 128, 1}, DecodeVarints(data, 10))
	assert.Equal(t, []int32{0, 1}, DecodeVarints([]byte{0x00, 0x81}, 2))
	assert.Equal(t, []int32{300}, DecodeVarints([]byte{0xac, 0x82}, 5))
	// the limit still wins over a dangling value
	assert.Equal(t, []int32{5}, DecodeVarints([]byte{5, 0x81}, 1))
	assert.Empty(t, DecodeVarints(nil, 10))
}
