package schem

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// tagWriter builds big-endian tag streams for fixtures.
type tagWriter struct {
	bytes.Buffer
}

func (w *tagWriter) put(v any) *tagWriter {
	_ = binary.Write(&w.Buffer, binary.BigEndian, v)
	return w
}

func (w *tagWriter) str(s string) *tagWriter {
	w.put(int16(len(s)))
	w.WriteString(s)
	return w
}

func (w *tagWriter) header(t TagType, name string) *tagWriter {
	w.WriteByte(byte(t))
	return w.str(name)
}

func (w *tagWriter) compound(name string) *tagWriter {
	return w.header(TagCompound, name)
}

func (w *tagWriter) end() *tagWriter {
	w.WriteByte(byte(TagEnd))
	return w
}

func (w *tagWriter) short(name string, v int16) *tagWriter {
	return w.header(TagShort, name).put(v)
}

func (w *tagWriter) int(name string, v int32) *tagWriter {
	return w.header(TagInt, name).put(v)
}

func (w *tagWriter) byteArray(name string, b []byte) *tagWriter {
	w.header(TagByteArray, name).put(int32(len(b)))
	w.Write(b)
	return w
}

func (w *tagWriter) intArray(name string, v ...int32) *tagWriter {
	w.header(TagIntArray, name).put(int32(len(v)))
	for _, x := range v {
		w.put(x)
	}
	return w
}

func (w *tagWriter) string(name, v string) *tagWriter {
	return w.header(TagString, name).str(v)
}

func appendVarint(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// schematicFixture is a w*h*l volume whose palette is the given states in
// order and whose cells are the given indices.
func schematicFixture(w, h, l int16, states []string, cells []uint32) []byte {
	tw := &tagWriter{}
	tw.compound("Schematic").
		int("Version", 2).
		short("Width", w).
		short("Height", h).
		short("Length", l).
		int("PaletteMax", int32(len(states)))
	tw.compound("Palette")
	for i, s := range states {
		tw.int(s, int32(i))
	}
	tw.end()
	var data []byte
	for _, c := range cells {
		data = appendVarint(data, c)
	}
	tw.byteArray("BlockData", data)
	tw.end()
	return tw.Bytes()
}
