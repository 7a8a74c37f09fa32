package builder

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
	"github.com/VincentZyu233/woodenaxe/plugins/builder/loader/schem"
	"github.com/VincentZyu233/woodenaxe/plugins/builder/worker"
	world "github.com/VincentZyu233/woodenaxe/world/define"
)

func testRegistry() *world.Registry {
	return world.NewRegistry([]string{"stone", "log", "planks", "wool", "glass"})
}

func newTestPlacer() (*Placer, *worker.DebugWorker) {
	w := &worker.DebugWorker{}
	return NewPlacer(w, testRegistry()), w
}

// oneBlockStream is the smallest schematic holding a single oak log.
func oneBlockStream() []byte {
	b := &bytes.Buffer{}
	str := func(s string) {
		_ = binary.Write(b, binary.BigEndian, int16(len(s)))
		b.WriteString(s)
	}
	short := func(name string, v int16) {
		b.WriteByte(byte(schem.TagShort))
		str(name)
		_ = binary.Write(b, binary.BigEndian, v)
	}
	b.WriteByte(byte(schem.TagCompound))
	str("Schematic")
	short("Width", 1)
	short("Height", 1)
	short("Length", 1)
	b.WriteByte(byte(schem.TagCompound))
	str("Palette")
	b.WriteByte(byte(schem.TagInt))
	str("minecraft:oak_log[axis=y]")
	_ = binary.Write(b, binary.BigEndian, int32(0))
	b.WriteByte(byte(schem.TagEnd))
	b.WriteByte(byte(schem.TagByteArray))
	str("BlockData")
	_ = binary.Write(b, binary.BigEndian, int32(1))
	b.WriteByte(0)
	b.WriteByte(byte(schem.TagEnd))
	return b.Bytes()
}

func TestPlaceSingleBlockEndToEnd(t *testing.T) {
	s, err := schem.Decode(oneBlockStream())
	require.NoError(t, err)
	blk, ok := s.Block(0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "minecraft:oak_log", blk.Name)

	p, w := newTestPlacer()
	sum, err := p.Place(s, define.Pos{10, 64, -3}, define.Overworld)
	require.NoError(t, err)
	assert.Equal(t, PlaceSummary{Placed: 1}, sum)
	require.Len(t, w.Ops, 1)
	assert.Equal(t, define.Pos{10, 64, -3}, w.Ops[0].Pos)
	assert.Equal(t, "minecraft:log", w.Ops[0].Block.Name)
	assert.Equal(t, define.Overworld, w.Ops[0].Dim)
	assert.Equal(t, define.UpdateAll, w.Ops[0].Flags)
}

func TestPlaceCountsEveryCell(t *testing.T) {
	palette := []define.Block{
		define.NewBlock("minecraft:stone"),
		define.NewBlock("minecraft:air"),
		{}, // gap
		define.NewBlock("minecraft:diamond_block"),
		define.NewBlock("air"),
		define.NewBlock("minecraft:white_wool"),
	}
	// 3x2x2 with a short index array: the last two cells have no block
	indices := []int32{0, 1, 2, 3, 4, 5, 0, 9, -1, 5}
	s := define.NewSchematic(3, 2, 2, define.Pos{}, palette, indices)

	p, w := newTestPlacer()
	sum, err := p.Place(s, define.Pos{}, define.Nether)
	require.NoError(t, err)
	assert.Equal(t, s.Volume(), sum.Total())
	assert.Equal(t, PlaceSummary{Placed: 4, Skipped: 7, Failed: 1, Unresolved: 1}, sum)
	assert.Len(t, w.Ops, 4)
	for _, op := range w.Ops {
		assert.Equal(t, define.Nether, op.Dim)
	}
}

func TestPlaceOrderAndOffset(t *testing.T) {
	stone := define.NewBlock("minecraft:stone")
	indices := make([]int32, 2*2*2)
	s := define.NewSchematic(2, 2, 2, define.Pos{-1, 0, 5}, []define.Block{stone}, indices)

	p, w := newTestPlacer()
	sum, err := p.Place(s, define.Pos{100, 60, 100}, define.Overworld)
	require.NoError(t, err)
	assert.Equal(t, 8, sum.Placed)

	want := []define.Pos{
		{99, 60, 105}, {100, 60, 105}, {99, 60, 106}, {100, 60, 106},
		{99, 61, 105}, {100, 61, 105}, {99, 61, 106}, {100, 61, 106},
	}
	got := make([]define.Pos, 0, len(w.Ops))
	for _, op := range w.Ops {
		got = append(got, op.Pos)
	}
	assert.Equal(t, want, got)
}

func TestPlaceContinuesPastRejectedCells(t *testing.T) {
	stone := define.NewBlock("minecraft:stone")
	s := define.NewSchematic(3, 1, 1, define.Pos{}, []define.Block{stone}, []int32{0, 0, 0})

	p, w := newTestPlacer()
	w.Reject = map[define.Pos]bool{{1, 0, 0}: true}
	sum, err := p.Place(s, define.Pos{}, define.Overworld)
	require.NoError(t, err)
	assert.Equal(t, PlaceSummary{Placed: 2, Failed: 1}, sum)
	assert.Equal(t, int64(3), w.OpCounter.Load())
}

func TestPlaceUnknownDimension(t *testing.T) {
	s := define.NewSchematic(1, 1, 1, define.Pos{}, []define.Block{define.NewBlock("minecraft:stone")}, []int32{0})
	p, w := newTestPlacer()
	_, err := p.Place(s, define.Pos{}, define.Dimension(3))
	require.ErrorIs(t, err, ErrUnknownDimension)
	assert.Zero(t, w.OpCounter.Load())
}

func TestPlaceEmptySchematic(t *testing.T) {
	s := define.NewSchematic(4, 4, 4, define.Pos{}, nil, nil)
	p, w := newTestPlacer()
	sum, err := p.Place(s, define.Pos{}, define.Overworld)
	require.NoError(t, err)
	assert.Equal(t, PlaceSummary{Skipped: 64}, sum)
	assert.Empty(t, w.Ops)
}

func TestPlaceProgress(t *testing.T) {
	stone := define.NewBlock("minecraft:stone")
	s := define.NewSchematic(1, 40, 1, define.Pos{}, []define.Block{stone}, make([]int32, 40))

	p, _ := newTestPlacer()
	var got []Progress
	p.OnProgress = func(pr Progress) { got = append(got, pr) }
	_, err := p.Place(s, define.Pos{}, define.Overworld)
	require.NoError(t, err)
	assert.Equal(t, []Progress{
		{Layer: 16, Layers: 40, Placed: 16},
		{Layer: 32, Layers: 40, Placed: 32},
		{Layer: 40, Layers: 40, Placed: 40},
	}, got)

	got = nil
	p.ProgressEvery = 25
	_, err = p.Place(s, define.Pos{}, define.Overworld)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 25, got[0].Layer)
	assert.Equal(t, 40, got[1].Layer)
}

func TestPlaceCell(t *testing.T) {
	p, w := newTestPlacer()
	pos := define.Pos{1, 2, 3}

	r, err := p.PlaceCell(define.Block{}, false, define.Overworld, pos)
	assert.Equal(t, define.Skipped, r)
	assert.NoError(t, err)

	r, _ = p.PlaceCell(define.NewBlock("minecraft:air"), true, define.Overworld, pos)
	assert.Equal(t, define.Skipped, r)

	r, err = p.PlaceCell(define.NewBlock("minecraft:beacon"), true, define.Overworld, pos)
	assert.Equal(t, define.Failed, r)
	assert.ErrorIs(t, err, worker.ErrUnresolvedBlockType)

	r, err = p.PlaceCell(define.NewBlock("minecraft:spruce_planks").With("x", "1"), true, define.Overworld, pos)
	require.NoError(t, err)
	assert.Equal(t, define.Placed, r)
	assert.Equal(t, "minecraft:planks", w.Ops[0].Block.Name)
}
