package define

// Schematic is a decoded block volume. It is built once by the loader and is
// read-only afterwards.
type Schematic struct {
	width, height, length int
	offset                Pos
	palette               []Block
	indices               []int32
	incomplete            bool
}

// NewSchematic assembles a volume. Negative dimensions are clamped to zero;
// the loader rejects them before getting here.
func NewSchematic(width, height, length int, offset Pos, palette []Block, indices []int32) *Schematic {
	return &Schematic{
		width:   max(width, 0),
		height:  max(height, 0),
		length:  max(length, 0),
		offset:  offset,
		palette: palette,
		indices: indices,
	}
}

// MarkIncomplete flags a volume assembled without a usable palette or block data.
func (s *Schematic) MarkIncomplete() *Schematic {
	s.incomplete = true
	return s
}

func (s *Schematic) Incomplete() bool {
	return s.incomplete
}

func (s *Schematic) Width() int  { return s.width }
func (s *Schematic) Height() int { return s.height }
func (s *Schematic) Length() int { return s.length }
func (s *Schematic) Offset() Pos { return s.offset }

// Volume is width*height*length.
func (s *Schematic) Volume() int {
	return s.width * s.height * s.length
}

// PaletteSize is the length of the dense palette, gaps included.
func (s *Schematic) PaletteSize() int {
	return len(s.palette)
}

// PaletteEntry returns the palette slot idx. Gap slots hold an empty Block.
func (s *Schematic) PaletteEntry(idx int) (Block, bool) {
	if idx < 0 || idx >= len(s.palette) {
		return Block{}, false
	}
	return s.palette[idx], true
}

// DecodedCells is the number of indices actually read from the block data.
func (s *Schematic) DecodedCells() int {
	return len(s.indices)
}

// Index returns the flat index y*w*l + z*w + x, false when the coordinate lies outside the volume.
func (s *Schematic) Index(x, y, z int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height || z < 0 || z >= s.length {
		return 0, false
	}
	return y*s.width*s.length + z*s.width + x, true
}

// Block returns the block at a local coordinate. Coordinates outside the
// volume, cells past the decoded data, palette references out of range and
// empty palette slots all report no block.
func (s *Schematic) Block(x, y, z int) (Block, bool) {
	i, ok := s.Index(x, y, z)
	if !ok || i >= len(s.indices) {
		return Block{}, false
	}
	b, ok := s.PaletteEntry(int(s.indices[i]))
	if !ok || b.IsEmpty() {
		return Block{}, false
	}
	return b, true
}
