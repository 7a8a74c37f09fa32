package schem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
)

// maxPaletteIndex bounds the dense palette allocation. A palette naming a
// larger index is rejected as malformed.
const maxPaletteIndex = 1 << 20

type decoder struct {
	c                     *Cursor
	width, height, length int
	offset                define.Pos
	palette               map[string]int32
	blockData             []byte
}

// Load reads a schematic file, gzip-wrapped or not.
func Load(path string) (*define.Schematic, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %v is empty", ErrIO, filepath.Base(path))
	}
	data, err := Inflate(raw)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filepath.Base(path), err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Check returns ErrMissingRequiredFields for a volume decoded without palette or block data.
func Check(s *define.Schematic) error {
	if s.Incomplete() {
		return ErrMissingRequiredFields
	}
	return nil
}

// Decode parses an uncompressed Sponge schematic tag stream.
func Decode(data []byte) (*define.Schematic, error) {
	d := &decoder{c: NewCursor(data)}
	b, err := d.c.U8()
	if err != nil {
		return nil, err
	}
	if TagType(b) != TagCompound {
		return nil, fmt.Errorf("%w: root is %v, want %v", ErrMalformedTag, TagType(b), TagCompound)
	}
	if _, err := d.c.UTF8(); err != nil {
		return nil, err
	}
	if err := d.root(); err != nil {
		return nil, err
	}
	return d.assemble(), nil
}

func (d *decoder) root() error {
	for {
		t, name, err := ReadHeader(d.c)
		if err != nil {
			return err
		}
		if t == TagEnd {
			return nil
		}
		switch {
		case name == "Width" && t == TagShort:
			d.width, err = d.dimension()
		case name == "Height" && t == TagShort:
			d.height, err = d.dimension()
		case name == "Length" && t == TagShort:
			d.length, err = d.dimension()
		case name == "Palette" && t == TagCompound:
			err = d.readPalette()
		case name == "BlockData" && t == TagByteArray:
			d.blockData, err = d.c.Bytes()
		case name == "Metadata" && t == TagCompound:
			err = d.readMetadata()
		case name == "Offset" && t == TagIntArray:
			err = d.readOffset()
		default:
			err = Skip(d.c, t)
		}
		if err != nil {
			return fmt.Errorf("%v: %w", name, err)
		}
	}
}

func (d *decoder) dimension() (int, error) {
	v, err := d.c.I16()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w (%d)", ErrNegativeDimension, v)
	}
	return int(v), nil
}

func (d *decoder) readPalette() error {
	for {
		t, state, err := ReadHeader(d.c)
		if err != nil {
			return err
		}
		if t == TagEnd {
			return nil
		}
		if t != TagInt {
			if err := Skip(d.c, t); err != nil {
				return err
			}
			continue
		}
		idx, err := d.c.I32()
		if err != nil {
			return err
		}
		if idx < 0 || idx >= maxPaletteIndex {
			return fmt.Errorf("%w: palette index %d for %q", ErrMalformedTag, idx, state)
		}
		if d.palette == nil {
			d.palette = make(map[string]int32)
		}
		// a repeated state keeps its last index
		d.palette[state] = idx
	}
}

func (d *decoder) readMetadata() error {
	for {
		t, name, err := ReadHeader(d.c)
		if err != nil {
			return err
		}
		if t == TagEnd {
			return nil
		}
		axis := -1
		if t == TagInt {
			switch name {
			case "WEOffsetX":
				axis = 0
			case "WEOffsetY":
				axis = 1
			case "WEOffsetZ":
				axis = 2
			}
		}
		if axis < 0 {
			if err := Skip(d.c, t); err != nil {
				return err
			}
			continue
		}
		v, err := d.c.I32()
		if err != nil {
			return err
		}
		d.offset[axis] = define.PE(v)
	}
}

func (d *decoder) readOffset() error {
	v, err := d.c.Int32s()
	if err != nil {
		return err
	}
	if len(v) >= 3 {
		d.offset = define.Pos{define.PE(v[0]), define.PE(v[1]), define.PE(v[2])}
	}
	return nil
}

func (d *decoder) assemble() *define.Schematic {
	var indices []int32
	complete := len(d.blockData) > 0 && len(d.palette) > 0
	if complete {
		indices = DecodeVarints(d.blockData, d.width*d.height*d.length)
	}
	s := define.NewSchematic(d.width, d.height, d.length, d.offset, d.buildPalette(), indices)
	if !complete {
		s.MarkIncomplete()
	}
	return s
}

// buildPalette sizes the palette to max(index)+1. Slots no entry names stay
// empty; when two states share an index the one sorting last wins.
func (d *decoder) buildPalette() []define.Block {
	if len(d.palette) == 0 {
		return nil
	}
	states := make([]string, 0, len(d.palette))
	var top int32
	for state, idx := range d.palette {
		states = append(states, state)
		top = max(top, idx)
	}
	sort.Strings(states)
	palette := make([]define.Block, top+1)
	for _, state := range states {
		palette[d.palette[state]] = ParseBlockState(state)
	}
	return palette
}
