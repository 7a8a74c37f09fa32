package define

import (
	"strconv"
	"strings"
)

const (
	AirName        = "minecraft:air"
	AirNameShort   = "air"
	DefaultNS      = "minecraft"
	ProgressLayers = 16
)

// Property is one key=value pair of a block state.
type Property struct {
	Key   string
	Value string
}

// Block is a block identifier with its state properties. Properties keep
// the order in which they were parsed, keys are unique.
type Block struct {
	Name       string
	Properties []Property
}

func NewBlock(name string) Block {
	return Block{Name: name}
}

// With returns a copy of b with the property set. An existing key keeps its position.
func (b Block) With(key, value string) Block {
	props := make([]Property, len(b.Properties), len(b.Properties)+1)
	copy(props, b.Properties)
	for i := range props {
		if props[i].Key == key {
			props[i].Value = value
			return Block{Name: b.Name, Properties: props}
		}
	}
	return Block{Name: b.Name, Properties: append(props, Property{Key: key, Value: value})}
}

func (b Block) Property(key string) (string, bool) {
	for _, p := range b.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// IsEmpty reports whether b is the default block left in unused palette slots.
func (b Block) IsEmpty() bool {
	return b.Name == ""
}

func (b Block) IsAir() bool {
	return b.Name == AirName || b.Name == AirNameShort
}

// Equal compares identifier and property set, ignoring property order.
func (b Block) Equal(o Block) bool {
	if b.Name != o.Name || len(b.Properties) != len(o.Properties) {
		return false
	}
	for _, p := range b.Properties {
		v, ok := o.Property(p.Key)
		if !ok || v != p.Value {
			return false
		}
	}
	return true
}

// String renders name[k=v,...].
func (b Block) String() string {
	if len(b.Properties) == 0 {
		return b.Name
	}
	var sb strings.Builder
	sb.WriteString(b.Name)
	sb.WriteByte('[')
	for i, p := range b.Properties {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}

// PlaceResult is the outcome of placing a single cell.
type PlaceResult uint8

const (
	Placed PlaceResult = iota
	Skipped
	Failed
)

func (r PlaceResult) String() string {
	switch r {
	case Placed:
		return "placed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Dimension identifies a target world space.
type Dimension int32

const (
	Overworld Dimension = iota
	Nether
	TheEnd
)

var dimensionNames = [...]string{"overworld", "nether", "the_end"}

// Name returns the command-level name of d, false if d is not a known dimension.
func (d Dimension) Name() (string, bool) {
	if d < 0 || int(d) >= len(dimensionNames) {
		return "", false
	}
	return dimensionNames[d], true
}

// ParseDimension accepts a dimension name or its numeric id.
func ParseDimension(s string) (Dimension, bool) {
	for i, n := range dimensionNames {
		if s == n || s == strconv.Itoa(i) {
			return Dimension(i), true
		}
	}
	return 0, false
}

func (d Dimension) String() string {
	if n, ok := d.Name(); ok {
		return n
	}
	return "unknown"
}

// UpdateFlag controls how the world reacts to a block change.
type UpdateFlag uint8

const (
	UpdateNeighbors UpdateFlag = 1 << iota
	UpdateClients

	UpdateAll = UpdateNeighbors | UpdateClients
)
