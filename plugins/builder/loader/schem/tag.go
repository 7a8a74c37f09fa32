package schem

import "fmt"

type TagType uint8

const (
	TagEnd TagType = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// MaxDepth bounds list/compound nesting while skipping.
const MaxDepth = 512

var tagNames = [...]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

// payload size of the fixed-width types, 0 for the others
var fixedSize = [len(tagNames)]int{
	TagByte:   1,
	TagShort:  2,
	TagInt:    4,
	TagLong:   8,
	TagFloat:  4,
	TagDouble: 8,
}

func (t TagType) Valid() bool {
	return int(t) < len(tagNames)
}

func (t TagType) String() string {
	if t.Valid() {
		return tagNames[t]
	}
	return fmt.Sprintf("TAG_Unknown(%d)", uint8(t))
}

// ReadHeader reads a tag type and, unless it is TagEnd, the tag name.
func ReadHeader(c *Cursor) (TagType, string, error) {
	b, err := c.U8()
	if err != nil {
		return 0, "", err
	}
	t := TagType(b)
	if t == TagEnd {
		return t, "", nil
	}
	if !t.Valid() {
		return t, "", fmt.Errorf("%w: unknown tag type %d at offset %d", ErrMalformedTag, b, c.Pos()-1)
	}
	name, err := c.UTF8()
	if err != nil {
		return t, "", err
	}
	return t, name, nil
}

// Skip consumes exactly one payload of type t without materialising it.
func Skip(c *Cursor, t TagType) error {
	return skip(c, t, 0)
}

func skip(c *Cursor, t TagType, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d at offset %d", ErrMalformedTag, MaxDepth, c.Pos())
	}
	switch t {
	case TagEnd:
		return nil
	case TagByte, TagShort, TagInt, TagLong, TagFloat, TagDouble:
		return c.Skip(fixedSize[t])
	case TagByteArray:
		return skipArray(c, 1)
	case TagIntArray:
		return skipArray(c, 4)
	case TagLongArray:
		return skipArray(c, 8)
	case TagString:
		_, err := c.UTF8()
		return err
	case TagList:
		return skipList(c, depth)
	case TagCompound:
		for {
			sub, _, err := ReadHeader(c)
			if err != nil {
				return err
			}
			if sub == TagEnd {
				return nil
			}
			if err := skip(c, sub, depth+1); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%w: unknown tag type %d at offset %d", ErrMalformedTag, uint8(t), c.Pos())
}

func skipArray(c *Cursor, width int) error {
	n, err := c.length32()
	if err != nil {
		return err
	}
	return c.Skip(n * width)
}

func skipList(c *Cursor, depth int) error {
	b, err := c.U8()
	if err != nil {
		return err
	}
	elem := TagType(b)
	n, err := c.I32()
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: negative list length %d at offset %d", ErrMalformedTag, n, c.Pos()-4)
	}
	if n == 0 || elem == TagEnd {
		return nil
	}
	if !elem.Valid() {
		return fmt.Errorf("%w: list of unknown tag type %d", ErrMalformedTag, b)
	}
	if size := fixedSize[elem]; size > 0 {
		return c.Skip(int(n) * size)
	}
	for i := int32(0); i < n; i++ {
		if err := skip(c, elem, depth+1); err != nil {
			return err
		}
	}
	return nil
}
