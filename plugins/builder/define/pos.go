package define

import "fmt"

// PE is a single coordinate element.
type PE int32

// Pos holds the position of a block as an x, y and z value.
type Pos [3]PE

// X returns the X coordinate of the block position.
func (p Pos) X() PE {
	return p[0]
}

// Y returns the Y coordinate of the block position.
func (p Pos) Y() PE {
	return p[1]
}

// Z returns the Z coordinate of the block position.
func (p Pos) Z() PE {
	return p[2]
}

// Add adds two block positions together and returns a new one with the combined values.
func (p Pos) Add(pos Pos) Pos {
	return Pos{p[0] + pos[0], p[1] + pos[1], p[2] + pos[2]}
}

// Subtract subtracts two block positions together and returns a new one with the combined values.
func (p Pos) Subtract(pos Pos) Pos {
	return Pos{p[0] - pos[0], p[1] - pos[1], p[2] - pos[2]}
}

func (p Pos) String() string {
	return fmt.Sprintf("%d %d %d", p[0], p[1], p[2])
}
