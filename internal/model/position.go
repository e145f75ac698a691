package model

import "fmt"

// Position is a tile coordinate in the game world.
// Value type, passed by value.
type Position struct {
	X uint16
	Y uint16
	Z uint8
}

// NewPosition creates a Position with the given coordinates.
func NewPosition(x, y uint16, z uint8) Position {
	return Position{X: x, Y: y, Z: z}
}

// InRange reports whether other lies on the same floor within rangeX/rangeY tiles.
func (p Position) InRange(other Position, rangeX, rangeY int32) bool {
	if p.Z != other.Z {
		return false
	}
	dx := int32(p.X) - int32(other.X)
	dy := int32(p.Y) - int32(other.Y)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= rangeX && dy <= rangeY
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}
