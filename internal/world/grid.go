package world

import "github.com/udisondev/condengine/internal/model"

// Grid constants. The map is split into square regions so that spectator
// lookups only visit regions overlapping the view window.
const (
	// ShiftBy - shift by N bits for 2^N tiles per region side (2^3 = 8)
	ShiftBy = 3

	// RegionSize in tiles
	RegionSize = 1 << ShiftBy

	// Client view window around a position (tiles)
	ViewRangeX = 8
	ViewRangeY = 6
)

// regionKey identifies a region on one floor.
type regionKey struct {
	rx, ry uint16
	z      uint8
}

// CoordToRegionIndex converts tile coordinates to region index.
func CoordToRegionIndex(x, y uint16) (rx, ry uint16) {
	return x >> ShiftBy, y >> ShiftBy
}

func keyOf(pos model.Position) regionKey {
	rx, ry := CoordToRegionIndex(pos.X, pos.Y)
	return regionKey{rx: rx, ry: ry, z: pos.Z}
}

// viewKeys returns the keys of all regions overlapping the view window
// centered on pos, same floor only.
func viewKeys(pos model.Position) []regionKey {
	minX := clampSub(pos.X, ViewRangeX)
	minY := clampSub(pos.Y, ViewRangeY)
	maxX := clampAdd(pos.X, ViewRangeX)
	maxY := clampAdd(pos.Y, ViewRangeY)

	rx0, ry0 := CoordToRegionIndex(minX, minY)
	rx1, ry1 := CoordToRegionIndex(maxX, maxY)

	keys := make([]regionKey, 0, int(rx1-rx0+1)*int(ry1-ry0+1))
	for rx := rx0; rx <= rx1; rx++ {
		for ry := ry0; ry <= ry1; ry++ {
			keys = append(keys, regionKey{rx: rx, ry: ry, z: pos.Z})
		}
	}
	return keys
}

func clampSub(v, d uint16) uint16 {
	if v < d {
		return 0
	}
	return v - d
}

func clampAdd(v, d uint16) uint16 {
	if v > 0xFFFF-d {
		return 0xFFFF
	}
	return v + d
}
