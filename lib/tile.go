package lib

import "fmt"

// TileCoord identifies a single tile of a pyramid: tile column, tile
// row and pyramid level. It is a plain value, recreated on demand
// during traversal; two coords are equal iff all three fields match.
type TileCoord struct {
	X, Y, Level int
}

// Key packs the coordinate into a single integer usable as a map or
// cache key. 8 bits of level and 28 bits per axis cover any realistic
// pyramid (levels beyond 2^28 pixels don't fit in memory anyway).
func (t TileCoord) Key() uint64 {
	return uint64(t.Level)<<56 | uint64(t.Y)<<28 | uint64(t.X)
}

// Less orders coords by level, then row, then column.
func (t TileCoord) Less(o TileCoord) bool {
	return t.Key() < o.Key()
}

func (t TileCoord) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Level, t.X, t.Y)
}
