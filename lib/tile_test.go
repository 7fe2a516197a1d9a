package lib

import "testing"

func TestTileKeyIsUnique(t *testing.T) {
	coords := []TileCoord{
		{X: 0, Y: 0, Level: 0},
		{X: 1, Y: 0, Level: 0},
		{X: 0, Y: 1, Level: 0},
		{X: 0, Y: 0, Level: 1},
		{X: 1, Y: 1, Level: 1},
		{X: 123456, Y: 654321, Level: 7},
	}
	keys := make(map[uint64]TileCoord)
	for _, coord := range coords {
		if other, ok := keys[coord.Key()]; ok {
			t.Errorf("Coords %v and %v have the same key", coord, other)
		}
		keys[coord.Key()] = coord
	}
}

func TestTileKeyIsStable(t *testing.T) {
	coord := TileCoord{X: 3, Y: 5, Level: 2}
	if coord.Key() != coord.Key() {
		t.Errorf("Key of %v is not stable", coord)
	}
}

func TestTileOrdering(t *testing.T) {
	ordered := []TileCoord{
		{X: 0, Y: 0, Level: 0},
		{X: 1, Y: 0, Level: 0},
		{X: 0, Y: 1, Level: 0},
		{X: 1, Y: 1, Level: 0},
		{X: 0, Y: 0, Level: 1},
	}
	for i := range ordered {
		for j := range ordered {
			if (i < j) != ordered[i].Less(ordered[j]) {
				t.Errorf("Expected %v.Less(%v) == %t", ordered[i], ordered[j], i < j)
			}
		}
	}
}

func TestTileString(t *testing.T) {
	coord := TileCoord{X: 2, Y: 3, Level: 1}
	if coord.String() != "1/2/3" {
		t.Errorf("Expected \"1/2/3\", got %q", coord.String())
	}
}
