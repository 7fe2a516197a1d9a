package lib

import "reflect"
import "testing"

func newSingleLevelPyramid(t *testing.T, level Level) *Pyramid {
	pyramid, err := NewPyramid([]Level{level})
	if err != nil {
		t.Fatalf("Could not build pyramid: %v", err)
	}
	return pyramid
}

func TestNeighborsWrapAround(t *testing.T) {
	// A 3x1 grid: the x axis is a closed loop.
	pyramid := newSingleLevelPyramid(t, Level{Width: 1536, Height: 512, TileWidth: 512, TileHeight: 512})
	expected := []TileCoord{{X: 0, Y: 0, Level: 0}, {X: 1, Y: 0, Level: 0}}
	if neighbors := pyramid.Neighbors(TileCoord{X: 2, Y: 0, Level: 0}); !reflect.DeepEqual(neighbors, expected) {
		t.Errorf("Expected neighbors of (2,0) to be %v, got %v", expected, neighbors)
	}
	expected = []TileCoord{{X: 1, Y: 0, Level: 0}, {X: 2, Y: 0, Level: 0}}
	if neighbors := pyramid.Neighbors(TileCoord{X: 0, Y: 0, Level: 0}); !reflect.DeepEqual(neighbors, expected) {
		t.Errorf("Expected neighbors of (0,0) to be %v, got %v", expected, neighbors)
	}
}

func TestNeighborsOmittedAtPoles(t *testing.T) {
	// A 4x2 grid: no wrapping past the first or last row.
	pyramid := newSingleLevelPyramid(t, Level{Width: 2048, Height: 1024, TileWidth: 512, TileHeight: 512})
	neighbors := pyramid.Neighbors(TileCoord{X: 1, Y: 0, Level: 0})
	expected := []TileCoord{
		{X: 1, Y: 1, Level: 0},
		{X: 2, Y: 0, Level: 0},
		{X: 0, Y: 0, Level: 0},
	}
	if !reflect.DeepEqual(neighbors, expected) {
		t.Errorf("Expected neighbors of (1,0) to be %v, got %v", expected, neighbors)
	}
	neighbors = pyramid.Neighbors(TileCoord{X: 1, Y: 1, Level: 0})
	expected = []TileCoord{
		{X: 2, Y: 1, Level: 0},
		{X: 1, Y: 0, Level: 0},
		{X: 0, Y: 1, Level: 0},
	}
	if !reflect.DeepEqual(neighbors, expected) {
		t.Errorf("Expected neighbors of (1,1) to be %v, got %v", expected, neighbors)
	}
}

func TestNeighborsFixedOrder(t *testing.T) {
	// An interior tile of a 4x4 grid has all four neighbors, in
	// top, right, bottom, left order.
	pyramid := newSingleLevelPyramid(t, Level{Width: 2048, Height: 2048, TileWidth: 512, TileHeight: 512})
	neighbors := pyramid.Neighbors(TileCoord{X: 1, Y: 1, Level: 0})
	expected := []TileCoord{
		{X: 1, Y: 2, Level: 0},
		{X: 2, Y: 1, Level: 0},
		{X: 1, Y: 0, Level: 0},
		{X: 0, Y: 1, Level: 0},
	}
	if !reflect.DeepEqual(neighbors, expected) {
		t.Errorf("Expected neighbors of (1,1) to be %v, got %v", expected, neighbors)
	}
}

type countingCache struct {
	entries    map[uint64][]TileCoord
	gets, adds int
}

func (c *countingCache) Get(key uint64) ([]TileCoord, bool) {
	c.gets++
	neighbors, ok := c.entries[key]
	return neighbors, ok
}

func (c *countingCache) Add(key uint64, neighbors []TileCoord) {
	c.adds++
	c.entries[key] = neighbors
}

func TestNeighborsAreMemoized(t *testing.T) {
	pyramid := newSingleLevelPyramid(t, Level{Width: 2048, Height: 1024, TileWidth: 512, TileHeight: 512})
	cache := &countingCache{entries: make(map[uint64][]TileCoord)}
	pyramid.neighbors = cache
	tile := TileCoord{X: 1, Y: 1, Level: 0}
	first := pyramid.Neighbors(tile)
	second := pyramid.Neighbors(tile)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected repeated calls to return equal results, got %v and %v", first, second)
	}
	if cache.adds != 1 {
		t.Errorf("Expected neighbors to be computed once, got %d computations", cache.adds)
	}
	if cache.gets != 2 {
		t.Errorf("Expected the cache to be consulted twice, got %d lookups", cache.gets)
	}
}

func TestNeighborsResultIsCallerOwned(t *testing.T) {
	pyramid := newSingleLevelPyramid(t, Level{Width: 2048, Height: 1024, TileWidth: 512, TileHeight: 512})
	tile := TileCoord{X: 1, Y: 1, Level: 0}
	expected := pyramid.Neighbors(tile)
	// Mutating a returned slice must not corrupt the memoized entry.
	clobbered := pyramid.Neighbors(tile)
	for i := range clobbered {
		clobbered[i] = TileCoord{X: -1, Y: -1, Level: -1}
	}
	if neighbors := pyramid.Neighbors(tile); !reflect.DeepEqual(neighbors, expected) {
		t.Errorf("Expected neighbors %v after mutating a previous result, got %v", expected, neighbors)
	}
}

func TestNeighborCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newLRUNeighborCache(2)
	a := TileCoord{X: 0, Y: 0, Level: 0}
	b := TileCoord{X: 1, Y: 0, Level: 0}
	c := TileCoord{X: 2, Y: 0, Level: 0}
	cache.Add(a.Key(), []TileCoord{b})
	cache.Add(b.Key(), []TileCoord{a})
	// Touch a, so that b becomes the eviction candidate.
	if _, ok := cache.Get(a.Key()); !ok {
		t.Fatalf("Expected %v to be cached", a)
	}
	cache.Add(c.Key(), []TileCoord{a})
	if _, ok := cache.Get(b.Key()); ok {
		t.Errorf("Expected %v to have been evicted", b)
	}
	if _, ok := cache.Get(a.Key()); !ok {
		t.Errorf("Expected %v to still be cached", a)
	}
}
