package lib

import "sync"

import "github.com/golang/groupcache/lru"

// neighborCache memoizes per-tile neighbor lists. Implementations
// must be safe for concurrent use.
type neighborCache interface {
	Get(key uint64) ([]TileCoord, bool)
	Add(key uint64, neighbors []TileCoord)
}

type lruNeighborCache struct {
	cache *lru.Cache
	lock  sync.Mutex
}

func newLRUNeighborCache(numEntries int) *lruNeighborCache {
	return &lruNeighborCache{cache: lru.New(numEntries)}
}

func (c *lruNeighborCache) Get(key uint64) ([]TileCoord, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	value, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return value.([]TileCoord), true
}

func (c *lruNeighborCache) Add(key uint64, neighbors []TileCoord) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Add(key, neighbors)
}

// neighborOffsets in fixed evaluation order: top (y+1), right (x+1),
// bottom (y-1), left (x-1). Top and bottom follow the row index, not
// screen orientation.
var neighborOffsets = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Neighbors returns the tiles adjacent to t at the same level. The x
// axis wraps around, longitude being a closed loop; tiles past the
// first or last row are omitted, so the result has 2 to 4 entries.
// Results are memoized in the pyramid's bounded cache; the returned
// slice is a copy the caller may keep or modify.
func (p *Pyramid) Neighbors(t TileCoord) []TileCoord {
	if cached, ok := p.neighbors.Get(t.Key()); ok {
		return append([]TileCoord(nil), cached...)
	}
	level := p.levels[t.Level]
	numX, numY := level.NumTilesX(), level.NumTilesY()
	neighbors := make([]TileCoord, 0, 4)
	for _, d := range neighborOffsets {
		x, y := t.X+d[0], t.Y+d[1]
		if y < 0 || y >= numY {
			continue
		}
		x = ((x % numX) + numX) % numX
		neighbors = append(neighbors, TileCoord{X: x, Y: y, Level: t.Level})
	}
	p.neighbors.Add(t.Key(), neighbors)
	return append([]TileCoord(nil), neighbors...)
}
