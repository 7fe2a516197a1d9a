package lib

import "fmt"

const defaultNeighborCacheSize = 64

// Pyramid is the ordered list of resolution levels of one panorama,
// index 0 being the coarsest. It owns the levels and the neighbor
// cache shared by all of them.
type Pyramid struct {
	levels    []Level
	neighbors neighborCache
}

// NewPyramid validates the level list and builds a pyramid from it.
// Each level's pixel dimensions and tile dimensions must be integer
// multiples of the previous level's, so that tile grids of adjacent
// levels align. The multiples may differ between level pairs and
// between axes. Violations are reported as ErrConfiguration.
func NewPyramid(levels []Level) (*Pyramid, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: empty level list", ErrConfiguration)
	}
	for i, level := range levels {
		if level.Width <= 0 || level.Height <= 0 || level.TileWidth <= 0 || level.TileHeight <= 0 {
			return nil, fmt.Errorf("%w: level %d has non-positive dimensions %+v", ErrConfiguration, i, level)
		}
		if i == 0 {
			continue
		}
		prev := levels[i-1]
		if level.Width%prev.Width != 0 || level.Height%prev.Height != 0 {
			return nil, fmt.Errorf("%w: level %d size %dx%d is not a multiple of level %d size %dx%d",
				ErrConfiguration, i, level.Width, level.Height, i-1, prev.Width, prev.Height)
		}
		if level.TileWidth%prev.TileWidth != 0 || level.TileHeight%prev.TileHeight != 0 {
			return nil, fmt.Errorf("%w: level %d tile size %dx%d is not a multiple of level %d tile size %dx%d",
				ErrConfiguration, i, level.TileWidth, level.TileHeight, i-1, prev.TileWidth, prev.TileHeight)
		}
		// Partial edge tiles can leave the grids misaligned even when
		// all pixel dimensions divide evenly; parent/child navigation
		// needs whole-number grid ratios.
		if level.NumTilesX()%prev.NumTilesX() != 0 || level.NumTilesY()%prev.NumTilesY() != 0 {
			return nil, fmt.Errorf("%w: level %d tile grid %dx%d does not align with level %d tile grid %dx%d",
				ErrConfiguration, i, level.NumTilesX(), level.NumTilesY(), i-1, prev.NumTilesX(), prev.NumTilesY())
		}
	}
	return &Pyramid{
		levels:    append([]Level(nil), levels...),
		neighbors: newLRUNeighborCache(defaultNeighborCacheSize),
	}, nil
}

func (p *Pyramid) NumLevels() int {
	return len(p.levels)
}

// Level returns the level description at the given index. Indices out
// of [0, NumLevels()) are a programming error and panic.
func (p *Pyramid) Level(level int) Level {
	return p.levels[level]
}

// MaxTileSize returns the largest tile pixel dimension across all
// levels, for sizing fetch and decode buffers.
func (p *Pyramid) MaxTileSize() int {
	maxSize := 0
	for _, level := range p.levels {
		if level.TileWidth > maxSize {
			maxSize = level.TileWidth
		}
		if level.TileHeight > maxSize {
			maxSize = level.TileHeight
		}
	}
	return maxSize
}

// Parent returns the tile at the previous level whose footprint
// contains t, or false for tiles of level 0.
func (p *Pyramid) Parent(t TileCoord) (TileCoord, bool) {
	if t.Level == 0 {
		return TileCoord{}, false
	}
	level, parentLevel := p.levels[t.Level], p.levels[t.Level-1]
	ratioX := level.NumTilesX() / parentLevel.NumTilesX()
	ratioY := level.NumTilesY() / parentLevel.NumTilesY()
	return TileCoord{X: t.X / ratioX, Y: t.Y / ratioY, Level: t.Level - 1}, true
}

// Children appends to buf the tiles at the next level whose footprints
// make up t's footprint, and returns the result. It returns nil for
// tiles of the finest level. Callers must not rely on the order of the
// returned tiles.
func (p *Pyramid) Children(t TileCoord, buf []TileCoord) []TileCoord {
	if t.Level+1 >= len(p.levels) {
		return nil
	}
	level, childLevel := p.levels[t.Level], p.levels[t.Level+1]
	ratioX := childLevel.NumTilesX() / level.NumTilesX()
	ratioY := childLevel.NumTilesY() / level.NumTilesY()
	children := buf[:0]
	for dx := 0; dx < ratioX; dx++ {
		for dy := 0; dy < ratioY; dy++ {
			children = append(children, TileCoord{
				X:     ratioX*t.X + dx,
				Y:     ratioY*t.Y + dy,
				Level: t.Level + 1,
			})
		}
	}
	return children
}
