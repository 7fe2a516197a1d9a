package lib

import "errors"

// ErrConfiguration is wrapped by all errors reported for malformed or
// inconsistent level lists.
var ErrConfiguration = errors.New("invalid level configuration")

// Level describes a single resolution tier of the panorama image
// pyramid: the pixel size of the full equirectangular image at that
// tier and the pixel size of the tiles it is cut into.
type Level struct {
	Width, Height         int
	TileWidth, TileHeight int
}

// NumTilesX returns the number of tile columns of the level. The last
// column may be a partial tile.
func (l Level) NumTilesX() int {
	return (l.Width + l.TileWidth - 1) / l.TileWidth
}

// NumTilesY returns the number of tile rows of the level. The last
// row may be a partial tile.
func (l Level) NumTilesY() int {
	return (l.Height + l.TileHeight - 1) / l.TileHeight
}

// EdgeTileWidth returns the pixel width of tiles in the last column.
func (l Level) EdgeTileWidth() int {
	if w := l.Width % l.TileWidth; w != 0 {
		return w
	}
	return l.TileWidth
}

// EdgeTileHeight returns the pixel height of tiles in the last row.
func (l Level) EdgeTileHeight() int {
	if h := l.Height % l.TileHeight; h != 0 {
		return h
	}
	return l.TileHeight
}
