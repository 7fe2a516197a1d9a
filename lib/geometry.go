package lib

import "math"

import "github.com/golang/geo/r3"

// Geometry maps the tiles of a pyramid onto the unit sphere. The
// equirectangular projection below is the only variant implemented;
// a cubemap variant would satisfy the same interface.
type Geometry interface {
	Pyramid() *Pyramid
	// TileVertices appends the four corner vertices of the tile on the
	// unit sphere to buf and returns the result.
	TileVertices(t TileCoord, buf []r3.Vector) []r3.Vector
	// ClosestTile returns the tile at the given level whose footprint
	// contains the view direction.
	ClosestTile(yaw, pitch float64, level int) TileCoord
}

// EquirectGeometry projects tiles of an equirectangular panorama:
// image x maps linearly to yaw in [-pi, pi], image y to pitch in
// [pi/2, -pi/2].
type EquirectGeometry struct {
	pyramid *Pyramid
}

func NewEquirectGeometry(p *Pyramid) *EquirectGeometry {
	return &EquirectGeometry{pyramid: p}
}

func (g *EquirectGeometry) Pyramid() *Pyramid {
	return g.pyramid
}

// footprint returns the fractional region of the full level image
// covered by the tile. Tiles in the last row or column may cover less
// than a full tile's worth of image.
func (g *EquirectGeometry) footprint(t TileCoord) (minX, minY, scaleX, scaleY float64) {
	level := g.pyramid.levels[t.Level]
	tileWidth, tileHeight := level.TileWidth, level.TileHeight
	if t.X == level.NumTilesX()-1 {
		tileWidth = level.EdgeTileWidth()
	}
	if t.Y == level.NumTilesY()-1 {
		tileHeight = level.EdgeTileHeight()
	}
	minX = float64(t.X*level.TileWidth) / float64(level.Width)
	minY = float64(t.Y*level.TileHeight) / float64(level.Height)
	scaleX = float64(tileWidth) / float64(level.Width)
	scaleY = float64(tileHeight) / float64(level.Height)
	return minX, minY, scaleX, scaleY
}

// directionFromAngles converts a yaw/pitch view direction to a unit
// vector. Yaw 0, pitch 0 is the +z axis, yaw grows towards +x and
// pitch towards -y.
func directionFromAngles(yaw, pitch float64) r3.Vector {
	cosPitch := math.Cos(pitch)
	return r3.Vector{
		X: math.Sin(yaw) * cosPitch,
		Y: -math.Sin(pitch),
		Z: math.Cos(yaw) * cosPitch,
	}
}

// sphereVertex maps fractional image coordinates to the unit sphere:
// x 0..1 covers yaw -pi..pi, y 0..1 covers pitch pi/2..-pi/2.
func sphereVertex(x, y float64) r3.Vector {
	return directionFromAngles((x-0.5)*2*math.Pi, (0.5-y)*math.Pi)
}

// TileVertices appends the tile's corners on the unit sphere to buf in
// top-left, top-right, bottom-right, bottom-left footprint order, and
// returns the result. Per-frame callers should pass a buffer with
// capacity 4 to avoid allocating on every call.
func (g *EquirectGeometry) TileVertices(t TileCoord, buf []r3.Vector) []r3.Vector {
	minX, minY, scaleX, scaleY := g.footprint(t)
	maxX, maxY := minX+scaleX, minY+scaleY
	return append(buf[:0],
		sphereVertex(minX, minY),
		sphereVertex(maxX, minY),
		sphereVertex(maxX, maxY),
		sphereVertex(minX, maxY))
}

// ClosestTile returns the tile at the given level whose footprint
// contains the yaw/pitch direction. The x coordinate wraps around,
// the y coordinate is clamped to the first and last row since pitch
// has a hard range at the poles.
func (g *EquirectGeometry) ClosestTile(yaw, pitch float64, level int) TileCoord {
	l := g.pyramid.levels[level]
	x := yaw/(2*math.Pi) + 0.5
	y := -pitch/math.Pi + 0.5
	numX, numY := l.NumTilesX(), l.NumTilesY()
	tileX := int(math.Floor(x * float64(l.Width) / float64(l.TileWidth)))
	tileX = ((tileX % numX) + numX) % numX
	tileY := int(math.Floor(y * float64(l.Height) / float64(l.TileHeight)))
	if tileY < 0 {
		tileY = 0
	} else if tileY >= numY {
		tileY = numY - 1
	}
	return TileCoord{X: tileX, Y: tileY, Level: level}
}
