package lib

import "errors"
import "math"

import "github.com/golang/geo/r3"
import "github.com/golang/geo/s1"

// ErrEmptyViewport is returned when a tile query is made for a
// viewport with zero area. Callers should skip the frame's tile
// search and retry once the viewport has a size.
var ErrEmptyViewport = errors.New("viewport has zero area")

// DefaultFov is the vertical field of view used when the host
// application doesn't specify one.
const DefaultFov = math.Pi / 2

// View is a read-only snapshot of the camera state: view direction as
// yaw/pitch in radians, vertical field of view, and viewport pixel
// size.
type View struct {
	yaw, pitch    float64
	fov           s1.Angle
	width, height int
}

func NewView(yaw, pitch float64, fov s1.Angle, width, height int) *View {
	return &View{yaw: yaw, pitch: pitch, fov: fov, width: width, height: height}
}

func (v *View) Yaw() float64 {
	return v.yaw
}

func (v *View) Pitch() float64 {
	return v.pitch
}

func (v *View) Fov() s1.Angle {
	return v.fov
}

func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// coneHalfAngle returns the half-angle of the smallest cone around
// the view direction containing the whole viewport, i.e. half the
// diagonal field of view.
func (v *View) coneHalfAngle() s1.Angle {
	aspect := float64(v.width) / float64(v.height)
	halfDiagonal := math.Tan(float64(v.fov)/2) * math.Sqrt(1+aspect*aspect)
	return s1.Angle(math.Atan(halfDiagonal))
}

// SeesTile reports whether any part of the tile can fall inside the
// viewport. The test is conservative: a tile is accepted when the
// view direction lies inside its footprint or one of its corners lies
// within the viewport cone, so it may accept tiles slightly outside
// the exact frustum but never rejects a visible one.
func (v *View) SeesTile(g Geometry, t TileCoord) bool {
	if v.width <= 0 || v.height <= 0 {
		return false
	}
	if g.ClosestTile(v.yaw, v.pitch, t.Level) == t {
		return true
	}
	direction := directionFromAngles(v.yaw, v.pitch)
	maxAngle := v.coneHalfAngle()
	var buf [4]r3.Vector
	for _, vertex := range g.TileVertices(t, buf[:0]) {
		if direction.Angle(vertex) <= maxAngle {
			return true
		}
	}
	return false
}
