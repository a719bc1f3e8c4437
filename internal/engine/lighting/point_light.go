// Package lighting provides the orbiting point light and the Phong material
// used to shade the surface.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/humming-top/pkg/math"
)

// DefaultOrbitRadius is the distance of the light from the Y axis.
const DefaultOrbitRadius float32 = 10

// OrbitLight is a point light moving on a circle of Radius in the XZ plane.
// It has no state beyond its radius; the position is recomputed from the
// current angle every frame.
type OrbitLight struct {
	Radius float32
}

// NewOrbitLight creates an orbit light, falling back to the default radius
// for non-positive values.
func NewOrbitLight(radius float32) OrbitLight {
	if radius <= 0 {
		radius = DefaultOrbitRadius
	}
	return OrbitLight{Radius: radius}
}

// Position returns the world-space light position for angleDeg degrees:
// (R·cos θ, 0, R·sin θ).
func (l OrbitLight) Position(angleDeg float32) math.Vec3 {
	theta := math.Radians(angleDeg)
	return math.Vec3{
		X: l.Radius * math32.Cos(theta),
		Y: 0,
		Z: l.Radius * math32.Sin(theta),
	}
}

// IndicatorSegment returns the two points of the line drawn from the light
// to the origin.
func IndicatorSegment(pos math.Vec3) [2]math.Vec3 {
	return [2]math.Vec3{pos, {}}
}

// SegmentData flattens a segment for GPU upload: [x0 y0 z0 x1 y1 z1].
func SegmentData(seg [2]math.Vec3) []float32 {
	return []float32{
		seg[0].X, seg[0].Y, seg[0].Z,
		seg[1].X, seg[1].Y, seg[1].Z,
	}
}
