// Package camera turns the trackball's view rotation into the matrices the
// lighting shader consumes.
package camera

import (
	"github.com/Faultbox/humming-top/pkg/math"
)

// Fixed re-orientation applied on top of the user's view, so the top is
// seen from slightly above and to the side at rest.
var (
	FixAxis              = math.Vec3{X: 0.707, Y: 0.707, Z: 0}
	FixAngle     float32 = 0.7 // radians
	FixTranslate         = math.Vec3{X: 0, Y: 0, Z: -10}
)

// Orthographic frustum bounds. The surface fits inside a 4x4 box and the
// translation above places it halfway between the near and far planes.
const (
	frustumHalf float32 = 2
	frustumNear float32 = 8
	frustumFar  float32 = 12
)

// ViewSource supplies the current view rotation, normally a Trackball.
type ViewSource interface {
	ViewMatrix() math.Mat4
}

// Matrices is everything the shader needs to place and light the surface.
type Matrices struct {
	ModelView           math.Mat4
	Projection          math.Mat4
	ModelViewProjection math.Mat4
	Normal              math.Mat4 // inverse-transpose of ModelView
}

// Projection returns the fixed orthographic projection.
func Projection() math.Mat4 {
	return math.Ortho(-frustumHalf, frustumHalf, -frustumHalf, frustumHalf, frustumNear, frustumFar)
}

// Compose builds the frame matrices from the view rotation.
//
// The model-view is translate · (rotate · view): the user's view applies
// first, then the fixed tilt, then the push away from the eye.
func Compose(view math.Mat4) Matrices {
	rotate := math.AxisRotation(FixAxis, FixAngle)
	translate := math.Translate(FixTranslate.X, FixTranslate.Y, FixTranslate.Z)

	modelView := translate.Mul(rotate.Mul(view))
	projection := Projection()

	return Matrices{
		ModelView:           modelView,
		Projection:          projection,
		ModelViewProjection: projection.Mul(modelView),
		Normal:              NormalMatrix(modelView),
	}
}

// NormalMatrix returns the inverse-transpose of modelView, which keeps
// normals perpendicular to surfaces under non-uniform scale.
func NormalMatrix(modelView math.Mat4) math.Mat4 {
	return modelView.Inverse().Transpose()
}
