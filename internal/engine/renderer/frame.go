package renderer

import (
	"github.com/Faultbox/humming-top/internal/engine/camera"
	"github.com/Faultbox/humming-top/internal/engine/lighting"
	"github.com/Faultbox/humming-top/pkg/math"
)

// LineColor is the flat colour of the light indicator.
var LineColor = [4]float32{1, 1, 0, 1}

// Frame is the full set of values written to the shader for one draw. It is
// derived from the current view and light angle and never read back.
type Frame struct {
	Matrices camera.Matrices

	LightAngle float32
	LightWorld math.Vec3
	Segment    [2]math.Vec3

	Material  lighting.Material
	LineColor [4]float32
}

// BuildFrame computes the matrices, light position and material for a draw.
// It makes no GL calls.
func BuildFrame(view math.Mat4, angleDeg float32, light lighting.OrbitLight, material lighting.Material) Frame {
	m := camera.Compose(view)
	pos := light.Position(angleDeg)
	return Frame{
		Matrices:   m,
		LightAngle: angleDeg,
		LightWorld: pos,
		Segment:    lighting.IndicatorSegment(pos),
		Material:   material.Clamp(),
		LineColor:  LineColor,
	}
}
