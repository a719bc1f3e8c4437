package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/humming-top/pkg/math"
)

func assertMatInDelta(t *testing.T, want, got math.Mat4, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}

func TestComposeIdentityGolden(t *testing.T) {
	m := Compose(math.Identity())

	// rotate(normalize(0.707, 0.707, 0), 0.7) with the (0,0,-10) push.
	const (
		d = 0.88242109 // t/2 + cos
		o = 0.11757891 // t/2
		s = 0.45553070 // sin/sqrt(2)
		c = 0.76484219 // cos
	)
	wantMV := math.Mat4{
		d, o, -s, 0,
		o, d, s, 0,
		s, -s, c, 0,
		0, 0, -10, 1,
	}
	assertMatInDelta(t, wantMV, m.ModelView, 1e-5)

	wantMVP := math.Mat4{
		d / 2, o / 2, s / 2, 0,
		o / 2, d / 2, -s / 2, 0,
		s / 2, -s / 2, -c / 2, 0,
		0, 0, 0, 1,
	}
	assertMatInDelta(t, wantMVP, m.ModelViewProjection, 1e-5)
	assertMatInDelta(t, Projection(), m.Projection, 0)
}

func TestComposeOrder(t *testing.T) {
	view := math.RotateAxis(math.Vec3{X: 1}, 0.4)
	m := Compose(view)

	rotate := math.AxisRotation(FixAxis, FixAngle)
	translate := math.Translate(0, 0, -10)
	assertMatInDelta(t, translate.Mul(rotate.Mul(view)), m.ModelView, 1e-6)

	// The view applies first: composing in the other order gives a different matrix.
	assert.False(t, m.ModelView.ApproxEqual(translate.Mul(view.Mul(rotate)), 1e-4))
}

func TestOriginLandsMidFrustum(t *testing.T) {
	p := Compose(math.Identity()).ModelViewProjection.TransformPoint(math.Vec3{})
	assert.InDelta(t, 0, p.Z, 1e-6, "origin sits halfway between near and far")
}

func TestNormalMatrixRigidKeepsRotation(t *testing.T) {
	m := Compose(math.Identity())
	for _, i := range []int{0, 1, 2, 4, 5, 6, 8, 9, 10} {
		assert.InDelta(t, m.ModelView[i], m.Normal[i], 1e-5, "element %d", i)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	modelView := math.Scale(1, 4, 1).Mul(math.RotateAxis(math.Vec3{X: 0, Y: 0, Z: 1}, 0.5))
	normalMat := NormalMatrix(modelView)

	// A plane through the origin spanned by tangent with normal n.
	tangent := math.Vec3{X: 1, Y: 1, Z: 0}
	n := math.Vec3{X: 1, Y: -1, Z: 0}

	tt := modelView.TransformDirection(tangent)
	nt := normalMat.TransformDirection(n)
	assert.InDelta(t, 0, tt.Dot(nt), 1e-5, "transformed normal stays perpendicular")

	// The model-view itself does not preserve perpendicularity here.
	assert.Greater(t, abs(tt.Dot(modelView.TransformDirection(n))), float32(0.1))
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
