package math

import (
	"math"
	"testing"
)

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMulOrderAppliesRightFirst(t *testing.T) {
	// Scale first, then translate: (1,0,0) -> (2,0,0) -> (12,0,0)
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{12, 0, 0}, 1e-6) {
		t.Errorf("Translate*Scale: got %v, want (12, 0, 0)", got)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in the fourth column (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransposeInvolution(t *testing.T) {
	m := Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	tr := m.Transpose()

	if tr[1] != 5 || tr[4] != 2 || tr[12] != 4 || tr[3] != 13 {
		t.Errorf("Transpose: unexpected layout %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("Transpose twice should return the original matrix")
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, -2, 3).Mul(RotateAxis(Vec3{0, 1, 0}, 0.3)).Mul(Scale(2, 0.5, 4))
	got := m.Mul(m.Inverse())
	if !got.ApproxEqual(Identity(), 1e-4) {
		t.Errorf("M * M^-1 should be identity, got %v", got)
	}
}

func TestInverseSingular(t *testing.T) {
	if Scale(0, 1, 1).Inverse() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestRotateAxisY90(t *testing.T) {
	m := RotateAxis(Vec3{0, 1, 0}, float32(math.Pi/2))
	got := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) turns into (0,0,-1) around +Y
	if !got.ApproxEqual(Vec3{0, 0, -1}, 0.001) {
		t.Errorf("RotateAxis Y 90: got %v, want (0, 0, -1)", got)
	}
}

func TestAxisRotationNormalizesAxis(t *testing.T) {
	a := AxisRotation(Vec3{0.707, 0.707, 0}, 0.7)
	b := RotateAxis(Vec3{0.707, 0.707, 0}.Normalize(), 0.7)
	if a != b {
		t.Errorf("AxisRotation should normalize its axis:\n got %v\nwant %v", a, b)
	}
	if AxisRotation(Vec3{}, 1) != Identity() {
		t.Error("zero axis should give identity")
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(-2, 2, -2, 2, 8, 12)

	want := Mat4{
		0.5, 0, 0, 0,
		0, 0.5, 0, 0,
		0, 0, -0.5, 0,
		0, 0, -5, 1,
	}
	if !m.ApproxEqual(want, 1e-6) {
		t.Errorf("Ortho: got %v, want %v", m, want)
	}

	// The near plane maps to -1 and the far plane to +1 (camera looks down -Z).
	if p := m.TransformPoint(Vec3{0, 0, -8}); math.Abs(float64(p.Z+1)) > 1e-6 {
		t.Errorf("near plane depth: got %f, want -1", p.Z)
	}
	if p := m.TransformPoint(Vec3{0, 0, -12}); math.Abs(float64(p.Z-1)) > 1e-6 {
		t.Errorf("far plane depth: got %f, want 1", p.Z)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	got := Translate(5, 5, 5).TransformDirection(Vec3{0, 1, 0})
	if got != (Vec3{0, 1, 0}) {
		t.Errorf("TransformDirection: got %v, want (0, 1, 0)", got)
	}
}

func TestQuatMatchesRotateAxis(t *testing.T) {
	axis := Vec3{1, 2, 3}.Normalize()
	q := QuatFromAxisAngle(axis, 1.1)
	if !q.ToMat4().ApproxEqual(RotateAxis(axis, 1.1), 1e-5) {
		t.Errorf("quaternion and axis-angle matrices differ:\n%v\n%v", q.ToMat4(), RotateAxis(axis, 1.1))
	}
}

func TestQuatMulComposes(t *testing.T) {
	y := Vec3{0, 1, 0}
	half := QuatFromAxisAngle(y, float32(math.Pi/4))
	full := half.Mul(half)
	if !full.ToMat4().ApproxEqual(RotateAxis(y, float32(math.Pi/2)), 1e-5) {
		t.Error("two 45 degree rotations should equal one 90 degree rotation")
	}
}

func TestQuatNormalizeZero(t *testing.T) {
	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("zero quaternion should normalize to identity")
	}
}
