package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/humming-top/pkg/math"
)

// Trackball turns mouse drags into a view rotation. Window points are
// projected onto a virtual sphere (with a hyperbolic sheet outside its
// rim), and each drag step rotates from the previous point to the current
// one. The accumulated rotation is the only state and changes only on drag.
type Trackball struct {
	width, height float32

	rotation math.Quat
	dragging bool
	last     math.Vec3

	// OnChange is called after every rotation change.
	OnChange func()
}

// NewTrackball creates a trackball for a window of the given size.
func NewTrackball(width, height int) *Trackball {
	t := &Trackball{rotation: math.QuatIdentity()}
	t.Resize(width, height)
	return t
}

// Resize updates the window size used to map points onto the sphere.
func (t *Trackball) Resize(width, height int) {
	t.width = float32(max(width, 1))
	t.height = float32(max(height, 1))
}

// BeginDrag starts a drag at window point (x, y).
func (t *Trackball) BeginDrag(x, y int) {
	t.dragging = true
	t.last = t.project(x, y)
}

// Drag continues a drag to (x, y). It returns true when the view changed.
func (t *Trackball) Drag(x, y int) bool {
	if !t.dragging {
		return false
	}

	cur := t.project(x, y)
	axis := t.last.Cross(cur)
	if axis.Length() < 1e-6 {
		return false
	}

	cos := math32.Max(-1, math32.Min(1, t.last.Dot(cur)))
	angle := math32.Acos(cos)

	t.rotation = math.QuatFromAxisAngle(axis.Normalize(), angle).Mul(t.rotation).Normalize()
	t.last = cur
	t.changed()
	return true
}

// EndDrag finishes the current drag.
func (t *Trackball) EndDrag() {
	t.dragging = false
}

// Dragging reports whether a drag is in progress.
func (t *Trackball) Dragging() bool {
	return t.dragging
}

// Reset returns to the identity view.
func (t *Trackball) Reset() {
	t.rotation = math.QuatIdentity()
	t.changed()
}

// ViewMatrix implements ViewSource.
func (t *Trackball) ViewMatrix() math.Mat4 {
	return t.rotation.ToMat4()
}

func (t *Trackball) changed() {
	if t.OnChange != nil {
		t.OnChange()
	}
}

// project maps a window point to the unit trackball surface.
func (t *Trackball) project(x, y int) math.Vec3 {
	size := math32.Min(t.width, t.height)
	nx := (2*float32(x) - t.width) / size
	ny := (t.height - 2*float32(y)) / size

	d2 := nx*nx + ny*ny
	var z float32
	if d2 <= 0.5 {
		z = math32.Sqrt(1 - d2)
	} else {
		z = 0.5 / math32.Sqrt(d2)
	}
	return math.Vec3{X: nx, Y: ny, Z: z}.Normalize()
}
