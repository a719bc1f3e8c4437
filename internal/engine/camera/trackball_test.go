package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/humming-top/pkg/math"
)

func TestTrackballStartsAtIdentity(t *testing.T) {
	tb := NewTrackball(800, 600)
	assert.Equal(t, math.Identity(), tb.ViewMatrix())
}

func TestTrackballDragRight(t *testing.T) {
	tb := NewTrackball(800, 600)
	changes := 0
	tb.OnChange = func() { changes++ }

	tb.BeginDrag(400, 300)
	require.True(t, tb.Drag(460, 300))
	tb.EndDrag()

	// Dragging right spins the front of the object towards +X around +Y.
	p := tb.ViewMatrix().TransformPoint(math.Vec3{Z: 1})
	assert.Greater(t, p.X, float32(0.1))
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.Equal(t, 1, changes)
}

func TestTrackballDragUp(t *testing.T) {
	tb := NewTrackball(800, 600)
	tb.BeginDrag(400, 300)
	require.True(t, tb.Drag(400, 240))

	p := tb.ViewMatrix().TransformPoint(math.Vec3{Z: 1})
	assert.Greater(t, p.Y, float32(0.1))
	assert.InDelta(t, 0, p.X, 1e-5)
}

func TestTrackballIgnoresMotionWithoutDrag(t *testing.T) {
	tb := NewTrackball(800, 600)
	assert.False(t, tb.Drag(500, 500))

	tb.BeginDrag(100, 100)
	assert.False(t, tb.Drag(100, 100), "no movement, no change")
	tb.EndDrag()
	assert.False(t, tb.Dragging())
	assert.False(t, tb.Drag(200, 200))
	assert.Equal(t, math.Identity(), tb.ViewMatrix())
}

func TestTrackballStaysRigid(t *testing.T) {
	tb := NewTrackball(640, 480)
	tb.BeginDrag(10, 10)
	for i := 0; i < 50; i++ {
		tb.Drag(10+i*13, 10+i*7)
	}
	tb.EndDrag()

	v := tb.ViewMatrix().TransformDirection(math.Vec3{X: 3, Y: 4, Z: 12})
	assert.InDelta(t, 13, v.Length(), 1e-3)
}

func TestTrackballReset(t *testing.T) {
	tb := NewTrackball(800, 600)
	tb.BeginDrag(400, 300)
	tb.Drag(500, 350)
	tb.EndDrag()

	tb.Reset()
	assert.True(t, tb.ViewMatrix().ApproxEqual(math.Identity(), 1e-6))
}
