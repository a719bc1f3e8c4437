// Package surface tessellates the parabolic humming-top into a
// triangle-strip point sequence with matching texture coordinates.
//
// The surface is a solid of revolution around Y:
//
//	r(h) = (|h| - height)^2 / (2p)
//	x = r(h)·cos(angle), y = h, z = r(h)·sin(angle)
package surface

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/humming-top/internal/engine/normals"
)

// ErrInvalidParams is returned when tessellation parameters would produce a
// degenerate or unbounded mesh.
var ErrInvalidParams = errors.New("invalid surface parameters")

// MaxVertices caps the size of a generated strip.
const MaxVertices = 1 << 22

// MaxPairwiseTriangles caps meshes smoothed with normals.PairwiseScan, which
// compares every triangle with every other one. At the cap a rebuild takes
// about a second; the step count reachable with it is 150.
const MaxPairwiseTriangles = 1 << 14

// countTolerance absorbs float drift when a step evenly divides its range,
// so 360/(360/101) counts as 101 bands rather than 102.
const countTolerance = 1e-7

// Params controls the shape and tessellation density of the surface.
// Angles are in degrees.
type Params struct {
	Height float64 // half-extent along Y
	P      float64 // curvature coefficient

	AngleStart float64
	AngleEnd   float64
	AngleStep  float64

	HeightStart float64
	HeightEnd   float64
	HeightStep  float64
}

// DefaultParams returns the classic humming-top: height 1.5, p 1, 100 steps.
func DefaultParams() Params {
	return ParamsFromStepCount(1.5, 1, 100)
}

// ParamsFromStepCount sweeps the full revolution and the full height range,
// splitting each into steps+1 intervals.
func ParamsFromStepCount(height, p float64, steps int) Params {
	n := float64(steps + 1)
	return Params{
		Height:      height,
		P:           p,
		AngleStart:  0,
		AngleEnd:    360,
		AngleStep:   360 / n,
		HeightStart: -height,
		HeightEnd:   height,
		HeightStep:  2 * height / n,
	}
}

// Validate checks that the parameters describe a finite, non-degenerate mesh.
func (p Params) Validate() error {
	if !finite(p.Height) || p.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %v", ErrInvalidParams, p.Height)
	}
	if !finite(p.P) || p.P == 0 {
		return fmt.Errorf("%w: p must be non-zero, got %v", ErrInvalidParams, p.P)
	}
	if err := validateRange("angle", p.AngleStart, p.AngleEnd, p.AngleStep); err != nil {
		return err
	}
	if err := validateRange("height", p.HeightStart, p.HeightEnd, p.HeightStep); err != nil {
		return err
	}
	if n := p.VertexCount(); n > MaxVertices {
		return fmt.Errorf("%w: %d vertices exceeds limit of %d", ErrInvalidParams, n, MaxVertices)
	}
	return nil
}

// ValidateFor runs Validate and additionally rejects meshes too dense for
// the given adjacency strategy.
func (p Params) ValidateFor(strategy normals.AdjacencyStrategy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := strategy.(normals.PairwiseScan); ok {
		if n := p.VertexCount() / 3; n > MaxPairwiseTriangles {
			return fmt.Errorf("%w: %d triangles exceeds pairwise smoothing limit of %d",
				ErrInvalidParams, n, MaxPairwiseTriangles)
		}
	}
	return nil
}

func validateRange(name string, start, end, step float64) error {
	if !finite(start) || !finite(end) {
		return fmt.Errorf("%w: %s range must be finite", ErrInvalidParams, name)
	}
	if end <= start {
		return fmt.Errorf("%w: %s range [%v, %v] is empty", ErrInvalidParams, name, start, end)
	}
	if !finite(step) || step <= 0 {
		return fmt.Errorf("%w: %s step must be positive, got %v", ErrInvalidParams, name, step)
	}
	if (end-start)/step > MaxVertices {
		return fmt.Errorf("%w: %s step %v is too small", ErrInvalidParams, name, step)
	}
	return nil
}

// AngleBands returns how many angular bands the sweep produces. Each band
// spans [angle, angle+step], so the count is ceil(range/step).
func (p Params) AngleBands() int {
	return intervals(p.AngleStart, p.AngleEnd, p.AngleStep)
}

// HeightRows returns how many height samples each band carries. Rows sit on
// both ends of the range, so there is one more row than there are intervals.
// This is deliberately ceil(range/step)+1, not the bare ceil(range/step)
// used for bands, because the sweep includes HeightEnd.
func (p Params) HeightRows() int {
	return intervals(p.HeightStart, p.HeightEnd, p.HeightStep) + 1
}

// VertexCount returns the strip length: two vertices per (band, row) pair.
func (p Params) VertexCount() int {
	return 2 * p.AngleBands() * p.HeightRows()
}

// Radius returns the distance from the Y axis at height h.
func (p Params) Radius(h float64) float64 {
	d := math.Abs(h) - p.Height
	return d * d / (2 * p.P)
}

// Point evaluates the surface at angleDeg degrees and height h.
func (p Params) Point(angleDeg, h float64) [3]float64 {
	r := p.Radius(h)
	a := angleDeg * math.Pi / 180
	return [3]float64{r * math.Cos(a), h, r * math.Sin(a)}
}

func intervals(start, end, step float64) int {
	ratio := (end - start) / step
	n := int(math.Ceil(ratio - countTolerance))
	if n < 1 {
		n = 1
	}
	return n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
