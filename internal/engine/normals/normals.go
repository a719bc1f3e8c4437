// Package normals derives per-vertex lighting normals for a triangle list.
//
// Vertices are grouped into consecutive, non-overlapping triples. Each
// triangle gets an unnormalized face normal, then accumulates the raw face
// normals of the triangles an AdjacencyStrategy reports as its neighbours.
// Accumulation is directional: for a reported pair (i, j) with i < j only
// triangle i absorbs triangle j's normal.
package normals

import (
	"github.com/Faultbox/humming-top/pkg/math"
)

// FallbackNormal is emitted when a smoothed normal has no usable length.
var FallbackNormal = math.Vec3{X: 0, Y: 1, Z: 0}

// Triangle is three vertices plus their raw face normal.
type Triangle struct {
	A, B, C math.Vec3
	Normal  math.Vec3
}

// FaceNormal returns (b-a) × (c-a), not normalized.
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// Triangles groups vertices into triples [3i, 3i+1, 3i+2]. Up to two
// trailing vertices that do not complete a triple are ignored.
func Triangles(vertices []math.Vec3) []Triangle {
	tris := make([]Triangle, len(vertices)/3)
	for i := range tris {
		a, b, c := vertices[3*i], vertices[3*i+1], vertices[3*i+2]
		tris[i] = Triangle{A: a, B: b, C: c, Normal: FaceNormal(a, b, c)}
	}
	return tris
}

// Stats describes one estimation run.
type Stats struct {
	Triangles     int
	AdjacentPairs int
	Degenerate    int // triangles that fell back to FallbackNormal
}

// Estimate returns one unit normal per vertex using the PairwiseScan strategy.
func Estimate(vertices []math.Vec3) []math.Vec3 {
	out, _ := EstimateWithStats(vertices, PairwiseScan{})
	return out
}

// EstimateWith returns one unit normal per vertex using the given strategy.
func EstimateWith(vertices []math.Vec3, strategy AdjacencyStrategy) []math.Vec3 {
	out, _ := EstimateWithStats(vertices, strategy)
	return out
}

// EstimateWithStats is EstimateWith plus counters for logging.
//
// The output always has len(vertices) entries. Every triangle contributes
// three copies of its smoothed normal. Trailing vertices outside a full
// triple reuse the last triangle's normal, or FallbackNormal when there is
// no triangle at all.
func EstimateWithStats(vertices []math.Vec3, strategy AdjacencyStrategy) ([]math.Vec3, Stats) {
	if strategy == nil {
		strategy = PairwiseScan{}
	}

	tris := Triangles(vertices)
	stats := Stats{Triangles: len(tris)}

	acc := Smooth(tris, strategy, &stats.AdjacentPairs)

	out := make([]math.Vec3, len(vertices))
	last := FallbackNormal
	for i, n := range acc {
		unit, ok := unitNormal(n)
		if !ok {
			stats.Degenerate++
		}
		out[3*i] = unit
		out[3*i+1] = unit
		out[3*i+2] = unit
		last = unit
	}
	for i := 3 * len(tris); i < len(out); i++ {
		out[i] = last
	}
	return out, stats
}

// Smooth returns the accumulated (unnormalized) normal of every triangle.
// When pairs is non-nil it receives the number of adjacent pairs visited.
func Smooth(tris []Triangle, strategy AdjacencyStrategy, pairs *int) []math.Vec3 {
	acc := make([]math.Vec3, len(tris))
	for i := range tris {
		acc[i] = tris[i].Normal
	}

	n := 0
	strategy.Neighbors(tris, func(i, j int) {
		acc[i] = acc[i].Add(tris[j].Normal)
		n++
	})
	if pairs != nil {
		*pairs = n
	}
	return acc
}

// unitNormal normalizes n, reporting false and FallbackNormal when n has no
// usable length.
func unitNormal(n math.Vec3) (math.Vec3, bool) {
	u := n.NormalizeOr(math.Vec3{})
	if u == (math.Vec3{}) {
		return FallbackNormal, false
	}
	return u, true
}
