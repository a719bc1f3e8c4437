package normals

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/humming-top/pkg/math"
)

// AdjacencyStrategy decides which triangles share a smoothing group.
//
// Neighbors must call fn exactly once for every adjacent pair, always with
// i < j. Implementations may differ in cost but not in the pairs reported
// for the same adjacency test.
type AdjacencyStrategy interface {
	Neighbors(tris []Triangle, fn func(i, j int))
}

// ContainsVertex is the loose adjacency test used for smoothing: two
// triangles match when their first points agree on any single axis, or
// their second points do, or their third points do.
func ContainsVertex(t, other Triangle) bool {
	return sharesAxis(t.A, other.A) ||
		sharesAxis(t.B, other.B) ||
		sharesAxis(t.C, other.C)
}

// sharesAxis compares the stored float32 coordinates, so values closer than
// float32 precision count as equal.
func sharesAxis(a, b math.Vec3) bool {
	return a.X == b.X || a.Y == b.Y || a.Z == b.Z
}

// PairwiseScan tests every pair of triangles with ContainsVertex. It is
// quadratic in the triangle count.
type PairwiseScan struct{}

// Neighbors implements AdjacencyStrategy.
func (PairwiseScan) Neighbors(tris []Triangle, fn func(i, j int)) {
	for i := range tris {
		for j := i + 1; j < len(tris); j++ {
			if ContainsVertex(tris[i], tris[j]) {
				fn(i, j)
			}
		}
	}
}

// SharedPosition reports pairs of triangles that have at least one vertex
// position in common, after snapping positions to an Epsilon grid. It uses
// a spatial hash and runs in roughly linear time.
type SharedPosition struct {
	Epsilon float32
}

const defaultEpsilon float32 = 0.0001

// Neighbors implements AdjacencyStrategy.
func (s SharedPosition) Neighbors(tris []Triangle, fn func(i, j int)) {
	eps := s.Epsilon
	if eps <= 0 {
		eps = defaultEpsilon
	}

	// Group triangles by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range tris {
		for _, p := range [3]math.Vec3{tris[i].A, tris[i].B, tris[i].C} {
			key := quantize(p, eps)
			bucket := posMap[key]
			if len(bucket) > 0 && bucket[len(bucket)-1] == i {
				continue
			}
			posMap[key] = append(bucket, i)
		}
	}

	seen := make(map[int]struct{})
	for i := range tris {
		clear(seen)
		for _, p := range [3]math.Vec3{tris[i].A, tris[i].B, tris[i].C} {
			for _, j := range posMap[quantize(p, eps)] {
				if j <= i {
					continue
				}
				if _, dup := seen[j]; dup {
					continue
				}
				seen[j] = struct{}{}
				fn(i, j)
			}
		}
	}
}

func quantize(p math.Vec3, eps float32) [3]int32 {
	return [3]int32{
		int32(math32.Round(p.X / eps)),
		int32(math32.Round(p.Y / eps)),
		int32(math32.Round(p.Z / eps)),
	}
}
