package surface

import (
	"go.uber.org/zap"

	"github.com/Faultbox/humming-top/internal/engine/normals"
	"github.com/Faultbox/humming-top/internal/logger"
	"github.com/Faultbox/humming-top/pkg/math"
)

// Tessellate sweeps angle (outer loop) and height (inner loop) and emits,
// for every (angle, h) pair, one vertex at angle and one at angle+step, both
// at height h. Consecutive pairs form a triangle strip without an index
// buffer. Texture coordinates are emitted in lock-step.
//
// Loop counts come from AngleBands and HeightRows rather than from
// comparing an accumulated float, so the output length is deterministic.
// The last height row is pinned to HeightEnd and the paired angle never
// passes AngleEnd, which closes the revolution exactly.
func Tessellate(p Params) ([]math.Vec3, []math.Vec2, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	bands := p.AngleBands()
	rows := p.HeightRows()
	n := 2 * bands * rows

	vertices := make([]math.Vec3, 0, n)
	texCoords := make([]math.Vec2, 0, n)
	heightSpan := p.HeightEnd - p.HeightStart

	for i := 0; i < bands; i++ {
		angle := p.AngleStart + float64(i)*p.AngleStep
		next := min(angle+p.AngleStep, p.AngleEnd)

		for k := 0; k < rows; k++ {
			h := min(p.HeightStart+float64(k)*p.HeightStep, p.HeightEnd)
			v := float32((h - p.HeightStart) / heightSpan)

			vertices = append(vertices, toVec3(p.Point(angle, h)), toVec3(p.Point(next, h)))
			texCoords = append(texCoords,
				math.Vec2{X: float32(angle / 360), Y: v},
				math.Vec2{X: float32(next / 360), Y: v},
			)
		}
	}

	return vertices, texCoords, nil
}

// Generate tessellates the surface and estimates its normals with the
// default pairwise adjacency scan.
func Generate(p Params) (*Mesh, error) {
	return GenerateWith(p, normals.PairwiseScan{})
}

// GenerateWith tessellates the surface and estimates its normals with the
// given adjacency strategy. Parameters too dense for the strategy are
// rejected with ErrInvalidParams before any work is done.
func GenerateWith(p Params, strategy normals.AdjacencyStrategy) (*Mesh, error) {
	if err := p.ValidateFor(strategy); err != nil {
		return nil, err
	}

	vertices, texCoords, err := Tessellate(p)
	if err != nil {
		return nil, err
	}

	norms, stats := normals.EstimateWithStats(vertices, strategy)
	if stats.Degenerate > 0 {
		logger.Debug("degenerate normals replaced with fallback",
			zap.Int("triangles", stats.Degenerate),
		)
	}

	logger.Debug("surface generated",
		zap.Int("vertices", len(vertices)),
		zap.Int("bands", p.AngleBands()),
		zap.Int("rows", p.HeightRows()),
		zap.Int("triangles", stats.Triangles),
		zap.Int("adjacentPairs", stats.AdjacentPairs),
	)

	return &Mesh{
		Vertices:  vertices,
		Normals:   norms,
		TexCoords: texCoords,
	}, nil
}

func toVec3(p [3]float64) math.Vec3 {
	return math.Vec3{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])}
}
