package surface

import (
	"github.com/Faultbox/humming-top/pkg/math"
)

// FloatsPerVertex is the interleaved layout: position(3) normal(3) uv(2).
const FloatsPerVertex = 8

// Mesh holds the strip vertices with parallel normals and texture
// coordinates, index-aligned.
type Mesh struct {
	Vertices  []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// VertexCount returns the number of strip vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Interleaved packs the mesh into a single float slice ready for a vertex
// buffer. Missing normals or texture coordinates are written as zeros.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for i, p := range m.Vertices {
		var n math.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		var uv math.Vec2
		if i < len(m.TexCoords) {
			uv = m.TexCoords[i]
		}
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z, uv.X, uv.Y)
	}
	return out
}

// Bounds returns the bounding box of the vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, p := range m.Vertices[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}
