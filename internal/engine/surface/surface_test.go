package surface

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/humming-top/internal/engine/normals"
)

func TestRadius(t *testing.T) {
	p := DefaultParams()

	assert.InDelta(t, 1.125, p.Radius(0), 1e-12)
	assert.InDelta(t, 0, p.Radius(1.5), 1e-12)
	assert.InDelta(t, 0, p.Radius(-1.5), 1e-12)
	assert.Equal(t, p.Radius(0.4), p.Radius(-0.4), "radius is symmetric in h")
}

func TestSurfaceEquationHolds(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params Params
	}{
		{"default", DefaultParams()},
		{"negative p", ParamsFromStepCount(2, -2, 20)},
		{"tall and coarse", ParamsFromStepCount(4, 0.5, 7)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			verts, _, err := Tessellate(tc.params)
			require.NoError(t, err)

			for i, v := range verts {
				r := tc.params.Radius(float64(v.Y))
				got := float64(v.X)*float64(v.X) + float64(v.Z)*float64(v.Z)
				assert.InDelta(t, r*r, got, 1e-4*(1+r*r), "vertex %d", i)
			}
		})
	}
}

func TestVertexCount(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 101, p.AngleBands())
	assert.Equal(t, 102, p.HeightRows())

	verts, uvs, err := Tessellate(p)
	require.NoError(t, err)
	assert.Len(t, verts, 2*101*102)
	assert.Len(t, uvs, len(verts))
	assert.Equal(t, p.VertexCount(), len(verts))
	assert.Zero(t, len(verts)%2)
}

func TestUnevenStepsClampToRange(t *testing.T) {
	p := Params{
		Height: 1.5, P: 1,
		AngleStart: 0, AngleEnd: 360, AngleStep: 100,
		HeightStart: -1.5, HeightEnd: 1.5, HeightStep: 0.7,
	}
	assert.Equal(t, 4, p.AngleBands())
	assert.Equal(t, 6, p.HeightRows())

	verts, uvs, err := Tessellate(p)
	require.NoError(t, err)
	require.Len(t, verts, 2*4*6)

	// Last row sits exactly on the top of the range.
	assert.Equal(t, float32(1.5), verts[2*5].Y)
	// The final band's paired angle stops at 360 instead of 400.
	last := uvs[len(uvs)-1]
	assert.InDelta(t, 1.0, last.X, 1e-6)
}

func TestMeshClosesAtFullRevolution(t *testing.T) {
	p := DefaultParams()
	assert.InDelta(t, 3.5644, p.AngleStep, 1e-4)
	assert.InDelta(t, 0.0297, p.HeightStep, 1e-4)

	verts, _, err := Tessellate(p)
	require.NoError(t, err)

	rows := p.HeightRows()
	lastBand := p.AngleBands() - 1
	for k := 0; k < rows; k++ {
		start := verts[2*k]                 // angle 0
		end := verts[2*(lastBand*rows+k)+1] // paired angle 360
		assert.True(t, start.ApproxEqual(end, 1e-6), "row %d: %v vs %v", k, start, end)
	}
}

func TestTextureCoordinates(t *testing.T) {
	p := ParamsFromStepCount(1, 1, 3)
	_, uvs, err := Tessellate(p)
	require.NoError(t, err)

	for i, uv := range uvs {
		assert.GreaterOrEqual(t, uv.X, float32(0), "u %d", i)
		assert.LessOrEqual(t, uv.X, float32(1), "u %d", i)
		assert.GreaterOrEqual(t, uv.Y, float32(0), "v %d", i)
		assert.LessOrEqual(t, uv.Y, float32(1), "v %d", i)
	}
	assert.Equal(t, float32(0), uvs[0].Y)
	assert.InDelta(t, 0.25, uvs[1].X, 1e-6, "paired vertex is one band over")
	assert.Equal(t, float32(1), uvs[len(uvs)-1].Y)
}

func TestValidate(t *testing.T) {
	good := DefaultParams()
	require.NoError(t, good.Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero height", func(p *Params) { p.Height = 0 }},
		{"negative height", func(p *Params) { p.Height = -1 }},
		{"zero p", func(p *Params) { p.P = 0 }},
		{"nan p", func(p *Params) { p.P = math.NaN() }},
		{"zero angle step", func(p *Params) { p.AngleStep = 0 }},
		{"negative height step", func(p *Params) { p.HeightStep = -0.1 }},
		{"infinite angle step", func(p *Params) { p.AngleStep = math.Inf(1) }},
		{"empty angle range", func(p *Params) { p.AngleEnd = p.AngleStart }},
		{"tiny step", func(p *Params) { p.HeightStep = 1e-12 }},
		{"too many vertices", func(p *Params) { p.AngleStep, p.HeightStep = 0.01, 0.0001 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := good
			tt.mutate(&p)
			err := p.Validate()
			assert.ErrorIs(t, err, ErrInvalidParams)

			_, _, err = Tessellate(p)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestGenerateProducesUnitNormals(t *testing.T) {
	m, err := Generate(ParamsFromStepCount(1.5, 1, 12))
	require.NoError(t, err)

	require.Len(t, m.Normals, m.VertexCount())
	require.Len(t, m.TexCoords, m.VertexCount())
	for i, n := range m.Normals {
		assert.InDelta(t, 1, n.Length(), 1e-5, "normal %d", i)
	}
}

func TestGenerateWithStrategy(t *testing.T) {
	p := ParamsFromStepCount(1.5, 1, 6)

	loose, err := GenerateWith(p, normals.PairwiseScan{})
	require.NoError(t, err)
	shared, err := GenerateWith(p, normals.SharedPosition{})
	require.NoError(t, err)

	assert.Equal(t, loose.Vertices, shared.Vertices)
	assert.Len(t, shared.Normals, len(loose.Normals))
}

func TestPairwiseTriangleLimit(t *testing.T) {
	assert.NoError(t, ParamsFromStepCount(1.5, 1, 150).ValidateFor(normals.PairwiseScan{}))

	dense := ParamsFromStepCount(1.5, 1, 300)
	require.NoError(t, dense.Validate(), "within the vertex limit")
	assert.ErrorIs(t, dense.ValidateFor(normals.PairwiseScan{}), ErrInvalidParams)
	assert.NoError(t, dense.ValidateFor(normals.SharedPosition{}))

	_, err := GenerateWith(ParamsFromStepCount(1.5, 1, 1400), normals.PairwiseScan{})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestInterleaved(t *testing.T) {
	m, err := Generate(ParamsFromStepCount(1, 1, 2))
	require.NoError(t, err)

	data := m.Interleaved()
	require.Len(t, data, m.VertexCount()*FloatsPerVertex)

	i := 5
	base := i * FloatsPerVertex
	assert.Equal(t, m.Vertices[i].X, data[base])
	assert.Equal(t, m.Normals[i].Y, data[base+4])
	assert.Equal(t, m.TexCoords[i].Y, data[base+7])
}

func TestBounds(t *testing.T) {
	verts, _, err := Tessellate(DefaultParams())
	require.NoError(t, err)

	b := (&Mesh{Vertices: verts}).Bounds()
	assert.InDelta(t, -1.5, b.Min.Y, 1e-6)
	assert.InDelta(t, 1.5, b.Max.Y, 1e-6)
	// The widest ring sits near h=0 where r approaches 1.125.
	assert.LessOrEqual(t, b.Max.X, float32(1.125))
	assert.Greater(t, b.Max.X, float32(1.1))
	assert.GreaterOrEqual(t, b.Min.X, float32(-1.125))
	assert.Less(t, b.Min.X, float32(-1.1))

	assert.Equal(t, Bounds{}, (&Mesh{}).Bounds())
}
