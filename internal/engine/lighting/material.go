package lighting

// Material holds the Phong terms sent to the lighting shader.
type Material struct {
	Color [4]float32 // flat colour used for untextured primitives such as the light line

	AmbientColor  [3]float32
	DiffuseColor  [3]float32
	SpecularColor [3]float32

	AmbientCoefficient  float32
	DiffuseCoefficient  float32
	SpecularCoefficient float32
	Shininess           float32
}

// DefaultMaterial returns a cyan surface with a white highlight.
func DefaultMaterial() Material {
	return Material{
		Color:               [4]float32{0, 0, 0.8, 1},
		AmbientColor:        [3]float32{1, 1, 1},
		DiffuseColor:        [3]float32{0, 0.8, 0.8},
		SpecularColor:       [3]float32{1, 1, 1},
		AmbientCoefficient:  1,
		DiffuseCoefficient:  1,
		SpecularCoefficient: 1,
		Shininess:           80,
	}
}

// Clamp keeps colours in [0, 1] and coefficients non-negative, and gives
// a non-positive shininess a minimum of 1.
func (m Material) Clamp() Material {
	for i := range m.Color {
		m.Color[i] = clamp01(m.Color[i])
	}
	for i := 0; i < 3; i++ {
		m.AmbientColor[i] = clamp01(m.AmbientColor[i])
		m.DiffuseColor[i] = clamp01(m.DiffuseColor[i])
		m.SpecularColor[i] = clamp01(m.SpecularColor[i])
	}
	m.AmbientCoefficient = max(m.AmbientCoefficient, 0)
	m.DiffuseCoefficient = max(m.DiffuseCoefficient, 0)
	m.SpecularCoefficient = max(m.SpecularCoefficient, 0)
	if m.Shininess <= 0 {
		m.Shininess = 1
	}
	return m
}

func clamp01(v float32) float32 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}
