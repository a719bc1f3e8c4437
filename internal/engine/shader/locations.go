package shader

import (
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute names of the lighting program.
const (
	AttribVertex   = "vertex"
	AttribNormal   = "normal"
	AttribTexCoord = "texCoord"
)

// Uniform names of the lighting program.
const (
	UniformMVP                 = "ModelViewProjectionMatrix"
	UniformNormalMatrix        = "normalMat"
	UniformModelView           = "modelView"
	UniformColor               = "color"
	UniformAmbientColor        = "ambientColor"
	UniformDiffuseColor        = "diffuseColor"
	UniformSpecularColor       = "specularColor"
	UniformAmbientCoefficient  = "ambientCoefficient"
	UniformDiffuseCoefficient  = "diffuseCoefficient"
	UniformSpecularCoefficient = "specularCoefficient"
	UniformShininess           = "shininess"
	UniformLightPosition       = "lightPosition"
	UniformSampler             = "sampler"
	UniformTextured            = "textured"
	UniformLit                 = "lit"
)

// Locations holds every attribute and uniform location of the lighting
// program. Names the driver optimized away resolve to -1; GL ignores
// uniform writes to -1 and the renderer skips -1 attributes.
type Locations struct {
	Vertex   int32
	Normal   int32
	TexCoord int32

	MVP                 int32
	NormalMatrix        int32
	ModelView           int32
	Color               int32
	AmbientColor        int32
	DiffuseColor        int32
	SpecularColor       int32
	AmbientCoefficient  int32
	DiffuseCoefficient  int32
	SpecularCoefficient int32
	Shininess           int32
	LightPosition       int32
	Sampler             int32
	Textured            int32
	Lit                 int32
}

// Locate resolves all locations of program.
func Locate(program uint32) Locations {
	return Locations{
		Vertex:   GetAttrib(program, AttribVertex),
		Normal:   GetAttrib(program, AttribNormal),
		TexCoord: GetAttrib(program, AttribTexCoord),

		MVP:                 GetUniform(program, UniformMVP),
		NormalMatrix:        GetUniform(program, UniformNormalMatrix),
		ModelView:           GetUniform(program, UniformModelView),
		Color:               GetUniform(program, UniformColor),
		AmbientColor:        GetUniform(program, UniformAmbientColor),
		DiffuseColor:        GetUniform(program, UniformDiffuseColor),
		SpecularColor:       GetUniform(program, UniformSpecularColor),
		AmbientCoefficient:  GetUniform(program, UniformAmbientCoefficient),
		DiffuseCoefficient:  GetUniform(program, UniformDiffuseCoefficient),
		SpecularCoefficient: GetUniform(program, UniformSpecularCoefficient),
		Shininess:           GetUniform(program, UniformShininess),
		LightPosition:       GetUniform(program, UniformLightPosition),
		Sampler:             GetUniform(program, UniformSampler),
		Textured:            GetUniform(program, UniformTextured),
		Lit:                 GetUniform(program, UniformLit),
	}
}

// Missing returns the names of locations that resolved to -1.
func (l Locations) Missing() []string {
	var names []string
	for name, loc := range map[string]int32{
		AttribVertex:               l.Vertex,
		AttribNormal:               l.Normal,
		AttribTexCoord:             l.TexCoord,
		UniformMVP:                 l.MVP,
		UniformNormalMatrix:        l.NormalMatrix,
		UniformModelView:           l.ModelView,
		UniformColor:               l.Color,
		UniformAmbientColor:        l.AmbientColor,
		UniformDiffuseColor:        l.DiffuseColor,
		UniformSpecularColor:       l.SpecularColor,
		UniformAmbientCoefficient:  l.AmbientCoefficient,
		UniformDiffuseCoefficient:  l.DiffuseCoefficient,
		UniformSpecularCoefficient: l.SpecularCoefficient,
		UniformShininess:           l.Shininess,
		UniformLightPosition:       l.LightPosition,
		UniformSampler:             l.Sampler,
		UniformTextured:            l.Textured,
		UniformLit:                 l.Lit,
	} {
		if loc < 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// GetUniform returns the uniform location for the given name, or -1.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// GetAttrib returns the attribute location for the given name, or -1.
func GetAttrib(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}
