package shader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Faultbox/humming-top/internal/engine/shader/shaders"
)

func TestCompileErrorMessage(t *testing.T) {
	err := fmt.Errorf("renderer: %w", &CompileError{Stage: "fragment", Log: "0:12: syntax error"})

	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("errors.As did not find *CompileError in %v", err)
	}
	if ce.Stage != "fragment" {
		t.Errorf("Stage = %q, want fragment", ce.Stage)
	}
	if got, want := ce.Error(), "fragment shader: 0:12: syntax error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLinkErrorMessage(t *testing.T) {
	err := fmt.Errorf("renderer: %w", &LinkError{Log: "missing main"})

	var le *LinkError
	if !errors.As(err, &le) {
		t.Fatalf("errors.As did not find *LinkError in %v", err)
	}
	if got, want := le.Error(), "link: missing main"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	var ce *CompileError
	if errors.As(err, &ce) {
		t.Error("link error matched *CompileError")
	}
}

func TestTrimLog(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("error\x00"), "error"},
		{[]byte("error\n\x00\x00"), "error\n"},
		{[]byte("clean"), "clean"},
		{[]byte{0}, ""},
	}
	for _, tt := range tests {
		if got := trimLog(tt.in); got != tt.want {
			t.Errorf("trimLog(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmbeddedSourcesDeclareContractNames(t *testing.T) {
	vert := shaders.LitVertexShader
	frag := shaders.LitFragmentShader
	for _, src := range []string{vert, frag} {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("shader does not start with #version 410 core: %.40q", src)
		}
	}

	for _, name := range []string{AttribVertex, AttribNormal, AttribTexCoord} {
		if !strings.Contains(vert, "in vec") || !strings.Contains(vert, " "+name+";") {
			t.Errorf("vertex shader missing attribute %q", name)
		}
	}
	for _, name := range []string{UniformMVP, UniformNormalMatrix, UniformModelView} {
		if !strings.Contains(vert, "uniform mat4 "+name+";") {
			t.Errorf("vertex shader missing uniform %q", name)
		}
	}
	for _, name := range []string{
		UniformColor, UniformAmbientColor, UniformDiffuseColor, UniformSpecularColor,
		UniformAmbientCoefficient, UniformDiffuseCoefficient, UniformSpecularCoefficient,
		UniformShininess, UniformLightPosition, UniformSampler, UniformTextured, UniformLit,
	} {
		if !strings.Contains(frag, " "+name+";") {
			t.Errorf("fragment shader missing uniform %q", name)
		}
	}
}

func TestMissingLocations(t *testing.T) {
	loc := Locations{Vertex: 0, Normal: 1, TexCoord: -1, Sampler: -1}
	missing := loc.Missing()
	if len(missing) != 2 || missing[0] != UniformSampler || missing[1] != AttribTexCoord {
		t.Errorf("Missing() = %v, want [sampler texCoord]", missing)
	}
}
