// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms surface vertices and passes eye-space positions
// and normals to the fragment stage.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader is the Phong fragment shader with optional texture
// modulation. lightPosition is in world space.
//
//go:embed lit.frag
var LitFragmentShader string
