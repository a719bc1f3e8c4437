// Package renderer draws the lit surface and the light indicator with
// OpenGL 4.1 core.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/humming-top/internal/engine/framebuffer"
	"github.com/Faultbox/humming-top/internal/engine/lighting"
	"github.com/Faultbox/humming-top/internal/engine/shader"
	"github.com/Faultbox/humming-top/internal/engine/shader/shaders"
	"github.com/Faultbox/humming-top/internal/engine/surface"
	"github.com/Faultbox/humming-top/internal/logger"
	"github.com/Faultbox/humming-top/pkg/math"
)

var (
	// ErrDeviceUnavailable is returned when no usable GL context exists.
	ErrDeviceUnavailable = errors.New("renderer: graphics device unavailable")
	// ErrNotUploaded is returned by Draw before geometry has been uploaded.
	ErrNotUploaded = errors.New("renderer: geometry not uploaded")
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// RenderContext owns every GL object used to draw a frame.
// IMPORTANT: all methods must be called on the thread owning the GL context.
type RenderContext struct {
	config Config

	program uint32
	loc     shader.Locations

	surfaceVAO   uint32
	surfaceVBO   uint32
	surfaceCount int32

	lightVAO   uint32
	lightVBO   uint32
	lightCount int32

	texture  uint32
	textured bool
}

// New initializes GL, compiles the lighting program and creates the vertex
// arrays. On failure every object created so far is released.
func New(cfg Config) (*RenderContext, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &RenderContext{config: cfg}

	program, err := shader.CompileProgram(shaders.LitVertexShader, shaders.LitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("lighting program: %w", err)
	}
	r.program = program
	r.loc = shader.Locate(program)
	if missing := r.loc.Missing(); len(missing) > 0 {
		logger.Debug("inactive shader inputs", zap.Strings("names", missing))
	}

	gl.GenVertexArrays(1, &r.surfaceVAO)
	gl.GenBuffers(1, &r.surfaceVBO)
	gl.GenVertexArrays(1, &r.lightVAO)
	gl.GenBuffers(1, &r.lightVBO)
	r.bindSurfaceLayout()
	r.bindLightLayout()

	if err := r.createDefaultTexture(); err != nil {
		r.Close()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close releases all GL objects. It is safe to call more than once.
func (r *RenderContext) Close() {
	logger.Info("closing renderer")
	if r.surfaceVAO != 0 {
		gl.DeleteVertexArrays(1, &r.surfaceVAO)
		r.surfaceVAO = 0
	}
	if r.surfaceVBO != 0 {
		gl.DeleteBuffers(1, &r.surfaceVBO)
		r.surfaceVBO = 0
	}
	if r.lightVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lightVAO)
		r.lightVAO = 0
	}
	if r.lightVBO != 0 {
		gl.DeleteBuffers(1, &r.lightVBO)
		r.lightVBO = 0
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	r.surfaceCount, r.lightCount = 0, 0
}

// Resize sets the viewport.
func (r *RenderContext) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the current viewport size.
func (r *RenderContext) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// UploadSurface replaces the surface vertex buffer with mesh.
func (r *RenderContext) UploadSurface(mesh *surface.Mesh) {
	data := mesh.Interleaved()
	gl.BindBuffer(gl.ARRAY_BUFFER, r.surfaceVBO)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.surfaceCount = int32(mesh.VertexCount())

	logger.Debug("surface uploaded", zap.Int32("vertices", r.surfaceCount))
}

// UploadLight replaces the light indicator buffer.
func (r *RenderContext) UploadLight(segment [2]math.Vec3) {
	data := lighting.SegmentData(segment)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lightVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.lightCount = int32(len(data) / 3)
}

// Draw clears the framebuffer and draws the surface followed by the light
// indicator.
func (r *RenderContext) Draw(frame Frame) error {
	if r.surfaceCount == 0 || r.lightCount == 0 {
		return ErrNotUploaded
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
	r.setFrameUniforms(frame)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.Uniform1i(r.loc.Sampler, 0)

	gl.Uniform1i(r.loc.Lit, 1)
	gl.Uniform1i(r.loc.Textured, boolToInt(r.textured))
	gl.BindVertexArray(r.surfaceVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, r.surfaceCount)

	gl.Uniform1i(r.loc.Lit, 0)
	gl.Uniform1i(r.loc.Textured, 0)
	gl.Uniform4fv(r.loc.Color, 1, &frame.LineColor[0])
	gl.BindVertexArray(r.lightVAO)
	gl.DrawArrays(gl.LINES, 0, r.lightCount)

	gl.BindVertexArray(0)
	return nil
}

func (r *RenderContext) setFrameUniforms(f Frame) {
	m := f.Matrices
	gl.UniformMatrix4fv(r.loc.MVP, 1, false, m.ModelViewProjection.Ptr())
	gl.UniformMatrix4fv(r.loc.NormalMatrix, 1, false, m.Normal.Ptr())
	gl.UniformMatrix4fv(r.loc.ModelView, 1, false, m.ModelView.Ptr())

	mat := f.Material
	gl.Uniform4fv(r.loc.Color, 1, &mat.Color[0])
	gl.Uniform3fv(r.loc.AmbientColor, 1, &mat.AmbientColor[0])
	gl.Uniform3fv(r.loc.DiffuseColor, 1, &mat.DiffuseColor[0])
	gl.Uniform3fv(r.loc.SpecularColor, 1, &mat.SpecularColor[0])
	gl.Uniform1f(r.loc.AmbientCoefficient, mat.AmbientCoefficient)
	gl.Uniform1f(r.loc.DiffuseCoefficient, mat.DiffuseCoefficient)
	gl.Uniform1f(r.loc.SpecularCoefficient, mat.SpecularCoefficient)
	gl.Uniform1f(r.loc.Shininess, mat.Shininess)

	gl.Uniform3f(r.loc.LightPosition, f.LightWorld.X, f.LightWorld.Y, f.LightWorld.Z)
}

// ReadPixels reads the back buffer as tightly packed RGBA rows, bottom row
// first.
func (r *RenderContext) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Capture draws frame into an offscreen target scale times the viewport
// size and returns its pixels in the same layout as ReadPixels. A scale of
// 1 or less reads the back buffer after drawing.
func (r *RenderContext) Capture(frame Frame, scale int) ([]byte, int, int, error) {
	if scale <= 1 {
		if err := r.Draw(frame); err != nil {
			return nil, 0, 0, err
		}
		pixels, w, h := r.ReadPixels()
		return pixels, w, h, nil
	}

	w, h := framebuffer.Scaled(r.config.Width, r.config.Height, scale)
	fb, err := framebuffer.New(w, h)
	if err != nil {
		return nil, 0, 0, err
	}
	defer fb.Destroy()

	restore := fb.Bind()
	err = r.Draw(frame)
	pixels := fb.ReadPixels()
	restore()
	if err != nil {
		return nil, 0, 0, err
	}
	return pixels, int(w), int(h), nil
}

// Textured reports whether a loaded texture is bound.
func (r *RenderContext) Textured() bool {
	return r.textured
}

// SetTexture uploads img into the surface texture, replacing whatever was
// there. img must already be flipped for GL.
func (r *RenderContext) SetTexture(img *image.RGBA) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	r.uploadTexture(int32(b.Dx()), int32(b.Dy()), img.Pix)
	r.textured = true
	logger.Debug("texture bound", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
}

func (r *RenderContext) createDefaultTexture() error {
	gl.GenTextures(1, &r.texture)
	if r.texture == 0 {
		return fmt.Errorf("%w: texture allocation failed", ErrDeviceUnavailable)
	}
	white := []byte{255, 255, 255, 255}
	r.uploadTexture(1, 1, white)
	r.textured = false
	return nil
}

func (r *RenderContext) uploadTexture(w, h int32, pix []byte) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// bindSurfaceLayout describes the interleaved position/normal/uv buffer.
func (r *RenderContext) bindSurfaceLayout() {
	stride := int32(surface.FloatsPerVertex * 4)
	gl.BindVertexArray(r.surfaceVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.surfaceVBO)
	attribPointer(r.loc.Vertex, 3, stride, 0)
	attribPointer(r.loc.Normal, 3, stride, 3*4)
	attribPointer(r.loc.TexCoord, 2, stride, 6*4)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (r *RenderContext) bindLightLayout() {
	gl.BindVertexArray(r.lightVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lightVBO)
	attribPointer(r.loc.Vertex, 3, 3*4, 0)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// attribPointer enables a float attribute; inactive attributes (-1) are
// skipped.
func attribPointer(loc int32, size, stride int32, offset uintptr) {
	if loc < 0 {
		return
	}
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, false, stride, offset)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
