package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/humming-top/internal/engine/camera"
	"github.com/Faultbox/humming-top/internal/engine/input"
	"github.com/Faultbox/humming-top/internal/engine/lighting"
	"github.com/Faultbox/humming-top/internal/engine/normals"
	"github.com/Faultbox/humming-top/internal/engine/renderer"
	"github.com/Faultbox/humming-top/internal/engine/surface"
	"github.com/Faultbox/humming-top/internal/logger"
)

// StepDelta is how much +/- change the tessellation step count.
const StepDelta = 10

// Action is a request from the scene that needs the window, GL or the
// desktop to carry out.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionScreenshot
	ActionPickTexture
	ActionResize
)

// Scene is the viewer state that does not touch GL: surface parameters,
// the trackball, the light angle and the dirty flags driving redraws.
type Scene struct {
	params   surface.Params
	steps    int
	strategy normals.AdjacencyStrategy

	trackball *camera.Trackball
	angle     *lighting.AngleControl
	light     lighting.OrbitLight
	material  lighting.Material

	width, height int

	dirty      bool
	regenerate bool
}

// SceneConfig seeds a Scene.
type SceneConfig struct {
	SurfaceHeight float64
	P             float64
	Steps         int
	Strategy      normals.AdjacencyStrategy

	LightAngle  float32
	LightStep   float32
	LightRadius float32
	Material    lighting.Material

	Width  int
	Height int
}

// NewScene creates a scene that needs a full regenerate and draw.
func NewScene(cfg SceneConfig) *Scene {
	s := &Scene{
		params:    surface.ParamsFromStepCount(cfg.SurfaceHeight, cfg.P, cfg.Steps),
		steps:     cfg.Steps,
		strategy:  cfg.Strategy,
		trackball: camera.NewTrackball(cfg.Width, cfg.Height),
		angle:     lighting.NewAngleControl(cfg.LightAngle, cfg.LightStep),
		light:     lighting.NewOrbitLight(cfg.LightRadius),
		material:  cfg.Material,
		width:     cfg.Width,
		height:    cfg.Height,
	}
	if s.strategy == nil {
		s.strategy = normals.PairwiseScan{}
	}
	s.trackball.OnChange = s.OnCameraChanged
	s.Redraw(nil)
	return s
}

// Redraw schedules a surface rebuild before the next draw. A non-nil
// newParams replaces the current parameters if it validates; otherwise the
// current ones are kept and the failure is logged.
func (s *Scene) Redraw(newParams *surface.Params) {
	if newParams != nil {
		if err := newParams.ValidateFor(s.strategy); err != nil {
			logger.Warn("ignoring surface parameters", zap.Error(err))
		} else {
			s.params = *newParams
		}
	}
	s.regenerate = true
	s.dirty = true
}

// SetSurface rebuilds from a step count, as +/- do.
func (s *Scene) SetSurface(height, p float64, steps int) {
	params := surface.ParamsFromStepCount(height, p, steps)
	if err := params.ValidateFor(s.strategy); err != nil {
		logger.Warn("ignoring surface parameters", zap.Error(err))
		return
	}
	s.steps = steps
	s.Redraw(&params)
}

// OnCameraChanged schedules a draw with the current geometry.
func (s *Scene) OnCameraChanged() {
	s.dirty = true
}

// SetMaterial replaces the material and schedules a draw.
func (s *Scene) SetMaterial(m lighting.Material) {
	s.material = m
	s.dirty = true
}

// SetStrategy replaces the normal smoothing strategy and schedules a
// rebuild. The current strategy stays when the surface is too dense for the
// new one.
func (s *Scene) SetStrategy(strategy normals.AdjacencyStrategy) {
	if strategy == nil {
		strategy = normals.PairwiseScan{}
	}
	if err := s.params.ValidateFor(strategy); err != nil {
		logger.Warn("keeping current smoothing", zap.Error(err))
		return
	}
	s.strategy = strategy
	s.Redraw(nil)
}

// Params returns the current surface parameters.
func (s *Scene) Params() surface.Params {
	return s.params
}

// LightAngle returns the light angle in degrees.
func (s *Scene) LightAngle() float32 {
	return s.angle.Degrees()
}

// Size returns the window size the scene was last told about.
func (s *Scene) Size() (int, int) {
	return s.width, s.height
}

// Dirty reports whether a draw is pending.
func (s *Scene) Dirty() bool {
	return s.dirty
}

// NeedsRegenerate reports whether the surface must be rebuilt first.
func (s *Scene) NeedsRegenerate() bool {
	return s.regenerate
}

// BuildMesh regenerates the surface. The regenerate flag is cleared only on
// success.
func (s *Scene) BuildMesh() (*surface.Mesh, error) {
	mesh, err := surface.GenerateWith(s.params, s.strategy)
	if err != nil {
		return nil, err
	}
	s.regenerate = false
	return mesh, nil
}

// Frame returns the uniform set for the current state.
func (s *Scene) Frame() renderer.Frame {
	return renderer.BuildFrame(s.trackball.ViewMatrix(), s.angle.Degrees(), s.light, s.material)
}

// Drawn clears the dirty flag after a successful draw.
func (s *Scene) Drawn() {
	s.dirty = false
}

// Handle applies one input event and returns what the caller must do.
func (s *Scene) Handle(e input.Event) Action {
	switch e.Type {
	case input.EventQuit:
		return ActionQuit

	case input.EventWindowResize:
		s.width, s.height = e.Width, e.Height
		s.trackball.Resize(e.Width, e.Height)
		s.dirty = true
		return ActionResize

	case input.EventExposed:
		s.dirty = true

	case input.EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			s.trackball.BeginDrag(e.MouseX, e.MouseY)
		}

	case input.EventMouseMove:
		s.trackball.Drag(e.MouseX, e.MouseY)

	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			s.trackball.EndDrag()
		}

	case input.EventMouseWheel:
		s.nudgeLight(e.WheelY)

	case input.EventKeyDown:
		return s.handleKey(e)
	}
	return ActionNone
}

func (s *Scene) handleKey(e input.Event) Action {
	switch e.Key {
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit
	case sdl.SCANCODE_LEFT, sdl.SCANCODE_DOWN:
		s.nudgeLight(-1)
	case sdl.SCANCODE_RIGHT, sdl.SCANCODE_UP:
		s.nudgeLight(1)
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		s.changeSteps(StepDelta)
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		s.changeSteps(-StepDelta)
	case sdl.SCANCODE_R:
		if !e.Repeat {
			s.trackball.Reset()
		}
	case sdl.SCANCODE_O:
		if !e.Repeat {
			return ActionPickTexture
		}
	case sdl.SCANCODE_F12:
		if !e.Repeat {
			return ActionScreenshot
		}
	}
	return ActionNone
}

func (s *Scene) nudgeLight(n int) {
	if s.angle.Nudge(n) {
		logger.Debug("light angle", zap.Float32("degrees", s.angle.Degrees()))
		s.dirty = true
	}
}

func (s *Scene) changeSteps(delta int) {
	steps := max(s.steps+delta, 0)
	if steps == s.steps {
		return
	}
	p := surface.ParamsFromStepCount(s.params.Height, s.params.P, steps)
	if err := p.ValidateFor(s.strategy); err != nil {
		logger.Warn("step count rejected", zap.Int("steps", steps), zap.Error(err))
		return
	}
	s.steps = steps
	logger.Info("tessellation steps", zap.Int("steps", steps))
	s.Redraw(&p)
}
