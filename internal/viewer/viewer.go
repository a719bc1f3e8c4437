// Package viewer runs the interactive humming-top window: it owns the
// window and render context, turns input into scene changes and redraws
// only when something changed.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/humming-top/internal/config"
	"github.com/Faultbox/humming-top/internal/engine/debug"
	"github.com/Faultbox/humming-top/internal/engine/input"
	"github.com/Faultbox/humming-top/internal/engine/normals"
	"github.com/Faultbox/humming-top/internal/engine/renderer"
	"github.com/Faultbox/humming-top/internal/engine/surface"
	"github.com/Faultbox/humming-top/internal/engine/texture"
	"github.com/Faultbox/humming-top/internal/engine/window"
	"github.com/Faultbox/humming-top/internal/logger"
)

// Title is the window title.
const Title = "Humming Top"

// idleDelay is how long the loop sleeps when nothing needs drawing.
const idleDelay = 10 * time.Millisecond

// Viewer is the main loop. All methods must run on the main thread.
type Viewer struct {
	cfg *config.Config

	window      *window.Window
	renderer    *renderer.RenderContext
	input       *input.Input
	scene       *Scene
	loader      *texture.Loader
	screenshots *debug.ScreenshotCapture

	reloads chan *config.Config
	picks   chan string

	ctx    context.Context
	cancel context.CancelFunc

	running bool
}

// New creates the window and render context and starts loading the
// configured texture.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("steps", cfg.Surface.Steps),
	)

	ctx, cancel := context.WithCancel(context.Background())
	v := &Viewer{
		cfg:         cfg,
		input:       input.New(),
		loader:      texture.NewLoader(),
		screenshots: debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix),
		reloads:     make(chan *config.Config, 1),
		picks:       make(chan string, 1),
		ctx:         ctx,
		cancel:      cancel,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fbWidth, fbHeight := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      fbWidth,
		Height:     fbHeight,
		ClearColor: [4]float32{0, 0, 0, 1},
	})
	if err != nil {
		v.window.Close()
		cancel()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	width, height := v.window.Size()
	v.scene = NewScene(SceneConfig{
		SurfaceHeight: cfg.Surface.Height,
		P:             cfg.Surface.P,
		Steps:         cfg.Surface.Steps,
		Strategy:      cfg.Surface.Strategy(),
		LightAngle:    cfg.Light.Angle,
		LightStep:     cfg.Light.Step,
		LightRadius:   cfg.Light.Radius,
		Material:      cfg.Material.Material(),
		Width:         width,
		Height:        height,
	})

	if cfg.Texture.Source != "" {
		v.loader.Start(ctx, cfg.Texture.Source)
	}

	logger.Info("viewer initialized")
	return v, nil
}

// Watch reloads the config at path on every write. Surface changes trigger
// a Redraw on the main thread.
func (v *Viewer) Watch(path string) error {
	return config.Watch(v.ctx, path, func(c *config.Config) {
		// Keep only the newest reload if the loop has not caught up.
		select {
		case <-v.reloads:
		default:
		}
		v.reloads <- c
	})
}

// Redraw regenerates the surface before the next draw, with newParams if
// non-nil.
func (v *Viewer) Redraw(newParams *surface.Params) {
	v.scene.Redraw(newParams)
}

// OnCameraChanged schedules a draw with the current geometry.
func (v *Viewer) OnCameraChanged() {
	v.scene.OnCameraChanged()
}

// Run processes input and draws until the window is closed.
func (v *Viewer) Run() error {
	v.running = true
	logger.Info("starting viewer loop")

	var frameInterval time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameInterval = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	for v.running {
		start := time.Now()

		if v.input.Update() {
			v.running = false
		}
		for _, event := range v.input.Events() {
			v.dispatch(v.scene.Handle(event))
		}
		if !v.running {
			break
		}

		v.poll()

		if !v.scene.Dirty() {
			time.Sleep(idleDelay)
			continue
		}
		if err := v.draw(); err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		v.window.SwapBuffers()

		if elapsed := time.Since(start); elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
	}
	return nil
}

// Close stops background work and releases GL and SDL resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	v.cancel()
	v.loader.Wait()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) dispatch(action Action) {
	switch action {
	case ActionQuit:
		v.running = false
	case ActionResize:
		v.renderer.Resize(v.window.DrawableSize())
	case ActionScreenshot:
		v.screenshot()
	case ActionPickTexture:
		go func() {
			if path, ok := texture.Pick(); ok {
				select {
				case v.picks <- path:
				case <-v.ctx.Done():
				}
			}
		}()
	}
}

// poll drains finished background work without blocking.
func (v *Viewer) poll() {
	for {
		select {
		case res := <-v.loader.Results():
			if !v.loader.Latest(res) {
				logger.Debug("discarding superseded texture", zap.String("source", res.Source))
			} else if res.Err == nil {
				v.renderer.SetTexture(res.Image)
				v.scene.OnCameraChanged()
			}
		case path := <-v.picks:
			v.loader.Start(v.ctx, path)
		case c := <-v.reloads:
			v.applyConfig(c)
		default:
			return
		}
	}
}

// applyConfig takes over the settings that can change while running.
func (v *Viewer) applyConfig(c *config.Config) {
	old := v.cfg
	// Pairwise smoothing has the tighter limit, so the surface shrinks
	// before switching to it and grows only after leaving it.
	strategyChanged := c.Surface.Smoothing != old.Surface.Smoothing
	_, toPairwise := c.Surface.Strategy().(normals.PairwiseScan)
	if strategyChanged && !toPairwise {
		v.scene.SetStrategy(c.Surface.Strategy())
	}
	if c.Surface.Params() != old.Surface.Params() {
		v.scene.SetSurface(c.Surface.Height, c.Surface.P, c.Surface.Steps)
	}
	if strategyChanged && toPairwise {
		v.scene.SetStrategy(c.Surface.Strategy())
	}
	v.scene.SetMaterial(c.Material.Material())
	if c.Texture.Source != "" && c.Texture.Source != old.Texture.Source {
		v.loader.Start(v.ctx, c.Texture.Source)
	}
	if c.Logging.Level != old.Logging.Level {
		logger.SetLevel(c.Logging.Level)
	}

	// Window settings only apply at startup.
	c.Graphics = old.Graphics
	v.cfg = c
}

// draw rebuilds the surface if needed and renders one frame.
func (v *Viewer) draw() error {
	if err := v.upload(); err != nil {
		return err
	}
	if err := v.renderer.Draw(v.scene.Frame()); err != nil {
		return err
	}
	v.scene.Drawn()
	return nil
}

// upload regenerates the surface when required and refreshes the light
// indicator.
func (v *Viewer) upload() error {
	if v.scene.NeedsRegenerate() {
		mesh, err := v.scene.BuildMesh()
		if err != nil {
			return err
		}
		v.renderer.UploadSurface(mesh)
	}
	v.renderer.UploadLight(v.scene.Frame().Segment)
	return nil
}

// screenshot renders the current frame at the configured scale and writes
// it to disk.
func (v *Viewer) screenshot() {
	if err := v.upload(); err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	pixels, w, h, err := v.renderer.Capture(v.scene.Frame(), v.cfg.Screenshot.Scale)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	name, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name), zap.Int("width", w), zap.Int("height", h))
	v.scene.OnCameraChanged()
}
