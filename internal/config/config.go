// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/humming-top/internal/engine/lighting"
	"github.com/Faultbox/humming-top/internal/engine/normals"
	"github.com/Faultbox/humming-top/internal/engine/surface"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Smoothing strategy names.
const (
	SmoothingPairwise = "pairwise"
	SmoothingShared   = "shared"
)

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Surface    SurfaceConfig    `yaml:"surface"`
	Light      LightConfig      `yaml:"light"`
	Material   MaterialConfig   `yaml:"material"`
	Texture    TextureConfig    `yaml:"texture"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Samples    int  `yaml:"samples"`
}

// SurfaceConfig controls the humming-top shape and tessellation.
type SurfaceConfig struct {
	Height    float64 `yaml:"height"`
	P         float64 `yaml:"p"`
	Steps     int     `yaml:"steps"`
	Smoothing string  `yaml:"smoothing"` // pairwise or shared
}

// LightConfig controls the orbiting light.
type LightConfig struct {
	Radius float32 `yaml:"radius"`
	Angle  float32 `yaml:"angle"` // initial angle in degrees
	Step   float32 `yaml:"step"`  // degrees per key press or wheel notch
}

// MaterialConfig holds the Phong terms.
type MaterialConfig struct {
	AmbientColor        []float32 `yaml:"ambient_color"`
	DiffuseColor        []float32 `yaml:"diffuse_color"`
	SpecularColor       []float32 `yaml:"specular_color"`
	AmbientCoefficient  float32   `yaml:"ambient_coefficient"`
	DiffuseCoefficient  float32   `yaml:"diffuse_coefficient"`
	SpecularCoefficient float32   `yaml:"specular_coefficient"`
	Shininess           float32   `yaml:"shininess"`
}

// TextureConfig names the surface texture, a file path or http(s) URL.
type TextureConfig struct {
	Source string `yaml:"source"`
}

// ScreenshotConfig controls F12 captures.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Scale  int    `yaml:"scale"` // capture size as a multiple of the window
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	m := lighting.DefaultMaterial()
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
			Samples:    4,
		},
		Surface: SurfaceConfig{
			Height:    1.5,
			P:         1,
			Steps:     100,
			Smoothing: SmoothingPairwise,
		},
		Light: LightConfig{
			Radius: lighting.DefaultOrbitRadius,
			Angle:  0,
			Step:   5,
		},
		Material: MaterialConfig{
			AmbientColor:        m.AmbientColor[:],
			DiffuseColor:        m.DiffuseColor[:],
			SpecularColor:       m.SpecularColor[:],
			AmbientCoefficient:  m.AmbientCoefficient,
			DiffuseCoefficient:  m.DiffuseCoefficient,
			SpecularCoefficient: m.SpecularCoefficient,
			Shininess:           m.Shininess,
		},
		Screenshot: ScreenshotConfig{
			Prefix: "humtop",
			Scale:  1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Surface.Steps < 0 {
		return fmt.Errorf("%w: surface.steps must not be negative, got %d", ErrInvalidConfig, c.Surface.Steps)
	}
	switch c.Surface.Smoothing {
	case "", SmoothingPairwise, SmoothingShared:
	default:
		return fmt.Errorf("%w: unknown smoothing %q", ErrInvalidConfig, c.Surface.Smoothing)
	}
	if err := c.Surface.Params().ValidateFor(c.Surface.Strategy()); err != nil {
		return fmt.Errorf("%w: surface: %w", ErrInvalidConfig, err)
	}
	if isBad32(c.Light.Radius) || c.Light.Radius <= 0 {
		return fmt.Errorf("%w: light.radius must be positive, got %v", ErrInvalidConfig, c.Light.Radius)
	}
	if isBad32(c.Light.Angle) || isBad32(c.Light.Step) {
		return fmt.Errorf("%w: light angle and step must be finite", ErrInvalidConfig)
	}
	for name, col := range map[string][]float32{
		"ambient_color":  c.Material.AmbientColor,
		"diffuse_color":  c.Material.DiffuseColor,
		"specular_color": c.Material.SpecularColor,
	} {
		if col != nil && len(col) != 3 {
			return fmt.Errorf("%w: material.%s needs 3 components, got %d", ErrInvalidConfig, name, len(col))
		}
	}
	if c.Screenshot.Scale < 0 || c.Screenshot.Scale > 8 {
		return fmt.Errorf("%w: screenshot.scale must be in [0, 8], got %d", ErrInvalidConfig, c.Screenshot.Scale)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// Params converts the surface section into tessellation parameters.
func (s SurfaceConfig) Params() surface.Params {
	return surface.ParamsFromStepCount(s.Height, s.P, s.Steps)
}

// Strategy returns the adjacency strategy named by Smoothing.
func (s SurfaceConfig) Strategy() normals.AdjacencyStrategy {
	if s.Smoothing == SmoothingShared {
		return normals.SharedPosition{}
	}
	return normals.PairwiseScan{}
}

// Material converts the material section, keeping defaults for missing
// colours.
func (m MaterialConfig) Material() lighting.Material {
	out := lighting.DefaultMaterial()
	copy(out.AmbientColor[:], m.AmbientColor)
	copy(out.DiffuseColor[:], m.DiffuseColor)
	copy(out.SpecularColor[:], m.SpecularColor)
	out.AmbientCoefficient = m.AmbientCoefficient
	out.DiffuseCoefficient = m.DiffuseCoefficient
	out.SpecularCoefficient = m.SpecularCoefficient
	out.Shininess = m.Shininess
	return out.Clamp()
}

func isBad32(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
