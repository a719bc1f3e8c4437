package config

import "flag"

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed      = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen    = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth         = flag.Int("width", 0, "Window width")
	flagHeight        = flag.Int("height", 0, "Window height")
	flagSteps         = flag.Int("steps", -1, "Tessellation steps per axis")
	flagSurfaceHeight = flag.Float64("surface-height", 0, "Half-height of the humming-top")
	flagP             = flag.Float64("p", 0, "Curvature coefficient")
	flagTexture       = flag.String("texture", "", "Texture file path or http(s) URL")
	flagSmoothing     = flag.String("smoothing", "", "Normal smoothing: pairwise or shared")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSteps >= 0 {
		cfg.Surface.Steps = *flagSteps
	}
	if *flagSurfaceHeight != 0 {
		cfg.Surface.Height = *flagSurfaceHeight
	}
	if *flagP != 0 {
		cfg.Surface.P = *flagP
	}
	if *flagTexture != "" {
		cfg.Texture.Source = *flagTexture
	}
	if *flagSmoothing != "" {
		cfg.Surface.Smoothing = *flagSmoothing
	}
}
