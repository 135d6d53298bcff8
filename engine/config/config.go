package config

import (
	"fmt"

	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/math"
)

// ViewSource selects which builtin buffer feeds the full resolution view channel.
type ViewSource string

const (
	// ViewSourceColor copies the camera colour target. This is the default.
	ViewSourceColor ViewSource = "color"
	// ViewSourceMotionVectors copies the motion vector buffer into the view channel,
	// matching the behaviour of the first Unity version of this tool.
	ViewSourceMotionVectors ViewSource = "motion_vectors"
)

const (
	MinDownscaleFactor = 2
	MaxDownscaleFactor = 8
	MinSamplingStep    = 1
	MaxSamplingStep    = 500
)

/** @brief Capture settings. Immutable once Validate succeeded. */
type CaptureConfig struct {
	/** @brief Full resolution width of the view channel, in pixels. */
	Width int `toml:"width" yaml:"width"`
	/** @brief Full resolution height of the view channel, in pixels. */
	Height int `toml:"height" yaml:"height"`
	/** @brief Integer divisor giving the depth/motion working resolution. [2..8] */
	DownscaleFactor int `toml:"downscaling_factor" yaml:"downscaling_factor"`
	/** @brief Number of rendered frames between two captures. [1..500] */
	SamplingStep int `toml:"sampling_step" yaml:"sampling_step"`
	/** @brief Source buffer of the view channel. */
	ViewSource ViewSource `toml:"view_source" yaml:"view_source"`
	/** @brief Directory under which OutputData/ is created. */
	OutputRoot string `toml:"output_root" yaml:"output_root"`

	downscaled math.Vec2i
	validated  bool
}

/** @brief Host application settings used by the testbed loop. */
type ApplicationConfig struct {
	Name string `toml:"name" yaml:"name"`
	// Number of frames to render before exiting. 0 runs until interrupted.
	MaxFrames uint64 `toml:"max_frames" yaml:"max_frames"`
	// Target frame rate of the host loop. 0 disables limiting.
	TargetFPS int    `toml:"target_fps" yaml:"target_fps"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	// Enables the fsnotify-based progress log of written frames.
	WatchOutput bool `toml:"watch_output" yaml:"watch_output"`
}

type Config struct {
	Application ApplicationConfig `toml:"application" yaml:"application"`
	Capture     CaptureConfig     `toml:"capture" yaml:"capture"`
}

func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:      "Depth Motion Capture",
			MaxFrames: 300,
			TargetFPS: 60,
			LogLevel:  "info",
		},
		Capture: CaptureConfig{
			Width:           1280,
			Height:          720,
			DownscaleFactor: 4,
			SamplingStep:    1,
			ViewSource:      ViewSourceColor,
			OutputRoot:      ".",
		},
	}
}

// Validate checks every field and computes the downscaled resolution once.
func (c *CaptureConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %dx%d", core.ErrInvalidConfig, c.Width, c.Height)
	}
	if !math.InRange(c.DownscaleFactor, MinDownscaleFactor, MaxDownscaleFactor) {
		return fmt.Errorf("%w: downscaling_factor must be in [%d, %d], got %d", core.ErrInvalidConfig, MinDownscaleFactor, MaxDownscaleFactor, c.DownscaleFactor)
	}
	if !math.InRange(c.SamplingStep, MinSamplingStep, MaxSamplingStep) {
		return fmt.Errorf("%w: sampling_step must be in [%d, %d], got %d", core.ErrInvalidConfig, MinSamplingStep, MaxSamplingStep, c.SamplingStep)
	}
	switch c.ViewSource {
	case ViewSourceColor, ViewSourceMotionVectors:
	default:
		return fmt.Errorf("%w: unknown view_source %q", core.ErrInvalidConfig, c.ViewSource)
	}
	if c.OutputRoot == "" {
		return fmt.Errorf("%w: output_root must not be empty", core.ErrInvalidConfig)
	}
	downscaled := c.FullResolution().DivScalar(c.DownscaleFactor)
	if downscaled.IsZero() {
		return fmt.Errorf("%w: %dx%d downscaled by %d leaves an empty image", core.ErrInvalidConfig, c.Width, c.Height, c.DownscaleFactor)
	}
	c.downscaled = downscaled
	c.validated = true
	return nil
}

func (c *CaptureConfig) Validated() bool {
	return c.validated
}

func (c *CaptureConfig) FullResolution() math.Vec2i {
	return math.NewVec2i(c.Width, c.Height)
}

// DownscaledResolution is FullResolution / DownscaleFactor, truncated.
// Only meaningful after Validate.
func (c *CaptureConfig) DownscaledResolution() math.Vec2i {
	return c.downscaled
}
