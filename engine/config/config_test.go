package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/depthmotion/engine/core"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Capture.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := cfg.Capture.DownscaledResolution(); got.X != 320 || got.Y != 180 {
		t.Errorf("DownscaledResolution() = %v, want 320x180", got)
	}
}

func TestDownscaledResolutionTruncates(t *testing.T) {
	for factor := MinDownscaleFactor; factor <= MaxDownscaleFactor; factor++ {
		cfg := Default().Capture
		cfg.Width, cfg.Height = 1279, 719
		cfg.DownscaleFactor = factor
		if err := cfg.Validate(); err != nil {
			t.Fatalf("factor %d: %v", factor, err)
		}
		got := cfg.DownscaledResolution()
		if got.X != 1279/factor || got.Y != 719/factor {
			t.Errorf("factor %d: DownscaledResolution() = %v, want %dx%d", factor, got, 1279/factor, 719/factor)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *CaptureConfig)
	}{
		{"factor below range", func(c *CaptureConfig) { c.DownscaleFactor = 1 }},
		{"factor above range", func(c *CaptureConfig) { c.DownscaleFactor = 9 }},
		{"step zero", func(c *CaptureConfig) { c.SamplingStep = 0 }},
		{"step above range", func(c *CaptureConfig) { c.SamplingStep = 501 }},
		{"zero width", func(c *CaptureConfig) { c.Width = 0 }},
		{"unknown view source", func(c *CaptureConfig) { c.ViewSource = "normals" }},
		{"empty root", func(c *CaptureConfig) { c.OutputRoot = "" }},
		{"downscaled to nothing", func(c *CaptureConfig) { c.Width, c.Height, c.DownscaleFactor = 4, 4, 8 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default().Capture
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			if cfg.Validated() {
				t.Error("Validated() = true after a failed Validate")
			}
		})
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "capture.toml", `
[application]
max_frames = 42

[capture]
width = 640
height = 480
downscaling_factor = 2
sampling_step = 5
view_source = "motion_vectors"
output_root = "/tmp/captures"
`},
		{"yaml", "capture.yaml", `
application:
  max_frames: 42
capture:
  width: 640
  height: 480
  downscaling_factor: 2
  sampling_step: 5
  view_source: motion_vectors
  output_root: /tmp/captures
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatal(err)
			}
			c := cfg.Capture
			if c.Width != 640 || c.Height != 480 || c.DownscaleFactor != 2 || c.SamplingStep != 5 {
				t.Errorf("capture = %+v", c)
			}
			if c.ViewSource != ViewSourceMotionVectors || c.OutputRoot != "/tmp/captures" {
				t.Errorf("capture = %+v", c)
			}
			if got := c.DownscaledResolution(); got.X != 320 || got.Y != 240 {
				t.Errorf("DownscaledResolution() = %v", got)
			}
			if cfg.Application.MaxFrames != 42 || cfg.Application.TargetFPS != 60 {
				t.Errorf("application = %+v, defaults should fill unset keys", cfg.Application)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(writeFile(t, "capture.toml", "[capture]\nsampling_step = 0\n")); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("out of range step error = %v", err)
	}
	if _, err := Load(writeFile(t, "capture.toml", "[capture]\nframerate = 3\n")); err == nil {
		t.Error("unknown key accepted")
	}
	if _, err := Load(writeFile(t, "capture.json", "{}")); err == nil {
		t.Error("unsupported extension accepted")
	}
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Capture.Validated() || cfg.Capture.SamplingStep != 1 {
		t.Errorf("capture = %+v", cfg.Capture)
	}
}
