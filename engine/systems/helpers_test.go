package systems

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/math"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
	"github.com/spaghettifunk/depthmotion/engine/renderer/software"
)

const (
	testWidth  = 64
	testHeight = 48
	testFactor = 4
)

var testNow = time.Date(2024, time.March, 9, 17, 4, 5, 0, time.UTC)

func fixedClock() *core.Clock {
	return core.NewClockWithSource(func() time.Time { return testNow })
}

// flatScene fills every pixel with the same values; red encodes the frame number.
type flatScene struct{}

func (flatScene) Render(camera *components.Camera, frame uint64) *software.FrameBuffers {
	fb := software.NewFrameBuffers(camera.PixelWidth, camera.PixelHeight)
	shade := uint8(frame * 7)
	for i := 0; i < len(fb.Color.Pix); i += 4 {
		fb.Color.Pix[i+0] = shade
		fb.Color.Pix[i+1] = 64
		fb.Color.Pix[i+2] = 192
		fb.Color.Pix[i+3] = 0xff
	}
	for i := range fb.Depth {
		fb.Depth[i] = 0.5
		fb.Motion[i] = math.NewVec2(1, -2)
	}
	return fb
}

func testConfig(t *testing.T, step int) *config.CaptureConfig {
	t.Helper()
	cfg := &config.CaptureConfig{
		Width:           testWidth,
		Height:          testHeight,
		DownscaleFactor: testFactor,
		SamplingStep:    step,
		ViewSource:      config.ViewSourceColor,
		OutputRoot:      t.TempDir(),
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return cfg
}

func newTestBackend(supportsMotion bool) *software.SoftwareRenderer {
	return software.New(&metadata.RendererBackendConfig{
		ApplicationName:       "systems test",
		SupportsMotionVectors: supportsMotion,
	}, flatScene{})
}

type testRig struct {
	cfg     *config.CaptureConfig
	backend *software.SoftwareRenderer
	primary *components.Camera
	capture *CaptureSystem
}

func newTestRig(t *testing.T, cfg *config.CaptureConfig, supportsMotion bool) *testRig {
	t.Helper()
	backend := newTestBackend(supportsMotion)
	primary := newTestPrimary(cfg)
	backend.AddCamera(primary)
	cs, err := NewCaptureSystem(cfg, backend, primary)
	if err != nil {
		t.Fatalf("NewCaptureSystem() error = %v", err)
	}
	cs.SetClock(fixedClock())
	return &testRig{cfg: cfg, backend: backend, primary: primary, capture: cs}
}

func (r *testRig) initialize(t *testing.T) {
	t.Helper()
	if err := r.capture.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { r.capture.Shutdown() })
}

func (r *testRig) renderFrames(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := r.backend.RenderFrame(); err != nil {
			t.Fatalf("RenderFrame() #%d error = %v", i, err)
		}
	}
}

func (r *testRig) channelFile(dir string, frameIndex uint64) string {
	return filepath.Join(r.capture.RunDirectory().Path, dir, FrameFileName(frameIndex))
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if !os.IsNotExist(err) {
		t.Fatalf("Stat(%s) error = %v", path, err)
	}
	return false
}

func newTestPrimary(cfg *config.CaptureConfig) *components.Camera {
	return components.NewCamera("main", cfg.Width, cfg.Height)
}

// newTestOtherCamera is an unrelated, active root camera sharing the backend.
func newTestOtherCamera(r *testRig) *components.Camera {
	return components.NewCamera("other", r.cfg.Width/2, r.cfg.Height/2)
}
