package engine

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/output"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
	"github.com/spaghettifunk/depthmotion/engine/renderer/software"
)

type greyScene struct{}

func (greyScene) Render(camera *components.Camera, frame uint64) *software.FrameBuffers {
	fb := software.NewFrameBuffers(camera.PixelWidth, camera.PixelHeight)
	for i := range fb.Color.Pix {
		fb.Color.Pix[i] = 0x80
	}
	return fb
}

func newTestGame(t *testing.T, maxFrames uint64, step int) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Application.MaxFrames = maxFrames
	cfg.Application.TargetFPS = 0
	cfg.Capture.Width = 40
	cfg.Capture.Height = 30
	cfg.Capture.DownscaleFactor = 2
	cfg.Capture.SamplingStep = step
	cfg.Capture.OutputRoot = t.TempDir()
	if err := cfg.Capture.Validate(); err != nil {
		t.Fatal(err)
	}
	return &Game{
		ApplicationConfig: &ApplicationConfig{
			Name:   "engine test",
			Config: cfg,
		},
		Scene: greyScene{},
	}
}

func TestEngineRunsUntilFrameLimit(t *testing.T) {
	g := newTestGame(t, 6, 2)
	updates := 0
	g.FnUpdate = func(float64) error {
		updates++
		return nil
	}
	e, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if e.FrameCount() != 6 || updates != 6 {
		t.Errorf("frames = %d, updates = %d, want 6", e.FrameCount(), updates)
	}

	run := g.SystemManager.CaptureSystem().RunDirectory()
	ri, err := output.ScanRun(run.Path, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := ri.Complete()
	want := []uint64{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("captured frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("captured frames = %v, want %v", got, want)
		}
	}

	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
	if e.Stage() != EngineStageShutdown {
		t.Errorf("stage = %d, want shutdown", e.Stage())
	}
	if got := e.Renderer().LiveRenderTargets(); got != 0 {
		t.Errorf("LiveRenderTargets() = %d, want 0", got)
	}
}

func TestEngineStop(t *testing.T) {
	g := newTestGame(t, 0, 1)
	e, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	g.FnUpdate = func(float64) error {
		if e.FrameCount() == 3 {
			e.Stop()
		}
		return nil
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if e.FrameCount() != 4 {
		t.Errorf("FrameCount() = %d, want 4", e.FrameCount())
	}
	e.Stop()
	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

func TestEngineUpdateErrorStopsLoop(t *testing.T) {
	g := newTestGame(t, 0, 1)
	boom := errors.New("boom")
	g.FnUpdate = func(float64) error { return boom }
	e, err := New(g)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
	if err := e.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

func TestEngineRunBeforeInitialize(t *testing.T) {
	e, err := New(newTestGame(t, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); !errors.Is(err, core.ErrNotInitialized) {
		t.Errorf("Run() error = %v, want ErrNotInitialized", err)
	}
}

func TestNewRequiresScene(t *testing.T) {
	g := newTestGame(t, 1, 1)
	g.Scene = nil
	if _, err := New(g); err == nil {
		t.Error("expected an error without a scene")
	}
}
