package systems

import "testing"

func TestCameraSystemAcquireRelease(t *testing.T) {
	cs, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 2, Width: 32, Height: 16})
	if err != nil {
		t.Fatal(err)
	}
	a, err := cs.Acquire("a")
	if err != nil {
		t.Fatal(err)
	}
	again, _ := cs.Acquire("a")
	if a != again {
		t.Error("Acquire of the same name returned a new camera")
	}
	if a.PixelWidth != 32 || a.PixelHeight != 16 {
		t.Errorf("camera size = %dx%d", a.PixelWidth, a.PixelHeight)
	}
	if _, err := cs.Acquire("b"); err != nil {
		t.Fatal(err)
	}
	if _, err := cs.Acquire("c"); err == nil {
		t.Error("Acquire beyond MaxCameraCount succeeded")
	}
	if cs.GetDefault() == nil {
		t.Fatal("no default camera")
	}
	if d, _ := cs.Acquire(DEFAULT_CAMERA_NAME); d != cs.GetDefault() {
		t.Error("default name did not return the default camera")
	}

	cs.Release("a")
	if _, ok := cs.Lookup["a"]; !ok {
		t.Error("camera dropped while still referenced")
	}
	cs.Release("a")
	if _, ok := cs.Lookup["a"]; ok {
		t.Error("camera kept after the last release")
	}
	if c, _ := cs.Acquire("c"); c == nil {
		t.Error("slot not reusable after release")
	}
}

func TestNewCameraSystemRejectsZeroCapacity(t *testing.T) {
	if _, err := NewCameraSystem(&CameraSystemConfig{}); err == nil {
		t.Error("expected an error")
	}
}
