package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func makeRun(t *testing.T) string {
	t.Helper()
	run := filepath.Join(t.TempDir(), "OutputData", "24_03_09_170405")
	for _, ch := range DefaultChannels {
		if err := os.MkdirAll(filepath.Join(run, ch), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return run
}

func touch(t *testing.T, run, channel, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(run, channel, name), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func equalIndices(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanRun(t *testing.T) {
	run := makeRun(t)
	for _, name := range []string{"0.png", "2.png", "10.png", "11.png"} {
		for _, ch := range DefaultChannels {
			touch(t, run, ch, name)
		}
	}
	// Frame 12 stopped after the view channel.
	touch(t, run, "View", "12.png")
	touch(t, run, "View", "notes.txt")
	touch(t, run, "Depth", "thumb.png")

	ri, err := ScanRun(run, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ri.Complete(), []uint64{0, 2, 10, 11}; !equalIndices(got, want) {
		t.Errorf("Complete() = %v, want %v", got, want)
	}
	if got, want := ri.Incomplete(), []uint64{12}; !equalIndices(got, want) {
		t.Errorf("Incomplete() = %v, want %v", got, want)
	}
	frames := ri.Frames()
	if len(frames) != 5 {
		t.Fatalf("%d frames, want 5", len(frames))
	}
	if got := frames[2].Files["Motion"]; got != filepath.Join(run, "Motion", "10.png") {
		t.Errorf("frame 10 motion = %s", got)
	}
}

func TestScanRunMissingChannel(t *testing.T) {
	run := makeRun(t)
	if err := os.Remove(filepath.Join(run, "Motion")); err != nil {
		t.Fatal(err)
	}
	if _, err := ScanRun(run, nil); err == nil {
		t.Error("expected an error for a missing channel folder")
	}
}

func TestRunIndexRemove(t *testing.T) {
	ri := NewRunIndex("/run", DefaultChannels)
	for _, ch := range DefaultChannels {
		ri.Add(filepath.Join("/run", ch, "3.png"))
	}
	ri.Remove(filepath.Join("/run", "Depth", "3.png"))
	if got := ri.Incomplete(); !equalIndices(got, []uint64{3}) {
		t.Errorf("Incomplete() = %v, want [3]", got)
	}
	ri.Remove(filepath.Join("/run", "View", "3.png"))
	ri.Remove(filepath.Join("/run", "Motion", "3.png"))
	if len(ri.Frames()) != 0 {
		t.Errorf("Frames() = %v, want none", ri.Frames())
	}
}

func TestLatestRun(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"24_03_09_170405", "24_03_10_090000", "23_12_31_235959"} {
		if err := os.Mkdir(filepath.Join(base, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	got, err := LatestRun(base)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(base, "24_03_10_090000"); got != want {
		t.Errorf("LatestRun() = %s, want %s", got, want)
	}
	if _, err := LatestRun(t.TempDir()); err == nil {
		t.Error("expected an error for an empty base")
	}
}

func TestWatcherReportsCompletedFrames(t *testing.T) {
	run := makeRun(t)
	for _, ch := range DefaultChannels {
		touch(t, run, ch, "0.png")
	}
	w, err := NewWatcher(run, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	expect := func(want uint64) {
		t.Helper()
		select {
		case got := <-w.Completed():
			if got != want {
				t.Fatalf("completed frame %d, want %d", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for frame %d", want)
		}
	}
	expect(0)

	touch(t, run, "View", "1.png")
	touch(t, run, "Depth", "1.png")
	touch(t, run, "Motion", "1.png")
	expect(1)

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if got := w.Index().Complete(); !equalIndices(got, []uint64{0, 1}) {
		t.Errorf("Complete() = %v, want [0 1]", got)
	}
}
