package systems

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/depthmotion/engine/core"
)

func TestOutputTreeCreate(t *testing.T) {
	root := t.TempDir()
	tree := NewOutputTree(root, fixedClock())

	run, err := tree.Create([]string{ViewDir, DepthDir, MotionDir})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	wantPath := filepath.Join(root, OutputRootDir, "24_03_09_170405")
	if run.Path != wantPath {
		t.Errorf("run.Path = %s, want %s", run.Path, wantPath)
	}
	for _, dir := range []string{ViewDir, DepthDir, MotionDir} {
		p, ok := run.ChannelPath(dir)
		if !ok || p != filepath.Join(wantPath, dir) {
			t.Errorf("ChannelPath(%s) = %s, %v", dir, p, ok)
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("%s is not a directory: %v", p, err)
		}
	}
	if _, ok := run.ChannelPath("Normals"); ok {
		t.Error("ChannelPath of an unknown folder succeeded")
	}
}

func TestOutputTreeNeverReusesRunDirectory(t *testing.T) {
	root := t.TempDir()
	if _, err := NewOutputTree(root, fixedClock()).Create([]string{ViewDir}); err != nil {
		t.Fatal(err)
	}
	_, err := NewOutputTree(root, fixedClock()).Create([]string{ViewDir})
	if !errors.Is(err, core.ErrRunDirectoryExists) {
		t.Fatalf("Create() error = %v, want ErrRunDirectoryExists", err)
	}

	later := core.NewClockWithSource(func() time.Time { return testNow.Add(time.Second) })
	run, err := NewOutputTree(root, later).Create([]string{ViewDir})
	if err != nil {
		t.Fatalf("Create() one second later error = %v", err)
	}
	if run.Timestamp != "24_03_09_170406" {
		t.Errorf("Timestamp = %s", run.Timestamp)
	}
	entries, err := os.ReadDir(filepath.Join(root, OutputRootDir))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("%d run directories, want 2", len(entries))
	}
}

func TestTimestampLayoutIs24Hour(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC), "24_01_02_030405"},
		{time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC), "24_01_02_150405"},
		{time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC), "99_12_31_235959"},
	}
	for _, tt := range tests {
		if got := tt.at.Format(TimestampLayout); got != tt.want {
			t.Errorf("Format(%v) = %s, want %s", tt.at, got, tt.want)
		}
	}
}
