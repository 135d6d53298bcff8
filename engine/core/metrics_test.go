package core

import (
	stdmath "math"
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 4; i++ {
		m.FrameSeen()
	}
	m.ChannelWritten()
	m.ChannelWritten()
	m.CaptureFailed()
	m.CaptureCompleted(0.010)
	m.CaptureCompleted(0.020)

	s := m.Snapshot()
	if s.FramesSeen != 4 || s.ChannelWrites != 2 || s.FailedCaptures != 1 || s.FramesCaptured != 2 {
		t.Errorf("snapshot = %+v", s)
	}
	if stdmath.Abs(s.CaptureMSAvg-15) > 1e-9 {
		t.Errorf("CaptureMSAvg = %v, want 15", s.CaptureMSAvg)
	}
}

func TestMetricsAverageWindow(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < AVG_COUNT; i++ {
		m.CaptureCompleted(1.0)
	}
	for i := 0; i < AVG_COUNT; i++ {
		m.CaptureCompleted(0.002)
	}
	if got := m.Snapshot().CaptureMSAvg; stdmath.Abs(got-2) > 1e-9 {
		t.Errorf("CaptureMSAvg = %v, want 2 once old samples rolled out", got)
	}
}

func TestClockElapsed(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClockWithSource(func() time.Time { return now })
	c.Update()
	if c.Elapsed() != 0 {
		t.Error("stopped clock reported elapsed time")
	}
	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Errorf("Elapsed() = %v, want 1.5", c.Elapsed())
	}
	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	if c.Elapsed() != 1.5 {
		t.Errorf("Elapsed() after Stop = %v, want 1.5", c.Elapsed())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DebugLevel,
		"info":    InfoLevel,
		"warn":    WarnLevel,
		"error":   ErrorLevel,
		"verbose": InfoLevel,
	}
	for name, want := range tests {
		if got := ParseLogLevel(name); got != want {
			t.Errorf("ParseLogLevel(%q) = %d, want %d", name, got, want)
		}
	}
}
