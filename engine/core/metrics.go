package core

import (
	"sync"

	"github.com/spaghettifunk/depthmotion/engine/containers"
)

const AVG_COUNT = 30

type MetricsSnapshot struct {
	FramesSeen     uint64
	FramesCaptured uint64
	FailedCaptures uint64
	ChannelWrites  uint64
	// Average capture time in milliseconds over the last AVG_COUNT captures.
	CaptureMSAvg float64
}

// Metrics tracks capture throughput. Updated from the frame loop, read from anywhere.
type Metrics struct {
	mutex sync.Mutex

	captureMStimes *containers.RingQueue[float64]

	snapshot MetricsSnapshot
}

func NewMetrics() *Metrics {
	return &Metrics{
		captureMStimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

func (m *Metrics) FrameSeen() {
	m.mutex.Lock()
	m.snapshot.FramesSeen++
	m.mutex.Unlock()
}

func (m *Metrics) ChannelWritten() {
	m.mutex.Lock()
	m.snapshot.ChannelWrites++
	m.mutex.Unlock()
}

func (m *Metrics) CaptureFailed() {
	m.mutex.Lock()
	m.snapshot.FailedCaptures++
	m.mutex.Unlock()
}

// CaptureCompleted records a successful capture and how long it took, in seconds.
func (m *Metrics) CaptureCompleted(elapsedSeconds float64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.snapshot.FramesCaptured++

	m.captureMStimes.Push(elapsedSeconds * 1000.0)

	sum := 0.0
	m.captureMStimes.Each(func(ms float64) { sum += ms })
	m.snapshot.CaptureMSAvg = sum / float64(m.captureMStimes.Len())
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.snapshot
}
