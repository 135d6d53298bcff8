package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/renderer"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

/**
 * @brief Owns one capture run: the graph wired into the host pipeline, the
 * frame buffers, the cadence gate and the persister.
 */
type CaptureSystem struct {
	config  *config.CaptureConfig
	backend renderer.RendererBackend
	primary *components.Camera
	clock   *core.Clock
	metrics *core.Metrics

	channels  []metadata.ChannelDescriptor
	graph     *CaptureGraph
	buffers   *FrameBufferSet
	gate      *CadenceGate
	tree      *OutputTree
	run       *RunDirectory
	persister *FramePersister

	initialized bool
	shutdown    bool
	lastErr     error
}

func NewCaptureSystem(cfg *config.CaptureConfig, backend renderer.RendererBackend, primary *components.Camera) (*CaptureSystem, error) {
	if cfg == nil || backend == nil || primary == nil {
		return nil, errors.New("func NewCaptureSystem - config, backend and primary camera are required")
	}
	if !cfg.Validated() {
		if err := cfg.Validate(); err != nil {
			core.LogError(err.Error())
			return nil, err
		}
	}
	gate, err := NewCadenceGate(cfg.SamplingStep)
	if err != nil {
		return nil, err
	}
	return &CaptureSystem{
		config:   cfg,
		backend:  backend,
		primary:  primary,
		clock:    core.NewClock(),
		metrics:  core.NewMetrics(),
		channels: ChannelTable(cfg),
		gate:     gate,
	}, nil
}

// SetClock replaces the time source of run directory names and capture timing.
// Must be called before Initialize.
func (cs *CaptureSystem) SetClock(clock *core.Clock) {
	cs.clock = clock
}

/**
 * @brief Builds the capture graph, allocates the frame buffers, installs the
 * end of frame hook and creates the run directory. Any failure undoes the
 * steps already done.
 */
func (cs *CaptureSystem) Initialize() error {
	if cs.initialized || cs.shutdown {
		return fmt.Errorf("func CaptureSystem.Initialize - %w", core.ErrAlreadyInitialized)
	}
	graph, err := NewCaptureGraph(cs.backend, cs.primary)
	if err != nil {
		return err
	}
	buffers, err := NewFrameBufferSet(cs.backend, cs.channels, cs.config.FullResolution(), cs.config.DownscaledResolution())
	if err != nil {
		return err
	}
	if err := graph.Build(cs.channels, buffers, cs.config.DownscaledResolution()); err != nil {
		core.LogError(err.Error())
		cs.releaseAll(graph, buffers)
		return err
	}
	if err := graph.RegisterFrameHook(cs.onPrimaryFrame); err != nil {
		core.LogError(err.Error())
		cs.releaseAll(graph, buffers)
		return err
	}
	cs.tree = NewOutputTree(cs.config.OutputRoot, cs.clock)
	run, err := cs.tree.Create(channelDirs(cs.channels))
	if err != nil {
		core.LogError(err.Error())
		cs.releaseAll(graph, buffers)
		return err
	}

	cs.graph = graph
	cs.buffers = buffers
	cs.run = run
	cs.persister = NewFramePersister(cs.backend, buffers, cs.channels, run, cs.metrics)
	cs.initialized = true
	core.LogInfo("capture initialized: view %v, depth/motion %v, every %d frame(s)",
		cs.config.FullResolution(), cs.config.DownscaledResolution(), cs.config.SamplingStep)
	return nil
}

func (cs *CaptureSystem) releaseAll(graph *CaptureGraph, buffers *FrameBufferSet) {
	graph.Teardown()
	if err := buffers.Release(); err != nil {
		core.LogError(err.Error())
	}
}

func (cs *CaptureSystem) onPrimaryFrame(frameNumber uint64) {
	if err := cs.RenderStep(); err != nil {
		core.LogError("capture of host frame %d failed: %s", frameNumber, err.Error())
	}
}

/**
 * @brief Runs once per completed primary camera frame. Asks the cadence gate
 * and, on a capture frame, persists every channel. A failed capture is
 * counted and returned; the next frame is processed normally.
 */
func (cs *CaptureSystem) RenderStep() error {
	if !cs.initialized || cs.shutdown {
		return core.ErrNotInitialized
	}
	cs.metrics.FrameSeen()
	index, capture := cs.gate.Evaluate()
	if !capture {
		return nil
	}
	cs.clock.Start()
	err := cs.persister.SaveFrame(index)
	cs.clock.Update()
	cs.clock.Stop()
	if err != nil {
		cs.metrics.CaptureFailed()
		cs.lastErr = err
		return err
	}
	cs.metrics.CaptureCompleted(cs.clock.Elapsed())
	return nil
}

// Shutdown detaches from the host pipeline and releases the targets once.
func (cs *CaptureSystem) Shutdown() error {
	if cs.shutdown {
		return nil
	}
	cs.shutdown = true
	if !cs.initialized {
		return nil
	}
	cs.graph.Teardown()
	err := cs.buffers.Release()
	snapshot := cs.metrics.Snapshot()
	core.LogInfo("capture finished: %d frames seen, %d captured, %d failed",
		snapshot.FramesSeen, snapshot.FramesCaptured, snapshot.FailedCaptures)
	return err
}

func (cs *CaptureSystem) Metrics() core.MetricsSnapshot {
	return cs.metrics.Snapshot()
}

// RunDirectory is nil until Initialize succeeded.
func (cs *CaptureSystem) RunDirectory() *RunDirectory {
	return cs.run
}

func (cs *CaptureSystem) FrameIndex() uint64 {
	return cs.gate.FrameIndex()
}

func (cs *CaptureSystem) Channels() []metadata.ChannelDescriptor {
	return cs.channels
}

func (cs *CaptureSystem) Graph() *CaptureGraph {
	return cs.graph
}

func (cs *CaptureSystem) Buffers() *FrameBufferSet {
	return cs.buffers
}

// LastError is the error of the most recent failed capture.
func (cs *CaptureSystem) LastError() error {
	return cs.lastErr
}
