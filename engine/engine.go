package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/output"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
	"github.com/spaghettifunk/depthmotion/engine/renderer/software"
	"github.com/spaghettifunk/depthmotion/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released everything
	EngineStageShutdown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	renderer      *software.SoftwareRenderer
	systemManager *systems.SystemManager
	watcher       *output.Watcher
	events        *core.EventSystem
	clock         *core.Clock
	lastTime      float64
	frameCount    uint64

	quit     chan struct{}
	quitOnce sync.Once
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil || g.ApplicationConfig.Config == nil {
		return nil, errors.New("func New - game and application config are required")
	}
	if g.Scene == nil {
		return nil, errors.New("func New - the game must provide a scene")
	}
	cfg := g.ApplicationConfig.Config

	r := software.New(&metadata.RendererBackendConfig{
		ApplicationName:       g.ApplicationConfig.Name,
		SupportsMotionVectors: true,
	}, g.Scene)

	sm, err := systems.NewSystemManager(&cfg.Capture, r)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.SystemManager = sm

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		renderer:      r,
		systemManager: sm,
		events:        core.NewEventSystem(),
		clock:         core.NewClock(),
		quit:          make(chan struct{}),
	}, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("func Initialize - %w", core.ErrAlreadyInitialized)
	}
	e.currentStage = EngineStageBooting
	if e.gameInstance.FnBoot != nil {
		if err := e.gameInstance.FnBoot(); err != nil {
			core.LogError("game boot failed: %s", err.Error())
			return err
		}
	}
	e.currentStage = EngineStageBootComplete

	e.currentStage = EngineStageInitializing
	e.renderer.AddCamera(e.systemManager.MainCamera())
	if err := e.systemManager.Initialize(); err != nil {
		core.LogError("capture initialization failed: %s", err.Error())
		return err
	}
	if e.gameInstance.ApplicationConfig.Config.Application.WatchOutput {
		run := e.systemManager.CaptureSystem().RunDirectory()
		w, err := output.NewWatcher(run.Path, nil)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		e.watcher = w
	}
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			core.LogError("game initialize failed: %s", err.Error())
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

/**
 * @brief Runs the host frame loop until the frame limit is reached, Stop is
 * called or a frame fails. Each frame updates the game and renders every
 * camera, which drives the capture through the end of camera hook.
 */
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("func Run - %w", core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	appConfig := e.gameInstance.ApplicationConfig.Config.Application
	var targetFrameSeconds float64
	if appConfig.TargetFPS > 0 {
		targetFrameSeconds = 1.0 / float64(appConfig.TargetFPS)
	}

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		select {
		case <-e.quit:
			e.isRunning = false
			continue
		default:
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := time.Now()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down.")
				e.isRunning = false
				return err
			}
		}
		if err := e.renderer.RenderFrame(); err != nil {
			core.LogError("Frame render failed, shutting down.")
			e.isRunning = false
			return err
		}
		e.frameCount++
		e.drainWatcher()

		if appConfig.MaxFrames > 0 && e.frameCount >= appConfig.MaxFrames {
			e.events.Fire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
		}

		// Give the rest of the frame back to the OS.
		if targetFrameSeconds > 0 {
			remaining := targetFrameSeconds - time.Since(frameStartTime).Seconds()
			if remaining > 0 {
				time.Sleep(time.Duration(remaining * float64(time.Second)))
			}
		}
		e.lastTime = currentTime
	}
	e.currentStage = EngineStageInitialized
	return nil
}

// Stop asks a running loop to exit after the current frame. Safe from any goroutine.
func (e *Engine) Stop() {
	e.quitOnce.Do(func() {
		close(e.quit)
	})
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	if e.watcher != nil {
		e.drainWatcher()
		if err := e.watcher.Close(); err != nil {
			core.LogError(err.Error())
		}
	}
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			return err
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.renderer.Shutdown(); err != nil {
		return err
	}
	if err := e.events.Shutdown(); err != nil {
		return err
	}
	e.currentStage = EngineStageShutdown
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

func (e *Engine) Renderer() *software.SoftwareRenderer {
	return e.renderer
}

func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) drainWatcher() {
	if e.watcher == nil {
		return
	}
	for {
		select {
		case index := <-e.watcher.Completed():
			core.LogDebug("frame %d written to disk", index)
		default:
			return
		}
	}
}

func (e *Engine) onEvent(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}
