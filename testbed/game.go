package testbed

import (
	"fmt"

	"github.com/spaghettifunk/depthmotion/engine"
	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	DeltaTime   float64
	WorldCamera *components.Camera
	// Camera yaw speed in radians per second.
	YawSpeed float32
	elapsed  float64
}

func NewTestGame(cfg *config.Config) (*TestGame, error) {
	if cfg == nil {
		return nil, fmt.Errorf("func NewTestGame - configuration is required")
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Name:     cfg.Application.Name,
				LogLevel: core.ParseLogLevel(cfg.Application.LogLevel),
				Config:   cfg,
			},
			Scene: NewDiscScene(),
			State: &gameState{
				YawSpeed: 0.1,
			},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Boot() error {
	core.LogInfo("booting testbed...")
	return nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers ")
	}
	state := g.State.(*gameState)
	state.WorldCamera = g.SystemManager.MainCamera()
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.DeltaTime = deltaTime
	state.elapsed += deltaTime
	state.WorldCamera.Yaw(state.YawSpeed * float32(deltaTime))
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)
	m := g.SystemManager.CaptureSystem().Metrics()
	core.LogInfo("testbed ran for %.2fs, average capture %.2fms", state.elapsed, m.CaptureMSAvg)
	return nil
}
