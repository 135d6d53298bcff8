package engine

import (
	"github.com/spaghettifunk/depthmotion/engine/renderer/software"
	"github.com/spaghettifunk/depthmotion/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	// What the host pipeline draws for every camera.
	Scene        software.Scene
	State        interface{}
	FnBoot       Boot
	FnInitialize Initialize
	FnUpdate     Update
	FnShutdown   Shutdown
}

type Boot func() error
type Initialize func() error
type Update func(deltaTime float64) error
type Shutdown func() error
