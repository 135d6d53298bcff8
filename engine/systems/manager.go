package systems

import (
	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/renderer"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
)

const MainCameraName = "main"

type SystemManager struct {
	cameraSystem  *CameraSystem
	captureSystem *CaptureSystem
}

/**
 * @brief Creates the camera registry and a capture system bound to the main
 * camera. The main camera renders at the configured full resolution.
 */
func NewSystemManager(cfg *config.CaptureConfig, backend renderer.RendererBackend) (*SystemManager, error) {
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 16,
		Width:          cfg.Width,
		Height:         cfg.Height,
	})
	if err != nil {
		return nil, err
	}
	primary, err := cs.Acquire(MainCameraName)
	if err != nil {
		return nil, err
	}
	caps, err := NewCaptureSystem(cfg, backend, primary)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		cameraSystem:  cs,
		captureSystem: caps,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	return sm.captureSystem.Initialize()
}

func (sm *SystemManager) CameraSystem() *CameraSystem {
	return sm.cameraSystem
}

func (sm *SystemManager) CaptureSystem() *CaptureSystem {
	return sm.captureSystem
}

// MainCamera is the camera the capture follows.
func (sm *SystemManager) MainCamera() *components.Camera {
	return sm.captureSystem.primary
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.captureSystem.Shutdown(); err != nil {
		return err
	}
	sm.cameraSystem.Release(MainCameraName)
	return sm.cameraSystem.Shutdown()
}
