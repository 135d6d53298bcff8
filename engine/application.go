package engine

import (
	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/core"
)

type ApplicationConfig struct {
	// The application name used in logs and as the renderer name.
	Name     string
	LogLevel core.LogLevel
	// Capture and host loop settings, loaded from capture.toml or defaults.
	Config *config.Config
}
