package core

import (
	"errors"
)

var (
	ErrMotionVectorsUnsupported = errors.New("platform does not support motion vectors")
	ErrInvalidConfig            = errors.New("invalid capture configuration")
	ErrRunDirectoryExists       = errors.New("run directory already exists")
	ErrSourceUnavailable        = errors.New("builtin buffer not available at this pipeline stage")
	ErrUnknownRenderTarget      = errors.New("unknown render target")
	ErrAlreadyInitialized       = errors.New("capture system already initialized")
	ErrNotInitialized           = errors.New("capture system not initialized")
	ErrUnknown                  = errors.New("unknown")
)
