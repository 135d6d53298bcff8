package renderer

import (
	"image"

	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

// RendererBackend is the slice of the host rendering pipeline the capture
// systems call into: target allocation, readback, command buffer attachment
// and the per camera end of frame hook.
type RendererBackend interface {
	SupportsMotionVectors() bool

	RenderTargetCreate(name string, width, height int, format metadata.PixelFormat) (*metadata.RenderTarget, error)
	RenderTargetDestroy(target *metadata.RenderTarget) error

	// ActiveRenderTarget returns the surface reads currently bind to; nil is the backbuffer.
	ActiveRenderTarget() *metadata.RenderTarget
	SetActiveRenderTarget(target *metadata.RenderTarget) error
	// ReadPixels copies rect of the active render target into staging. Blocks until the GPU data is available.
	ReadPixels(rect image.Rectangle, staging *metadata.StagingImage) error

	AddCommandBuffer(camera *components.Camera, event metadata.CameraEvent, cb *metadata.CommandBuffer) error
	RemoveCommandBuffer(camera *components.Camera, event metadata.CameraEvent, cb *metadata.CommandBuffer) bool

	// RegisterEndCameraRendering installs callback for EVENT_CODE_END_CAMERA_RENDERING.
	// It fires once per camera per completed frame.
	RegisterEndCameraRendering(listener interface{}, callback core.FnOnEvent) bool
	UnregisterEndCameraRendering(listener interface{}) bool
}
