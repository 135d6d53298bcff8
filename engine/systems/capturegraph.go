package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/math"
	"github.com/spaghettifunk/depthmotion/engine/renderer"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

const DownscaledCameraSuffix = "_downscaled"

type attachedJob struct {
	camera *components.Camera
	event  metadata.CameraEvent
	buffer *metadata.CommandBuffer
}

// FnOnPrimaryFrame is invoked once per completed frame of the primary camera.
type FnOnPrimaryFrame func(frameNumber uint64)

/**
 * @brief Wires the capture into the host pipeline: a downscaled secondary
 * camera, one blit job per channel and the end of frame hook.
 */
type CaptureGraph struct {
	backend    renderer.RendererBackend
	primary    *components.Camera
	downscaled *components.Camera
	jobs       []attachedJob

	onFrame    FnOnPrimaryFrame
	registered bool
	tornDown   bool
}

/**
 * @brief Checks the platform can produce motion vectors. Nothing is allocated
 * when it cannot.
 */
func NewCaptureGraph(backend renderer.RendererBackend, primary *components.Camera) (*CaptureGraph, error) {
	if !backend.SupportsMotionVectors() {
		err := fmt.Errorf("func NewCaptureGraph - %w", core.ErrMotionVectorsUnsupported)
		core.LogError(err.Error())
		return nil, err
	}
	if primary == nil {
		return nil, errors.New("func NewCaptureGraph - primary camera is required")
	}
	return &CaptureGraph{
		backend: backend,
		primary: primary,
	}, nil
}

func (cg *CaptureGraph) Primary() *components.Camera {
	return cg.primary
}

// Downscaled is the secondary camera, nil before Build.
func (cg *CaptureGraph) Downscaled() *components.Camera {
	return cg.downscaled
}

/**
 * @brief Creates the secondary camera and attaches one command buffer per
 * channel. Each job declares a temporary, publishes it under the channel tag,
 * copies the builtin source into it and then into the persistent target.
 */
func (cg *CaptureGraph) Build(channels []metadata.ChannelDescriptor, buffers *FrameBufferSet, downscaled math.Vec2i) error {
	if cg.downscaled != nil {
		return fmt.Errorf("func CaptureGraph.Build - %w", core.ErrAlreadyInitialized)
	}
	cg.primary.AllowDynamicResolution = false

	secondary := components.NewCamera(cg.primary.Name+DownscaledCameraSuffix, downscaled.X, downscaled.Y)
	secondary.CopyFrom(cg.primary)
	secondary.PixelWidth = downscaled.X
	secondary.PixelHeight = downscaled.Y
	secondary.DepthTextureMode = metadata.DepthTextureModeDepth | metadata.DepthTextureModeMotionVectors
	secondary.SetParent(cg.primary)
	secondary.Active = false
	cg.downscaled = secondary

	for _, ch := range channels {
		camera := cg.primary
		width, height := -1, -1
		if ch.Camera == metadata.CameraKindDownscaled {
			camera = secondary
		}
		if ch.Resolution == metadata.ResolutionDownscaled {
			width, height = downscaled.X, downscaled.Y
		}
		target := buffers.Target(ch.Name)
		if target == nil {
			cg.detach()
			return fmt.Errorf("func CaptureGraph.Build - no target for channel %s", ch.Name)
		}
		camera.DepthTextureMode |= requiredTextureMode(ch.Source)

		temporary := metadata.PropertyToID(ch.Tag)
		cb := metadata.NewCommandBuffer(ch.Name)
		cb.GetTemporaryRT(temporary, width, height, ch.Format)
		cb.SetNamedOutput(ch.Tag, temporary)
		cb.Blit(metadata.BuiltinIdentifier(ch.Source), metadata.TemporaryIdentifier(temporary))
		cb.Blit(metadata.TemporaryIdentifier(temporary), metadata.TargetIdentifier(target))

		if err := cg.backend.AddCommandBuffer(camera, ch.AttachPoint, cb); err != nil {
			cg.detach()
			return err
		}
		cg.jobs = append(cg.jobs, attachedJob{camera: camera, event: ch.AttachPoint, buffer: cb})
		core.LogDebug("capture job %s attached to %s at %s", ch.Name, camera.Name, ch.AttachPoint)
	}
	return nil
}

/**
 * @brief Installs the end of frame hook. onFrame only runs for the primary
 * camera; the secondary and any other camera are ignored.
 */
func (cg *CaptureGraph) RegisterFrameHook(onFrame FnOnPrimaryFrame) error {
	if cg.registered {
		return fmt.Errorf("func CaptureGraph.RegisterFrameHook - %w", core.ErrAlreadyInitialized)
	}
	cg.onFrame = onFrame
	if !cg.backend.RegisterEndCameraRendering(cg, cg.onEndCameraRendering) {
		return errors.New("func CaptureGraph.RegisterFrameHook - backend refused the listener")
	}
	cg.registered = true
	return nil
}

func (cg *CaptureGraph) onEndCameraRendering(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
	ev, ok := data.Data.(*core.EndCameraRenderingEvent)
	if !ok || ev.CameraID != cg.primary.ID {
		return false
	}
	if cg.onFrame != nil {
		cg.onFrame(ev.FrameNumber)
	}
	// Other listeners of the same event still run.
	return false
}

// Teardown removes the jobs, the hook and the secondary camera. Safe to call twice.
func (cg *CaptureGraph) Teardown() {
	if cg.tornDown {
		return
	}
	cg.tornDown = true
	if cg.registered {
		cg.backend.UnregisterEndCameraRendering(cg)
		cg.registered = false
	}
	cg.detach()
}

func (cg *CaptureGraph) detach() {
	for _, job := range cg.jobs {
		if !cg.backend.RemoveCommandBuffer(job.camera, job.event, job.buffer) {
			core.LogWarn("capture job %s was not attached to %s", job.buffer.Name, job.camera.Name)
		}
	}
	cg.jobs = nil
	if cg.downscaled != nil {
		cg.downscaled.SetParent(nil)
	}
}
