package software

import (
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

type cameraCommands [metadata.CameraEventCount][]*metadata.CommandBuffer

/** @brief A temporary published by SetNamedOutput during the last frame. */
type NamedOutput struct {
	CameraID    uuid.UUID
	TemporaryID int
	Width       int
	Height      int
	Format      metadata.PixelFormat
}

type Stats struct {
	TargetsCreated   int
	TargetsDestroyed int
	Readbacks        int
	CameraPasses     int
}

// SoftwareRenderer is a headless, single threaded host pipeline. It renders
// cameras on the CPU, runs attached command buffers at each camera event and
// fires the end of camera rendering event once per camera.
type SoftwareRenderer struct {
	config *metadata.RendererBackendConfig
	scene  Scene
	events *core.EventSystem
	ids    *core.IdentifierPool

	surfaces       map[uint32]*surface
	active         *metadata.RenderTarget
	commandBuffers map[uuid.UUID]*cameraCommands
	cameras        []*components.Camera
	namedOutputs   map[string]NamedOutput

	FrameNumber uint64
	stats       Stats
}

func New(config *metadata.RendererBackendConfig, scene Scene) *SoftwareRenderer {
	return &SoftwareRenderer{
		config:         config,
		scene:          scene,
		events:         core.NewEventSystem(),
		ids:            core.NewIdentifierPool(16),
		surfaces:       make(map[uint32]*surface),
		commandBuffers: make(map[uuid.UUID]*cameraCommands),
		namedOutputs:   make(map[string]NamedOutput),
	}
}

func (sr *SoftwareRenderer) Shutdown() error {
	if len(sr.surfaces) > 0 {
		core.LogWarn("software renderer shutting down with %d live render targets", len(sr.surfaces))
	}
	return sr.events.Shutdown()
}

func (sr *SoftwareRenderer) SupportsMotionVectors() bool {
	return sr.config.SupportsMotionVectors
}

func (sr *SoftwareRenderer) RenderTargetCreate(name string, width, height int, format metadata.PixelFormat) (*metadata.RenderTarget, error) {
	if width <= 0 || height <= 0 {
		err := fmt.Errorf("func RenderTargetCreate - invalid size %dx%d for %s", width, height, name)
		core.LogError(err.Error())
		return nil, err
	}
	rt := &metadata.RenderTarget{
		Name:   name,
		Width:  width,
		Height: height,
		Format: format,
	}
	rt.ID = sr.ids.AcquireNewID(rt)
	sr.surfaces[rt.ID] = newSurface(rt, width, height, format)
	sr.stats.TargetsCreated++
	core.LogDebug("render target %s created (%dx%d %s)", name, width, height, format)
	return rt, nil
}

func (sr *SoftwareRenderer) RenderTargetDestroy(target *metadata.RenderTarget) error {
	if _, err := sr.surfaceFor(target); err != nil {
		return err
	}
	delete(sr.surfaces, target.ID)
	if err := sr.ids.ReleaseID(target.ID); err != nil {
		return err
	}
	if sr.active == target {
		sr.active = nil
	}
	target.Released = true
	sr.stats.TargetsDestroyed++
	return nil
}

func (sr *SoftwareRenderer) ActiveRenderTarget() *metadata.RenderTarget {
	return sr.active
}

func (sr *SoftwareRenderer) SetActiveRenderTarget(target *metadata.RenderTarget) error {
	if target == nil {
		sr.active = nil
		return nil
	}
	if _, err := sr.surfaceFor(target); err != nil {
		return err
	}
	sr.active = target
	return nil
}

func (sr *SoftwareRenderer) ReadPixels(rect image.Rectangle, staging *metadata.StagingImage) error {
	if sr.active == nil {
		return errors.New("func ReadPixels - no active render target")
	}
	s, err := sr.surfaceFor(sr.active)
	if err != nil {
		return err
	}
	if !rect.In(s.color.Rect) {
		return fmt.Errorf("func ReadPixels - rect %v outside of %s %v", rect, sr.active.Name, s.color.Rect)
	}
	if rect.Dx() > staging.Width() || rect.Dy() > staging.Height() {
		return fmt.Errorf("func ReadPixels - rect %v does not fit staging image %s (%dx%d)", rect, staging.Name, staging.Width(), staging.Height())
	}
	dst := staging.Image
	for y := 0; y < rect.Dy(); y++ {
		srcOff := s.color.PixOffset(rect.Min.X, rect.Min.Y+y)
		dstOff := dst.PixOffset(0, y)
		row := dst.Pix[dstOff : dstOff+rect.Dx()*4]
		copy(row, s.color.Pix[srcOff:srcOff+rect.Dx()*4])
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
	sr.stats.Readbacks++
	return nil
}

func (sr *SoftwareRenderer) AddCommandBuffer(camera *components.Camera, event metadata.CameraEvent, cb *metadata.CommandBuffer) error {
	if camera == nil || cb == nil {
		return errors.New("func AddCommandBuffer - camera and command buffer are required")
	}
	if event >= metadata.CameraEventCount {
		return fmt.Errorf("func AddCommandBuffer - unknown camera event %d", event)
	}
	cmds, ok := sr.commandBuffers[camera.ID]
	if !ok {
		cmds = &cameraCommands{}
		sr.commandBuffers[camera.ID] = cmds
	}
	for _, existing := range cmds[event] {
		if existing == cb {
			return fmt.Errorf("func AddCommandBuffer - %s already attached to %s at %s", cb.Name, camera.Name, event)
		}
	}
	cmds[event] = append(cmds[event], cb)
	return nil
}

func (sr *SoftwareRenderer) RemoveCommandBuffer(camera *components.Camera, event metadata.CameraEvent, cb *metadata.CommandBuffer) bool {
	if camera == nil || event >= metadata.CameraEventCount {
		return false
	}
	cmds, ok := sr.commandBuffers[camera.ID]
	if !ok {
		return false
	}
	for i, existing := range cmds[event] {
		if existing == cb {
			cmds[event] = append(cmds[event][:i:i], cmds[event][i+1:]...)
			return true
		}
	}
	return false
}

// CommandBuffers returns the buffers attached to camera at event.
func (sr *SoftwareRenderer) CommandBuffers(camera *components.Camera, event metadata.CameraEvent) []*metadata.CommandBuffer {
	cmds, ok := sr.commandBuffers[camera.ID]
	if !ok || event >= metadata.CameraEventCount {
		return nil
	}
	return cmds[event]
}

func (sr *SoftwareRenderer) RegisterEndCameraRendering(listener interface{}, callback core.FnOnEvent) bool {
	return sr.events.Register(core.EVENT_CODE_END_CAMERA_RENDERING, listener, callback)
}

func (sr *SoftwareRenderer) UnregisterEndCameraRendering(listener interface{}) bool {
	return sr.events.Unregister(core.EVENT_CODE_END_CAMERA_RENDERING, listener)
}

func (sr *SoftwareRenderer) EndCameraRenderingListeners() int {
	return sr.events.ListenerCount(core.EVENT_CODE_END_CAMERA_RENDERING)
}

// AddCamera makes camera part of the frame. Only active cameras without a
// parent are rendered as roots.
func (sr *SoftwareRenderer) AddCamera(camera *components.Camera) {
	for _, c := range sr.cameras {
		if c == camera {
			return
		}
	}
	sr.cameras = append(sr.cameras, camera)
}

func (sr *SoftwareRenderer) RemoveCamera(camera *components.Camera) {
	for i, c := range sr.cameras {
		if c == camera {
			sr.cameras = append(sr.cameras[:i:i], sr.cameras[i+1:]...)
			return
		}
	}
}

func (sr *SoftwareRenderer) NamedOutput(name string) (NamedOutput, bool) {
	o, ok := sr.namedOutputs[name]
	return o, ok
}

func (sr *SoftwareRenderer) Stats() Stats {
	return sr.stats
}

// LiveRenderTargets is the number of created and not yet destroyed targets.
func (sr *SoftwareRenderer) LiveRenderTargets() int {
	return len(sr.surfaces)
}

// RenderFrame renders every root camera once, then advances the frame number.
func (sr *SoftwareRenderer) RenderFrame() error {
	for k := range sr.namedOutputs {
		delete(sr.namedOutputs, k)
	}
	for _, camera := range sr.cameras {
		if camera.Parent() != nil || !camera.Active {
			continue
		}
		if err := sr.renderCamera(camera); err != nil {
			return err
		}
	}
	sr.FrameNumber++
	return nil
}

func (sr *SoftwareRenderer) renderCamera(camera *components.Camera) error {
	buffers := sr.scene.Render(camera, sr.FrameNumber)
	ctx := newCameraContext(sr, camera, buffers)
	defer ctx.release()
	sr.stats.CameraPasses++

	mode := camera.DepthTextureMode
	wantsMotion := mode&metadata.DepthTextureModeMotionVectors != 0
	wantsDepth := wantsMotion || mode&metadata.DepthTextureModeDepth != 0

	run := func(event metadata.CameraEvent) error {
		for _, cb := range sr.CommandBuffers(camera, event) {
			if err := ctx.execute(cb); err != nil {
				return err
			}
		}
		return nil
	}

	if err := run(metadata.CameraEventBeforeDepthTexture); err != nil {
		return err
	}
	ctx.available[metadata.BuiltinBufferDepth] = wantsDepth
	if err := run(metadata.CameraEventAfterDepthTexture); err != nil {
		return err
	}
	if err := run(metadata.CameraEventBeforeMotionVectors); err != nil {
		return err
	}
	ctx.available[metadata.BuiltinBufferMotionVectors] = wantsMotion && sr.config.SupportsMotionVectors
	if err := run(metadata.CameraEventAfterMotionVectors); err != nil {
		return err
	}
	if err := run(metadata.CameraEventBeforeForwardOpaque); err != nil {
		return err
	}
	ctx.available[metadata.BuiltinBufferCameraTarget] = true
	if err := run(metadata.CameraEventAfterForwardOpaque); err != nil {
		return err
	}

	// Inactive children are driven as part of this camera, at their own size.
	for _, child := range camera.Children() {
		if child.Active {
			continue
		}
		if err := sr.renderCamera(child); err != nil {
			return err
		}
	}

	if err := run(metadata.CameraEventAfterEverything); err != nil {
		return err
	}

	sr.events.Fire(core.EVENT_CODE_END_CAMERA_RENDERING, sr, core.EventContext{
		Data: &core.EndCameraRenderingEvent{
			CameraID:    camera.ID,
			FrameNumber: sr.FrameNumber,
		},
	})
	return nil
}

func (sr *SoftwareRenderer) surfaceFor(target *metadata.RenderTarget) (*surface, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil", core.ErrUnknownRenderTarget)
	}
	s, ok := sr.surfaces[target.ID]
	if !ok || s.target != target || target.Released {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownRenderTarget, target.Name)
	}
	return s, nil
}
