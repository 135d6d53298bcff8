package software

import (
	"fmt"

	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

/** @brief State of one camera pass while its command buffers execute. */
type cameraContext struct {
	renderer    *SoftwareRenderer
	camera      *components.Camera
	buffers     *FrameBuffers
	available   map[metadata.BuiltinBuffer]bool
	temporaries map[int]*surface
	converted   map[metadata.BuiltinBuffer]blitSource
}

func newCameraContext(r *SoftwareRenderer, camera *components.Camera, buffers *FrameBuffers) *cameraContext {
	return &cameraContext{
		renderer:    r,
		camera:      camera,
		buffers:     buffers,
		available:   make(map[metadata.BuiltinBuffer]bool, 3),
		temporaries: make(map[int]*surface),
		converted:   make(map[metadata.BuiltinBuffer]blitSource, 3),
	}
}

func (cc *cameraContext) execute(cb *metadata.CommandBuffer) error {
	for i, cmd := range cb.Commands {
		switch cmd.Type {
		case metadata.CommandTypeGetTemporaryRT:
			w, h := cmd.Width, cmd.Height
			if w < 0 {
				w = cc.camera.PixelWidth
			}
			if h < 0 {
				h = cc.camera.PixelHeight
			}
			if w == 0 || h == 0 {
				return fmt.Errorf("command buffer %s[%d]: empty temporary %dx%d", cb.Name, i, w, h)
			}
			cc.temporaries[cmd.TemporaryID] = newSurface(nil, w, h, cmd.Format)
		case metadata.CommandTypeSetNamedOutput:
			tmp, ok := cc.temporaries[cmd.TemporaryID]
			if !ok {
				return fmt.Errorf("command buffer %s[%d]: named output %s refers to undeclared temporary %d", cb.Name, i, cmd.Name, cmd.TemporaryID)
			}
			cc.renderer.namedOutputs[cmd.Name] = NamedOutput{
				CameraID:    cc.camera.ID,
				TemporaryID: cmd.TemporaryID,
				Width:       tmp.width(),
				Height:      tmp.height(),
				Format:      tmp.format,
			}
		case metadata.CommandTypeBlit:
			src, err := cc.resolveSource(cmd.Source)
			if err != nil {
				return fmt.Errorf("command buffer %s[%d]: %w", cb.Name, i, err)
			}
			dst, err := cc.resolveDest(cmd.Dest)
			if err != nil {
				return fmt.Errorf("command buffer %s[%d]: %w", cb.Name, i, err)
			}
			blit(src, dst)
		default:
			return fmt.Errorf("command buffer %s[%d]: unknown command type %d", cb.Name, i, cmd.Type)
		}
	}
	return nil
}

func (cc *cameraContext) resolveSource(id metadata.RenderTargetIdentifier) (blitSource, error) {
	switch id.Kind {
	case metadata.IdentifierKindBuiltin:
		if !cc.available[id.Builtin] {
			return blitSource{}, fmt.Errorf("%w: %s on camera %s", core.ErrSourceUnavailable, id.Builtin, cc.camera.Name)
		}
		if src, ok := cc.converted[id.Builtin]; ok {
			return src, nil
		}
		src := blitSource{
			color:  builtinImage(cc.buffers, id.Builtin),
			smooth: id.Builtin == metadata.BuiltinBufferCameraTarget,
		}
		if id.Builtin == metadata.BuiltinBufferDepth {
			src.depth = depthToUint16(cc.buffers.Depth)
		}
		cc.converted[id.Builtin] = src
		return src, nil
	case metadata.IdentifierKindTemporary:
		tmp, ok := cc.temporaries[id.TemporaryID]
		if !ok {
			return blitSource{}, fmt.Errorf("undeclared temporary %d", id.TemporaryID)
		}
		return blitSource{color: tmp.color, depth: tmp.depth}, nil
	case metadata.IdentifierKindTarget:
		s, err := cc.renderer.surfaceFor(id.Target)
		if err != nil {
			return blitSource{}, err
		}
		return blitSource{color: s.color, depth: s.depth}, nil
	default:
		return blitSource{}, fmt.Errorf("invalid blit source %s", id)
	}
}

func (cc *cameraContext) resolveDest(id metadata.RenderTargetIdentifier) (*surface, error) {
	switch id.Kind {
	case metadata.IdentifierKindTemporary:
		tmp, ok := cc.temporaries[id.TemporaryID]
		if !ok {
			return nil, fmt.Errorf("undeclared temporary %d", id.TemporaryID)
		}
		return tmp, nil
	case metadata.IdentifierKindTarget:
		return cc.renderer.surfaceFor(id.Target)
	default:
		return nil, fmt.Errorf("invalid blit destination %s", id)
	}
}

// release drops every temporary declared during the pass.
func (cc *cameraContext) release() {
	for id := range cc.temporaries {
		delete(cc.temporaries, id)
	}
}
