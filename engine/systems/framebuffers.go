package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/depthmotion/engine/core"
	"github.com/spaghettifunk/depthmotion/engine/math"
	"github.com/spaghettifunk/depthmotion/engine/renderer"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

/**
 * @brief Persistent GPU targets the blit jobs write into, one per channel, plus
 * one CPU staging image per resolution. Created once, never resized.
 */
type FrameBufferSet struct {
	backend  renderer.RendererBackend
	channels []metadata.ChannelDescriptor
	targets  []*metadata.RenderTarget

	full       math.Vec2i
	downscaled math.Vec2i

	fullStaging       *metadata.StagingImage
	downscaledStaging *metadata.StagingImage

	released bool
}

/**
 * @brief Allocates a render target for every channel at its resolution and
 * format. On failure the targets created so far are destroyed.
 */
func NewFrameBufferSet(backend renderer.RendererBackend, channels []metadata.ChannelDescriptor, full, downscaled math.Vec2i) (*FrameBufferSet, error) {
	fbs := &FrameBufferSet{
		backend:    backend,
		channels:   channels,
		targets:    make([]*metadata.RenderTarget, 0, len(channels)),
		full:       full,
		downscaled: downscaled,
	}
	for _, ch := range channels {
		res := fbs.Resolution(ch.Resolution)
		rt, err := backend.RenderTargetCreate(ch.Name, res.X, res.Y, ch.Format)
		if err != nil {
			err = fmt.Errorf("func NewFrameBufferSet - failed to create %s target: %w", ch.Name, err)
			core.LogError(err.Error())
			if rerr := fbs.Release(); rerr != nil {
				core.LogError(rerr.Error())
			}
			return nil, err
		}
		fbs.targets = append(fbs.targets, rt)
	}
	fbs.fullStaging = metadata.NewStagingImage("full_staging", full.X, full.Y)
	fbs.downscaledStaging = metadata.NewStagingImage("downscaled_staging", downscaled.X, downscaled.Y)
	return fbs, nil
}

// Target returns the persistent target of the named channel, nil if unknown.
func (fbs *FrameBufferSet) Target(channel string) *metadata.RenderTarget {
	for i, ch := range fbs.channels {
		if ch.Name == channel && i < len(fbs.targets) {
			return fbs.targets[i]
		}
	}
	return nil
}

func (fbs *FrameBufferSet) Staging(kind metadata.ResolutionKind) *metadata.StagingImage {
	if kind == metadata.ResolutionFull {
		return fbs.fullStaging
	}
	return fbs.downscaledStaging
}

func (fbs *FrameBufferSet) Resolution(kind metadata.ResolutionKind) math.Vec2i {
	if kind == metadata.ResolutionFull {
		return fbs.full
	}
	return fbs.downscaled
}

func (fbs *FrameBufferSet) Released() bool {
	return fbs.released
}

/**
 * @brief Destroys every target exactly once. Later calls do nothing.
 * @return The joined destroy errors, if any.
 */
func (fbs *FrameBufferSet) Release() error {
	if fbs.released {
		return nil
	}
	fbs.released = true
	var errs []error
	for _, rt := range fbs.targets {
		if err := fbs.backend.RenderTargetDestroy(rt); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", rt.Name, err))
		}
	}
	fbs.targets = nil
	fbs.fullStaging = nil
	fbs.downscaledStaging = nil
	return errors.Join(errs...)
}
