package systems

import (
	"github.com/spaghettifunk/depthmotion/engine/config"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

const (
	ChannelView   = "view"
	ChannelDepth  = "depth"
	ChannelMotion = "motion"

	ViewTag   = "_View"
	DepthTag  = "_Depth"
	MotionTag = "_Motion"

	OutputRootDir = "OutputData"
	ViewDir       = "View"
	DepthDir      = "Depth"
	MotionDir     = "Motion"
)

// ChannelTable returns the capture channels in write order: view, depth, motion.
func ChannelTable(cfg *config.CaptureConfig) []metadata.ChannelDescriptor {
	viewSource := metadata.BuiltinBufferCameraTarget
	if cfg.ViewSource == config.ViewSourceMotionVectors {
		viewSource = metadata.BuiltinBufferMotionVectors
	}
	return []metadata.ChannelDescriptor{
		{
			Name:        ChannelView,
			Tag:         ViewTag,
			Dir:         ViewDir,
			Source:      viewSource,
			Resolution:  metadata.ResolutionFull,
			Format:      metadata.PixelFormatARGB32,
			Camera:      metadata.CameraKindPrimary,
			AttachPoint: metadata.CameraEventAfterEverything,
		},
		{
			Name:        ChannelDepth,
			Tag:         DepthTag,
			Dir:         DepthDir,
			Source:      metadata.BuiltinBufferDepth,
			Resolution:  metadata.ResolutionDownscaled,
			Format:      metadata.PixelFormatARGB32Depth16,
			Camera:      metadata.CameraKindDownscaled,
			AttachPoint: metadata.CameraEventAfterDepthTexture,
		},
		{
			Name:        ChannelMotion,
			Tag:         MotionTag,
			Dir:         MotionDir,
			Source:      metadata.BuiltinBufferMotionVectors,
			Resolution:  metadata.ResolutionDownscaled,
			Format:      metadata.PixelFormatRG16,
			Camera:      metadata.CameraKindDownscaled,
			AttachPoint: metadata.CameraEventAfterEverything,
		},
	}
}

func channelDirs(channels []metadata.ChannelDescriptor) []string {
	dirs := make([]string, len(channels))
	for i, ch := range channels {
		dirs[i] = ch.Dir
	}
	return dirs
}

// requiredTextureMode is what a camera must produce for source to be readable.
func requiredTextureMode(source metadata.BuiltinBuffer) metadata.DepthTextureMode {
	switch source {
	case metadata.BuiltinBufferDepth:
		return metadata.DepthTextureModeDepth
	case metadata.BuiltinBufferMotionVectors:
		return metadata.DepthTextureModeDepth | metadata.DepthTextureModeMotionVectors
	default:
		return metadata.DepthTextureModeNone
	}
}
