package metadata

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	/** @brief Whether the platform produces per-pixel motion vectors. */
	SupportsMotionVectors bool
}

/** @brief Pixel formats of the capture render targets. */
type PixelFormat uint8

const (
	/** @brief 8 bits per channel RGBA colour. */
	PixelFormatARGB32 PixelFormat = iota
	/** @brief 8 bits per channel two channel (red, green) format. */
	PixelFormatRG16
	/** @brief 8 bits per channel RGBA colour with an attached 16-bit depth buffer. */
	PixelFormatARGB32Depth16
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatARGB32:
		return "ARGB32"
	case PixelFormatRG16:
		return "RG16"
	case PixelFormatARGB32Depth16:
		return "ARGB32+D16"
	default:
		return "unknown"
	}
}

// DepthBits returns the size of the depth attachment for the format.
func (f PixelFormat) DepthBits() int {
	if f == PixelFormatARGB32Depth16 {
		return 16
	}
	return 0
}

/** @brief Buffers the host pipeline produces for each camera. */
type BuiltinBuffer uint8

const (
	BuiltinBufferNone BuiltinBuffer = iota
	/** @brief The camera colour target. */
	BuiltinBufferCameraTarget
	/** @brief The camera depth buffer. */
	BuiltinBufferDepth
	/** @brief Screen space motion vectors between the previous and current frame. */
	BuiltinBufferMotionVectors
)

func (b BuiltinBuffer) String() string {
	switch b {
	case BuiltinBufferCameraTarget:
		return "CameraTarget"
	case BuiltinBufferDepth:
		return "Depth"
	case BuiltinBufferMotionVectors:
		return "MotionVectors"
	default:
		return "None"
	}
}

/**
 * @brief Insertion points in a camera's render timeline, in execution order.
 * Command buffers attached at one point run after the stage it names.
 */
type CameraEvent uint8

const (
	CameraEventBeforeDepthTexture CameraEvent = iota
	CameraEventAfterDepthTexture
	CameraEventBeforeMotionVectors
	CameraEventAfterMotionVectors
	CameraEventBeforeForwardOpaque
	CameraEventAfterForwardOpaque
	CameraEventAfterEverything

	CameraEventCount
)

func (e CameraEvent) String() string {
	switch e {
	case CameraEventBeforeDepthTexture:
		return "BeforeDepthTexture"
	case CameraEventAfterDepthTexture:
		return "AfterDepthTexture"
	case CameraEventBeforeMotionVectors:
		return "BeforeMotionVectors"
	case CameraEventAfterMotionVectors:
		return "AfterMotionVectors"
	case CameraEventBeforeForwardOpaque:
		return "BeforeForwardOpaque"
	case CameraEventAfterForwardOpaque:
		return "AfterForwardOpaque"
	case CameraEventAfterEverything:
		return "AfterEverything"
	default:
		return "Unknown"
	}
}

/** @brief Flags telling the pipeline which extra textures a camera must produce. */
type DepthTextureMode uint8

const (
	DepthTextureModeNone          DepthTextureMode = 0x0
	DepthTextureModeDepth         DepthTextureMode = 0x1
	DepthTextureModeMotionVectors DepthTextureMode = 0x2
)
