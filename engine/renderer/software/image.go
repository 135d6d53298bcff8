package software

import (
	"image"

	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

// MotionVectorScale maps one pixel of displacement to this many 8-bit steps
// around the 128 midpoint when motion vectors are stored in colour channels.
const MotionVectorScale float32 = 4.0

/** @brief CPU memory behind a render target or temporary. */
type surface struct {
	target *metadata.RenderTarget
	format metadata.PixelFormat
	color  *image.RGBA
	// Only allocated for formats with a depth attachment.
	depth []uint16
}

func newSurface(target *metadata.RenderTarget, width, height int, format metadata.PixelFormat) *surface {
	s := &surface{
		target: target,
		format: format,
		color:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	if format.DepthBits() > 0 {
		s.depth = make([]uint16, width*height)
	}
	s.applyFormat()
	return s
}

func (s *surface) width() int {
	return s.color.Rect.Dx()
}

func (s *surface) height() int {
	return s.color.Rect.Dy()
}

// applyFormat drops what the pixel format cannot store. Alpha is kept opaque.
func (s *surface) applyFormat() {
	pix := s.color.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if s.format == metadata.PixelFormatRG16 {
			pix[i+2] = 0
		}
		pix[i+3] = 0xff
	}
}

func encodeDepth(d float32) uint8 {
	if d <= 0 {
		return 0
	}
	if d >= 1 {
		return 0xff
	}
	return uint8(d*255.0 + 0.5)
}

func encodeMotion(v float32) uint8 {
	c := 128.0 + v*MotionVectorScale
	if c <= 0 {
		return 0
	}
	if c >= 255 {
		return 0xff
	}
	return uint8(c + 0.5)
}

// builtinImage converts one of the pass buffers into an 8-bit image.
func builtinImage(fb *FrameBuffers, buffer metadata.BuiltinBuffer) *image.RGBA {
	switch buffer {
	case metadata.BuiltinBufferCameraTarget:
		return fb.Color
	case metadata.BuiltinBufferDepth:
		img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
		for i, d := range fb.Depth {
			v := encodeDepth(d)
			img.Pix[i*4+0] = v
			img.Pix[i*4+1] = v
			img.Pix[i*4+2] = v
			img.Pix[i*4+3] = 0xff
		}
		return img
	case metadata.BuiltinBufferMotionVectors:
		img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
		for i, m := range fb.Motion {
			img.Pix[i*4+0] = encodeMotion(m.X)
			img.Pix[i*4+1] = encodeMotion(m.Y)
			img.Pix[i*4+2] = 0
			img.Pix[i*4+3] = 0xff
		}
		return img
	default:
		return nil
	}
}
