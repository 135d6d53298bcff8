package software

import (
	"image"

	"golang.org/x/image/draw"
)

/** @brief What a blit reads from. */
type blitSource struct {
	color *image.RGBA
	// Optional 16-bit depth, same size as color.
	depth []uint16
	// Colour data is filtered bilinearly when scaled; encoded data (depth, motion) is point sampled.
	smooth bool
}

func blit(src blitSource, dst *surface) {
	srcRect := src.color.Rect
	dstRect := dst.color.Rect
	switch {
	case srcRect.Eq(dstRect):
		copy(dst.color.Pix, src.color.Pix)
	case src.smooth:
		draw.ApproxBiLinear.Scale(dst.color, dstRect, src.color, srcRect, draw.Src, nil)
	default:
		draw.NearestNeighbor.Scale(dst.color, dstRect, src.color, srcRect, draw.Src, nil)
	}
	dst.applyFormat()

	if dst.depth == nil {
		return
	}
	sw, sh := srcRect.Dx(), srcRect.Dy()
	dw, dh := dstRect.Dx(), dstRect.Dy()
	for y := 0; y < dh; y++ {
		sy := y * sh / dh
		for x := 0; x < dw; x++ {
			sx := x * sw / dw
			si := sy*sw + sx
			if src.depth != nil {
				dst.depth[y*dw+x] = src.depth[si]
			} else {
				// No depth attached to the source, derive it from the red channel.
				dst.depth[y*dw+x] = uint16(src.color.Pix[si*4]) * 257
			}
		}
	}
}

func depthToUint16(depth []float32) []uint16 {
	out := make([]uint16, len(depth))
	for i, d := range depth {
		switch {
		case d <= 0:
			out[i] = 0
		case d >= 1:
			out[i] = 0xffff
		default:
			out[i] = uint16(d*65535.0 + 0.5)
		}
	}
	return out
}
