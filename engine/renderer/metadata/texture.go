package metadata

import (
	"image"
	"image/color"
)

/**
 * @brief Handle to a GPU resident render target. The backend owns the memory;
 * this only carries identity and shape.
 */
type RenderTarget struct {
	/** @brief Backend identifier. */
	ID uint32
	/** @brief Human readable name, used in logs. */
	Name   string
	Width  int
	Height int
	Format PixelFormat
	/** @brief Set once the backend destroyed the target. */
	Released bool
}

// Rect returns the full pixel rectangle of the target.
func (rt *RenderTarget) Rect() image.Rectangle {
	return image.Rect(0, 0, rt.Width, rt.Height)
}

/**
 * @brief CPU side 8-bit RGB image used to pull render target data to disk.
 * Alpha is always opaque so the PNG encoder writes RGB.
 */
type StagingImage struct {
	Name  string
	Image *image.RGBA
}

func NewStagingImage(name string, width, height int) *StagingImage {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &StagingImage{
		Name:  name,
		Image: img,
	}
}

func (s *StagingImage) Width() int {
	return s.Image.Rect.Dx()
}

func (s *StagingImage) Height() int {
	return s.Image.Rect.Dy()
}

// Fits reports whether a target of the given size can be read into this image.
func (s *StagingImage) Fits(rt *RenderTarget) bool {
	return rt.Width <= s.Width() && rt.Height <= s.Height()
}

// SetRGB writes a pixel keeping alpha opaque.
func (s *StagingImage) SetRGB(x, y int, r, g, b uint8) {
	s.Image.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
}
