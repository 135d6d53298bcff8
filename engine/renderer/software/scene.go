package software

import (
	"image"

	"github.com/spaghettifunk/depthmotion/engine/math"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
)

// Scene rasterizes whatever the host application draws.
type Scene interface {
	// Render draws the scene as seen by camera for frame, at the camera's pixel size.
	Render(camera *components.Camera, frame uint64) *FrameBuffers
}

/** @brief The builtin buffers a camera pass produces. */
type FrameBuffers struct {
	Width  int
	Height int
	/** @brief The camera colour target. */
	Color *image.RGBA
	/** @brief Linear depth in [0, 1], 0 at the near plane. Row major. */
	Depth []float32
	/** @brief Screen space displacement since the previous frame, in pixels. Row major. */
	Motion []math.Vec2
}

func NewFrameBuffers(width, height int) *FrameBuffers {
	return &FrameBuffers{
		Width:  width,
		Height: height,
		Color:  image.NewRGBA(image.Rect(0, 0, width, height)),
		Depth:  make([]float32, width*height),
		Motion: make([]math.Vec2, width*height),
	}
}
