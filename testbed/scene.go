package testbed

import (
	stdmath "math"

	"github.com/google/uuid"
	"github.com/spaghettifunk/depthmotion/engine/math"
	"github.com/spaghettifunk/depthmotion/engine/renderer/components"
	"github.com/spaghettifunk/depthmotion/engine/renderer/software"
)

const stripeCount = 8

/**
 * @brief Procedural scene: a disc bouncing across a striped background.
 * The background scrolls with the camera yaw so both the disc and the
 * background produce motion vectors.
 */
type DiscScene struct {
	// Start position and speed in normalized screen units per frame.
	Start    math.Vec2
	Velocity math.Vec2
	// Radius relative to the image height.
	Radius float32

	lastYaw map[uuid.UUID]float32
}

func NewDiscScene() *DiscScene {
	return &DiscScene{
		Start:    math.NewVec2(0.2, 0.3),
		Velocity: math.NewVec2(0.011, 0.007),
		Radius:   0.15,
		lastYaw:  make(map[uuid.UUID]float32),
	}
}

// bounce folds t into [0, 1] as a triangle wave.
func bounce(t float32) float32 {
	f := float32(stdmath.Mod(float64(t), 2.0))
	if f < 0 {
		f += 2
	}
	if f > 1 {
		return 2 - f
	}
	return f
}

// DiscCenter is the normalized disc position at frame.
func (s *DiscScene) DiscCenter(frame uint64) math.Vec2 {
	p := s.Start.Add(s.Velocity.MulScalar(float32(frame)))
	return math.NewVec2(bounce(p.X), bounce(p.Y))
}

func (s *DiscScene) Render(camera *components.Camera, frame uint64) *software.FrameBuffers {
	w, h := camera.PixelWidth, camera.PixelHeight
	fb := software.NewFrameBuffers(w, h)

	size := math.NewVec2(float32(w), float32(h))
	center := s.DiscCenter(frame)
	previous := center
	if frame > 0 {
		previous = s.DiscCenter(frame - 1)
	}
	cx, cy := center.X*size.X, center.Y*size.Y
	discMotion := math.NewVec2((center.X-previous.X)*size.X, (center.Y-previous.Y)*size.Y)
	radius := s.Radius * size.Y

	// Pixels per radian of yaw, so the background pans with the camera.
	pixelsPerRadian := size.X / camera.FOV
	yaw := camera.GetEulerRotation().Y
	lastYaw, seen := s.lastYaw[camera.ID]
	if !seen {
		lastYaw = yaw
	}
	s.lastYaw[camera.ID] = yaw
	pan := yaw * pixelsPerRadian
	backgroundMotion := math.NewVec2(-(yaw-lastYaw)*pixelsPerRadian, 0)
	stripeWidth := size.X / stripeCount

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			px, py := float32(x)+0.5, float32(y)+0.5
			d := math.NewVec2(px-cx, py-cy).Length()
			o := fb.Color.PixOffset(x, y)
			if d <= radius {
				shade := 1 - 0.5*d/radius
				fb.Color.Pix[o+0] = uint8(240 * shade)
				fb.Color.Pix[o+1] = uint8(140 * shade)
				fb.Color.Pix[o+2] = uint8(40 * shade)
				fb.Depth[i] = 0.3 + 0.2*d/radius
				fb.Motion[i] = discMotion
			} else {
				stripe := int(stdmath.Floor(float64((px + pan) / stripeWidth)))
				base := uint8(40 + 120*py/size.Y)
				if stripe%2 == 0 {
					base += 40
				}
				fb.Color.Pix[o+0] = base / 2
				fb.Color.Pix[o+1] = base
				fb.Color.Pix[o+2] = base
				fb.Depth[i] = 1
				fb.Motion[i] = backgroundMotion
			}
			fb.Color.Pix[o+3] = 0xff
		}
	}
	return fb
}
