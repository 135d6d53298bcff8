package components

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/depthmotion/engine/math"
	"github.com/spaghettifunk/depthmotion/engine/renderer/metadata"
)

/**
 * @brief Represents a camera that the host pipeline renders. The identity is
 * what end of frame events carry, so it is stable for the camera lifetime.
 */
type Camera struct {
	ID   uuid.UUID
	Name string
	/** @brief Render size in pixels. */
	PixelWidth  int
	PixelHeight int
	/** @brief Vertical field of view in radians. */
	FOV      float32
	NearClip float32
	FarClip  float32
	/** @brief Position and rotation, optionally relative to a parent. */
	Transform *math.Transform
	/**
	 * @brief Inactive cameras are never rendered on their own. When parented to
	 * a rendered camera they are driven as part of its frame.
	 */
	Active                 bool
	AllowDynamicResolution bool
	DepthTextureMode       metadata.DepthTextureMode

	parent   *Camera
	children []*Camera
}

func NewCamera(name string, width, height int) *Camera {
	return &Camera{
		ID:          uuid.New(),
		Name:        name,
		PixelWidth:  width,
		PixelHeight: height,
		FOV:         math.DegToRad(60.0),
		NearClip:    0.1,
		FarClip:     100.0,
		Transform:   math.TransformCreate(),
		Active:      true,
	}
}

// CopyFrom copies every rendering parameter of other. Identity, hierarchy and
// the transform instance are kept.
func (c *Camera) CopyFrom(other *Camera) {
	c.PixelWidth = other.PixelWidth
	c.PixelHeight = other.PixelHeight
	c.FOV = other.FOV
	c.NearClip = other.NearClip
	c.FarClip = other.FarClip
	c.Transform.Position = other.Transform.Position
	c.Transform.Rotation = other.Transform.Rotation
	c.Active = other.Active
	c.AllowDynamicResolution = other.AllowDynamicResolution
	c.DepthTextureMode = other.DepthTextureMode
}

// SetParent attaches c under parent. The transform becomes relative to the
// parent's transform, at the parent's origin.
func (c *Camera) SetParent(parent *Camera) {
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = parent
	if parent == nil {
		c.Transform.Parent = nil
		return
	}
	c.Transform.Parent = parent.Transform
	c.Transform.Position = math.NewVec3Zero()
	c.Transform.Rotation = math.NewVec3Zero()
	parent.children = append(parent.children, c)
}

func (c *Camera) Parent() *Camera {
	return c.parent
}

func (c *Camera) Children() []*Camera {
	return c.children
}

func (c *Camera) removeChild(child *Camera) {
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i:i], c.children[i+1:]...)
			return
		}
	}
}

func (c *Camera) Resolution() math.Vec2i {
	return math.NewVec2i(c.PixelWidth, c.PixelHeight)
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Transform.WorldPosition()
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Transform.SetPosition(position)
}

func (c *Camera) GetEulerRotation() math.Vec3 {
	return c.Transform.WorldRotation()
}

func (c *Camera) Yaw(amount float32) {
	c.Transform.Rotation.Y += amount
}

func (c *Camera) Pitch(amount float32) {
	c.Transform.Rotation.X += amount

	// Clamp to avoid Gimbal lock.
	limit := float32(1.55334306) // 89 degrees
	c.Transform.Rotation.X = math.Clamp(c.Transform.Rotation.X, -limit, limit)
}
