package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec2i represents an integer 2D size, typically a resolution in pixels.
type Vec2i struct {
	X, Y int
}

/**
 * @brief Represents the transform of an object in the world.
 * Transforms can have a parent whose own transform is then
 * taken into account.
 */
type Transform struct {
	/** @brief The position relative to the parent. */
	Position Vec3
	/** @brief Euler rotation (pitch, yaw, roll) relative to the parent. */
	Rotation Vec3
	/** @brief A pointer to a parent transform if one is assigned. Can also be nil. */
	Parent *Transform
}
