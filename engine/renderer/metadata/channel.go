package metadata

/** @brief Which configured resolution a channel works at. */
type ResolutionKind uint8

const (
	ResolutionFull ResolutionKind = iota
	ResolutionDownscaled
)

/** @brief Which camera a channel's command buffer is attached to. */
type CameraKind uint8

const (
	CameraKindPrimary CameraKind = iota
	CameraKindDownscaled
)

/**
 * @brief One row of the capture table: where a channel reads from, at which
 * resolution and format it is stored, and when in the pipeline it is copied.
 */
type ChannelDescriptor struct {
	/** @brief Short name, used for the command buffer and logs. */
	Name string
	/** @brief Output name the temporary is published under. */
	Tag string
	/** @brief Subfolder of the run directory. */
	Dir         string
	Source      BuiltinBuffer
	Resolution  ResolutionKind
	Format      PixelFormat
	Camera      CameraKind
	AttachPoint CameraEvent
}
