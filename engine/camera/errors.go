package camera

import "errors"

var (
	// ErrInvalidTarget is returned when an animation target has a NaN or infinite component.
	ErrInvalidTarget = errors.New("invalid animation target")

	// ErrNoActiveSurface is returned when an animation is requested with no camera or frame source attached.
	ErrNoActiveSurface = errors.New("no active render surface")
)
