package universe

import "errors"

var (
	// ErrIndexOutOfRange is returned when a selection names a community that does not exist.
	ErrIndexOutOfRange = errors.New("community index out of range")

	// ErrLocked is returned when a selection arrives while the input lockout is running.
	ErrLocked = errors.New("selection locked while animating")

	// ErrInvalidCommunity is returned when a creation request is missing required fields.
	ErrInvalidCommunity = errors.New("invalid community")
)
