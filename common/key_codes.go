package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeyQ     = 81 // Q key (ASCII)
	KeyE     = 69 // E key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)
	KeySlash = 47 // Slash key (ASCII)

	KeyEsc       = 256 // Escape key (GLFW)
	KeyEnter     = 257 // Enter key (GLFW)
	KeyTab       = 258 // Tab key (GLFW)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyRight     = 262 // Right arrow (GLFW)
	KeyLeft      = 263 // Left arrow (GLFW)
	KeyDown      = 264 // Down arrow (GLFW)
	KeyUp        = 265 // Up arrow (GLFW)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
	Key6 = 54 // 6 key (ASCII)
	Key7 = 55 // 7 key (ASCII)
	Key8 = 56 // 8 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// DigitIndex maps the number row keys 1..9 to zero-based indices 0..8.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - int: the index, or -1 if keyCode is not one of Key1..Key9
func DigitIndex(keyCode uint32) int {
	if keyCode >= Key1 && keyCode <= Key9 {
		return int(keyCode - Key1)
	}
	return -1
}
