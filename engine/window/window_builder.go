package window

// WindowBuilderOption configures a window before the platform window is created.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text. An empty title keeps the default.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		if title != "" {
			w.title = title
		}
	}
}

// WithWidth sets the initial client width in pixels.
// Non-positive values keep the default and small values are raised to MinWidth.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = max(width, MinWidth)
		}
	}
}

// WithHeight sets the initial client height in pixels.
// Non-positive values keep the default and small values are raised to MinHeight.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if height > 0 {
			w.height = max(height, MinHeight)
		}
	}
}
