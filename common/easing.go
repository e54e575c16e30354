package common

// EaseOutCubic maps linear progress t in [0, 1] onto the ease-out cubic curve 1 - (1-t)^3.
// Progress outside [0, 1] is clamped.
//
// Parameters:
//   - t: linear progress
//
// Returns:
//   - float32: eased progress in [0, 1]
func EaseOutCubic(t float32) float32 {
	t = Clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// EaseOutCubicIntegral returns the integral of (1 - EaseOutCubic(u)) du over [0, t],
// which is (1 - (1-t)^4) / 4. Used to integrate a speed that decays along the
// ease-out curve without sampling it per frame.
//
// Parameters:
//   - t: linear progress, clamped to [0, 1]
//
// Returns:
//   - float32: the integral value in [0, 0.25]
func EaseOutCubicIntegral(t float32) float32 {
	t = Clamp01(t)
	inv := 1 - t
	return (1 - inv*inv*inv*inv) / 4
}

// Clamp01 clamps v to the closed interval [0, 1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
