package scroll

import "math"

// Easing maps linear progress t in [0,1] to eased progress.
type Easing func(t float64) float64

// EaseOutExpo is the wheel smoothing curve. It reaches 1 slightly before t = 1 so a wheel
// animation settles without a visible tail.
func EaseOutExpo(t float64) float64 {
	return math.Min(1, 1.001-math.Pow(2, -10*t))
}

// EaseInOutCubic is the curve used for programmatic scrolling.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
