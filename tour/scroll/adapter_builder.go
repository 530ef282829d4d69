package scroll

import "time"

// AdapterBuilderOption configures an Adapter during construction.
type AdapterBuilderOption func(*adapter)

// WithLimit sets the initial scrollable height.
//
// Parameters:
//   - limit: the maximum scroll position (values <= 0 are ignored)
//
// Returns:
//   - AdapterBuilderOption: a function that applies the limit
func WithLimit(limit float64) AdapterBuilderOption {
	return func(a *adapter) {
		if limit > 0 {
			a.limit = limit
		}
	}
}

// WithDuration sets the wheel smoothing duration.
//
// Parameters:
//   - d: the smoothing duration (values <= 0 are ignored)
//
// Returns:
//   - AdapterBuilderOption: a function that applies the duration
func WithDuration(d time.Duration) AdapterBuilderOption {
	return func(a *adapter) {
		if d > 0 {
			a.duration = d
		}
	}
}

// WithScrollToDuration sets the duration of programmatic ScrollTo animations.
//
// Parameters:
//   - d: the animation duration (values <= 0 are ignored)
//
// Returns:
//   - AdapterBuilderOption: a function that applies the duration
func WithScrollToDuration(d time.Duration) AdapterBuilderOption {
	return func(a *adapter) {
		if d > 0 {
			a.scrollToDuration = d
		}
	}
}

// WithWheelMultiplier scales raw wheel deltas.
//
// Parameters:
//   - m: the multiplier (values <= 0 are ignored)
//
// Returns:
//   - AdapterBuilderOption: a function that applies the multiplier
func WithWheelMultiplier(m float64) AdapterBuilderOption {
	return func(a *adapter) {
		if m > 0 {
			a.wheelMultiplier = m
		}
	}
}

// WithEasing replaces the wheel smoothing curve.
//
// Parameters:
//   - e: the easing function (nil is ignored)
//
// Returns:
//   - AdapterBuilderOption: a function that applies the easing
func WithEasing(e Easing) AdapterBuilderOption {
	return func(a *adapter) {
		if e != nil {
			a.easing = e
		}
	}
}
