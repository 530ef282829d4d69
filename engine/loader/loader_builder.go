package loader

import (
	"github.com/Carmen-Shannon/oxy-tour/engine/scheduler"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithScheduler routes asynchronous results through the scheduler so callbacks run on the
// goroutine that owns the scene.
//
// Parameters:
//   - s: the scheduler to post results to
//
// Returns:
//   - LoaderBuilderOption: a function that applies the scheduler option to a loader
func WithScheduler(s scheduler.Scheduler) LoaderBuilderOption {
	return func(l *loader) {
		l.sched = s
	}
}

// WithWorkers sets how many decode goroutines the pool may run at once.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(1, n)
	}
}

// WithMaxTextureSize caps decoded textures on their longest axis. Larger images are downscaled
// with Catmull-Rom filtering. Zero disables the cap.
//
// Parameters:
//   - px: the size cap in pixels
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size cap to a loader
func WithMaxTextureSize(px int) LoaderBuilderOption {
	return func(l *loader) {
		if px >= 0 {
			l.maxSize = px
		}
	}
}
