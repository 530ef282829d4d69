package scheduler

import "time"

// SchedulerBuilderOption is a functional option for configuring a Scheduler.
// Use the With* functions to create options.
type SchedulerBuilderOption func(s *scheduler)

// WithMaxFrameDelta caps the delta time reported to frame callbacks so a stalled window
// (dragged, minimized) does not produce one huge animation step. Timers still see real time.
// Pass 0 to disable the cap.
//
// Parameters:
//   - d: the maximum delta reported to frame callbacks (default 250ms)
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithMaxFrameDelta(d time.Duration) SchedulerBuilderOption {
	return func(s *scheduler) {
		if d < 0 {
			d = 0
		}
		s.maxDelta = d
	}
}
