package console

import (
	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/tour/catalog"
)

// ModelBuilderOption configures a Model during construction.
type ModelBuilderOption func(*Model)

// WithPoster routes navigation onto the tour's goroutine. Pass the scheduler's Post when the
// console runs on its own goroutine. By default calls run inline.
//
// Parameters:
//   - post: queues fn for the tour's goroutine
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithPoster(post func(fn func())) ModelBuilderOption {
	return func(m *Model) {
		if post != nil {
			m.post = post
		}
	}
}

// WithStats shows frame statistics in the footer.
//
// Parameters:
//   - stats: returns the latest profiler snapshot
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithStats(stats func() profiler.Snapshot) ModelBuilderOption {
	return func(m *Model) {
		m.stats = stats
	}
}

// WithRecords lists records instead of the built-in catalog. Empty slices are ignored.
//
// Parameters:
//   - records: the planets to list, in tour order
//
// Returns:
//   - ModelBuilderOption: option function to apply
func WithRecords(records []catalog.PlanetRecord) ModelBuilderOption {
	return func(m *Model) {
		if len(records) > 0 {
			m.records = append([]catalog.PlanetRecord(nil), records...)
		}
	}
}
