package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestStepOrderPostedTimersFrames(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.OnFrame(func(float32) { order = append(order, "frame") })
	s.Every(time.Second, func() { order = append(order, "timer") })
	s.Step(t0)
	s.Post(func() { order = append(order, "posted") })
	s.Step(t0.Add(time.Second))

	assert.Equal(t, []string{"frame", "posted", "timer", "frame"}, order)
}

func TestFirstStepReportsZeroDelta(t *testing.T) {
	s := NewScheduler()
	var deltas []float32
	s.OnFrame(func(dt float32) { deltas = append(deltas, dt) })

	s.Step(t0)
	s.Step(t0.Add(16 * time.Millisecond))

	require.Len(t, deltas, 2)
	assert.Zero(t, deltas[0])
	assert.InDelta(t, 0.016, deltas[1], 1e-6)
}

func TestFrameDeltaIsCapped(t *testing.T) {
	s := NewScheduler(WithMaxFrameDelta(100 * time.Millisecond))
	var last float32
	s.OnFrame(func(dt float32) { last = dt })
	s.Step(t0)
	s.Step(t0.Add(5 * time.Second))
	assert.InDelta(t, 0.1, last, 1e-6)
}

func TestTimerFiresOncePerPeriodWithoutBurst(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Every(15*time.Second, func() { fired++ })

	s.Step(t0)
	s.Step(t0.Add(14 * time.Second))
	assert.Equal(t, 0, fired)
	s.Step(t0.Add(15 * time.Second))
	assert.Equal(t, 1, fired)

	// a 60s stall fires once
	s.Step(t0.Add(75 * time.Second))
	assert.Equal(t, 2, fired)
}

func TestCancelDeregisters(t *testing.T) {
	s := NewScheduler()
	calls := 0
	reg := s.OnFrame(func(float32) { calls++ })
	timer := s.Every(time.Second, func() { calls += 100 })
	assert.Equal(t, 1, s.FrameCallbacks())
	assert.Equal(t, 1, s.Timers())

	reg.Cancel()
	reg.Cancel()
	timer.Cancel()
	assert.False(t, reg.Active())
	assert.False(t, timer.Active())
	assert.Zero(t, s.FrameCallbacks())
	assert.Zero(t, s.Timers())

	s.Step(t0)
	s.Step(t0.Add(2 * time.Second))
	assert.Zero(t, calls)
}

func TestCancelFromInsideStepSkipsLaterCallbacks(t *testing.T) {
	s := NewScheduler()
	var second Registration
	ran := false
	s.OnFrame(func(float32) { second.Cancel() })
	second = s.OnFrame(func(float32) { ran = true })

	s.Step(t0)
	assert.False(t, ran)
}

func TestPostIsSafeAcrossGoroutines(t *testing.T) {
	s := NewScheduler()
	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Post(func() { count++ })
		}()
	}
	wg.Wait()
	s.Step(t0)
	assert.Equal(t, 50, count)
}

func TestLoopStartStop(t *testing.T) {
	s := NewScheduler()
	frames := 0
	l := NewLoop(s, func(float32) { frames++ })
	assert.False(t, l.Running())

	l.Start()
	l.Start()
	assert.True(t, l.Running())
	assert.Equal(t, 1, s.FrameCallbacks())
	s.Step(t0)

	l.Stop()
	l.Stop()
	assert.False(t, l.Running())
	assert.Zero(t, s.FrameCallbacks())
	s.Step(t0.Add(time.Second))
	assert.Equal(t, 1, frames)
}

func TestEveryRejectsNonPositivePeriod(t *testing.T) {
	assert.Panics(t, func() { NewScheduler().Every(0, func() {}) })
}
