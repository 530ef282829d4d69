package scroll

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/engine/scheduler"
)

// stepper drives a scheduler with a synthetic clock.
type stepper struct {
	s   scheduler.Scheduler
	now time.Time
}

func newStepper() *stepper {
	st := &stepper{s: scheduler.NewScheduler(), now: time.Unix(0, 0)}
	st.s.Step(st.now)
	return st
}

func (st *stepper) advance(d time.Duration, steps int) {
	for i := 0; i < steps; i++ {
		st.now = st.now.Add(d)
		st.s.Step(st.now)
	}
}

func TestEasingEndpoints(t *testing.T) {
	assert.InDelta(t, 0, EaseInOutCubic(0), 1e-9)
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-9)
	assert.InDelta(t, 1, EaseInOutCubic(1), 1e-9)
	assert.InDelta(t, 0.001, EaseOutExpo(0), 1e-9)
	assert.Equal(t, 1.0, EaseOutExpo(1))

	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := EaseInOutCubic(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestWheelSmoothsTowardTarget(t *testing.T) {
	st := newStepper()
	a := NewAdapter(st.s, WithLimit(1000))

	var got []float64
	a.Init(func(p float64) { got = append(got, p) })
	a.OnWheel(500)
	assert.True(t, a.Animating())

	st.advance(100*time.Millisecond, 5)
	mid := a.Scroll()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 500.0)

	st.advance(100*time.Millisecond, 10)
	assert.InDelta(t, 500, a.Scroll(), 1e-9)
	assert.False(t, a.Animating())
	require.NotEmpty(t, got)
	assert.InDelta(t, 0.5, got[len(got)-1], 1e-9)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i], got[i-1])
	}
}

func TestWheelClampsToLimit(t *testing.T) {
	st := newStepper()
	a := NewAdapter(st.s, WithLimit(100))
	a.Init(nil)

	a.OnWheel(1e6)
	st.advance(200*time.Millisecond, 10)
	assert.Equal(t, 100.0, a.Scroll())
	assert.Equal(t, 1.0, a.Progress())

	a.OnWheel(-1e6)
	st.advance(200*time.Millisecond, 10)
	assert.Equal(t, 0.0, a.Scroll())

	a.OnWheel(math.NaN())
	assert.False(t, a.Animating())
}

func TestScrollToTakesTwoSeconds(t *testing.T) {
	st := newStepper()
	a := NewAdapter(st.s, WithLimit(900))
	a.Init(nil)

	a.ScrollTo(900)
	st.advance(100*time.Millisecond, 10)
	assert.InDelta(t, 450, a.Scroll(), 1e-3)
	st.advance(100*time.Millisecond, 10)
	assert.InDelta(t, 900, a.Scroll(), 1e-9)
	assert.False(t, a.Animating())
}

func TestWheelInterruptsScrollTo(t *testing.T) {
	st := newStepper()
	a := NewAdapter(st.s, WithLimit(1000))
	a.Init(nil)

	a.ScrollTo(1000)
	st.advance(100*time.Millisecond, 10)
	at := a.Scroll()

	a.OnWheel(-100)
	st.advance(100*time.Millisecond, 20)
	assert.InDelta(t, at-100, a.Scroll(), 1e-9)
}

func TestSetLimitKeepsProgress(t *testing.T) {
	st := newStepper()
	a := NewAdapter(st.s, WithLimit(100))
	a.Init(nil)
	a.ScrollTo(25)
	st.advance(250*time.Millisecond, 10)
	require.InDelta(t, 0.25, a.Progress(), 1e-9)

	a.SetLimit(400)
	assert.InDelta(t, 100, a.Scroll(), 1e-9)
	assert.InDelta(t, 0.25, a.Progress(), 1e-9)

	a.SetLimit(0)
	assert.Equal(t, 400.0, a.Limit())
}

func TestSetTuning(t *testing.T) {
	st := newStepper()
	a := NewAdapter(st.s, WithLimit(1000))
	a.Init(nil)
	a.SetTuning(200*time.Millisecond, 2)

	a.OnWheel(100)
	st.advance(100*time.Millisecond, 2)
	assert.InDelta(t, 200, a.Scroll(), 1e-9)

	a.SetTuning(-1, -1)
	impl := a.(*adapter)
	assert.Equal(t, 200*time.Millisecond, impl.duration)
	assert.Equal(t, 2.0, impl.wheelMultiplier)
}

func TestDestroyStopsCallbacks(t *testing.T) {
	st := newStepper()
	a := NewAdapter(st.s, WithLimit(1000))
	calls := 0
	a.Init(func(float64) { calls++ })
	assert.Equal(t, 1, st.s.FrameCallbacks())

	a.OnWheel(300)
	st.advance(100*time.Millisecond, 1)
	before := calls
	assert.Positive(t, before)

	a.Destroy()
	a.Destroy()
	assert.True(t, a.Destroyed())
	assert.Zero(t, st.s.FrameCallbacks())

	a.OnWheel(300)
	a.ScrollTo(800)
	st.advance(100*time.Millisecond, 20)
	assert.Equal(t, before, calls)

	a.Init(func(float64) { calls++ })
	assert.Zero(t, st.s.FrameCallbacks())
}

func TestNewAdapterPanicsWithoutScheduler(t *testing.T) {
	assert.Panics(t, func() { NewAdapter(nil) })
}
