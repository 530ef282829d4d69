package scheduler

import (
	"sync"
	"time"
)

// FrameCallback receives the time since the previous step in seconds.
type FrameCallback func(deltaTime float32)

// Registration is a handle to a frame callback or timer registered with a Scheduler.
type Registration interface {
	// Cancel deregisters the callback. Safe to call multiple times and from inside the callback itself.
	Cancel()

	// Active reports whether the callback is still registered.
	//
	// Returns:
	//   - bool: false once Cancel has been called
	Active() bool
}

// Scheduler drives per-frame callbacks, fixed-period timers, and work posted from other goroutines.
// Everything except Post runs on the goroutine that calls Step, which makes that goroutine the single
// writer for any state mutated from callbacks.
type Scheduler interface {
	// OnFrame registers a callback invoked once per Step, in registration order.
	//
	// Parameters:
	//   - cb: the callback to invoke each frame
	//
	// Returns:
	//   - Registration: handle used to deregister the callback
	OnFrame(cb FrameCallback) Registration

	// Every registers a callback invoked each time period elapses across Steps.
	// A long stall fires the callback once, not once per missed period.
	//
	// Parameters:
	//   - period: the interval between invocations (must be > 0)
	//   - cb: the callback to invoke
	//
	// Returns:
	//   - Registration: handle used to stop the timer
	Every(period time.Duration, cb func()) Registration

	// Post queues fn to run at the start of the next Step. Safe for concurrent use.
	//
	// Parameters:
	//   - fn: the function to run on the stepping goroutine
	Post(fn func())

	// Step advances the scheduler to now: runs posted work, then due timers, then frame callbacks.
	// The first Step reports a delta time of 0.
	//
	// Parameters:
	//   - now: the current time
	Step(now time.Time)

	// FrameCallbacks returns the number of active frame callbacks.
	//
	// Returns:
	//   - int: the active frame callback count
	FrameCallbacks() int

	// Timers returns the number of active timers.
	//
	// Returns:
	//   - int: the active timer count
	Timers() int
}

type scheduler struct {
	mu *sync.Mutex

	nextID uint64
	frames []*registration
	timers []*registration
	posted []func()

	last     time.Time
	started  bool
	maxDelta time.Duration
}

type registration struct {
	s      *scheduler
	id     uint64
	frame  FrameCallback
	timer  func()
	period time.Duration
	accum  time.Duration
	active bool
}

var _ Scheduler = &scheduler{}
var _ Registration = &registration{}

// NewScheduler creates a Scheduler with the provided options.
//
// Parameters:
//   - options: functional options for scheduler configuration
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		mu:       &sync.Mutex{},
		maxDelta: 250 * time.Millisecond,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scheduler) OnFrame(cb FrameCallback) Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r := &registration{s: s, id: s.nextID, frame: cb, active: true}
	s.frames = append(s.frames, r)
	return r
}

func (s *scheduler) Every(period time.Duration, cb func()) Registration {
	if period <= 0 {
		panic("scheduler: timer period must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r := &registration{s: s, id: s.nextID, timer: cb, period: period, active: true}
	s.timers = append(s.timers, r)
	return r
}

func (s *scheduler) Post(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

func (s *scheduler) Step(now time.Time) {
	s.mu.Lock()
	var elapsed time.Duration
	if s.started {
		elapsed = now.Sub(s.last)
		if elapsed < 0 {
			elapsed = 0
		}
	}
	s.started = true
	s.last = now

	posted := s.posted
	s.posted = nil
	timers := append([]*registration(nil), s.timers...)
	frames := append([]*registration(nil), s.frames...)
	s.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	for _, t := range timers {
		if !t.Active() {
			continue
		}
		t.accum += elapsed
		if t.accum >= t.period {
			t.accum %= t.period
			t.timer()
		}
	}

	frameDelta := elapsed
	if s.maxDelta > 0 && frameDelta > s.maxDelta {
		frameDelta = s.maxDelta
	}
	dt := float32(frameDelta.Seconds())
	for _, f := range frames {
		if f.Active() {
			f.frame(dt)
		}
	}
}

func (s *scheduler) FrameCallbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *scheduler) Timers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (r *registration) Cancel() {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if !r.active {
		return
	}
	r.active = false
	if r.frame != nil {
		s.frames = remove(s.frames, r)
	} else {
		s.timers = remove(s.timers, r)
	}
}

func (r *registration) Active() bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.active
}

func remove(list []*registration, r *registration) []*registration {
	for i, x := range list {
		if x == r {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
