// Package scroll turns raw wheel input into a smoothed virtual scroll position and reports it
// as normalized progress. The adapter owns no scene state; it only emits progress and drives
// its own position when asked to scroll somewhere.
package scroll

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/scheduler"
)

const (
	// DefaultDuration is the wheel smoothing duration.
	DefaultDuration = 1200 * time.Millisecond
	// DefaultScrollToDuration is the duration of a programmatic ScrollTo.
	DefaultScrollToDuration = 2 * time.Second
	// DefaultWheelMultiplier scales raw wheel deltas before smoothing.
	DefaultWheelMultiplier = 1.0
)

// ProgressFunc receives the scroll position divided by the scroll limit, clamped to [0,1].
type ProgressFunc func(progress float64)

// Adapter smooths scroll input into a virtual scroll position in [0, Limit].
type Adapter interface {
	// Init starts intercepting scroll input and registers the per-frame update.
	// Calling Init again replaces the callback. Init after Destroy is ignored.
	//
	// Parameters:
	//   - onProgress: called on every position update
	Init(onProgress ProgressFunc)

	// OnWheel feeds a raw wheel delta (positive scrolls down the page, towards the end of the
	// tour). It interrupts any running ScrollTo.
	//
	// Parameters:
	//   - deltaY: the wheel delta in pixels
	OnWheel(deltaY float64)

	// ScrollTo animates the position to target with a cubic ease-in-out curve.
	//
	// Parameters:
	//   - target: the destination offset, clamped to [0, Limit]
	ScrollTo(target float64)

	// Scroll returns the current virtual scroll position.
	Scroll() float64

	// Limit returns the maximum scroll position.
	Limit() float64

	// SetLimit changes the scrollable height, keeping the current progress.
	//
	// Parameters:
	//   - limit: the new limit (values <= 0 are ignored)
	SetLimit(limit float64)

	// Progress returns Scroll / Limit clamped to [0,1].
	Progress() float64

	// Animating reports whether a wheel or ScrollTo animation is in flight.
	Animating() bool

	// SetTuning changes the wheel smoothing duration and wheel multiplier. Takes effect on the
	// next wheel event.
	//
	// Parameters:
	//   - duration: the smoothing duration (values <= 0 are ignored)
	//   - wheelMultiplier: the delta scale (values <= 0 are ignored)
	SetTuning(duration time.Duration, wheelMultiplier float64)

	// Destroy stops the inertia engine and deregisters the per-frame update. No progress callback
	// fires after Destroy returns. Safe to call more than once.
	Destroy()

	// Destroyed reports whether Destroy has been called.
	Destroyed() bool
}

type animation struct {
	from, to float64
	elapsed  float64
	duration float64
	easing   Easing
	// programmatic marks a ScrollTo animation.
	programmatic bool
}

type adapter struct {
	mu *sync.Mutex

	sched scheduler.Scheduler
	loop  scheduler.Loop

	onProgress ProgressFunc

	scroll float64
	target float64
	limit  float64

	duration         time.Duration
	scrollToDuration time.Duration
	wheelMultiplier  float64
	easing           Easing

	anim      *animation
	destroyed bool
}

var _ Adapter = &adapter{}

// NewAdapter creates a smooth-scroll adapter driven by frames from s. Panics if s is nil.
//
// Parameters:
//   - s: the scheduler that provides frame callbacks
//   - options: functional options
//
// Returns:
//   - Adapter: the adapter, idle until Init
func NewAdapter(s scheduler.Scheduler, options ...AdapterBuilderOption) Adapter {
	if s == nil {
		panic("scroll: NewAdapter requires a non-nil Scheduler")
	}
	a := &adapter{
		mu:               &sync.Mutex{},
		sched:            s,
		limit:            1,
		duration:         DefaultDuration,
		scrollToDuration: DefaultScrollToDuration,
		wheelMultiplier:  DefaultWheelMultiplier,
		easing:           EaseOutExpo,
	}
	for _, option := range options {
		option(a)
	}
	a.loop = scheduler.NewLoop(s, a.update)
	return a
}

func (a *adapter) Init(onProgress ProgressFunc) {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		log.Printf("[scroll] Init called after Destroy, ignoring")
		return
	}
	a.onProgress = onProgress
	a.mu.Unlock()
	a.loop.Start()
}

func (a *adapter) OnWheel(deltaY float64) {
	if math.IsNaN(deltaY) || deltaY == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return
	}
	// A wheel event during ScrollTo continues from the live position, not the old target.
	if a.anim != nil && a.anim.programmatic {
		a.target = a.scroll
	}
	a.target = common.Clamp(a.target+deltaY*a.wheelMultiplier, 0, a.limit)
	a.startLocked(a.target, a.duration, a.easing, false)
}

func (a *adapter) ScrollTo(target float64) {
	if math.IsNaN(target) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return
	}
	a.target = common.Clamp(target, 0, a.limit)
	a.startLocked(a.target, a.scrollToDuration, EaseInOutCubic, true)
}

func (a *adapter) startLocked(to float64, d time.Duration, easing Easing, programmatic bool) {
	a.anim = &animation{
		from:         a.scroll,
		to:           to,
		duration:     d.Seconds(),
		easing:       easing,
		programmatic: programmatic,
	}
}

// update advances the running animation by dt and reports progress when the position moved.
func (a *adapter) update(dt float32) {
	a.mu.Lock()
	if a.destroyed || a.anim == nil {
		a.mu.Unlock()
		return
	}
	anim := a.anim
	anim.elapsed += float64(dt)
	t := 1.0
	if anim.duration > 0 {
		t = common.Clamp(anim.elapsed/anim.duration, 0, 1)
	}
	prev := a.scroll
	if t >= 1 {
		a.scroll = anim.to
		a.anim = nil
	} else {
		a.scroll = anim.from + (anim.to-anim.from)*anim.easing(t)
	}
	moved := a.scroll != prev
	cb := a.onProgress
	progress := a.progressLocked()
	a.mu.Unlock()

	if moved && cb != nil {
		cb(progress)
	}
}

func (a *adapter) Scroll() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scroll
}

func (a *adapter) Limit() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.limit
}

func (a *adapter) SetLimit(limit float64) {
	if limit <= 0 || math.IsNaN(limit) || math.IsInf(limit, 0) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	ratio := limit / a.limit
	a.scroll *= ratio
	a.target *= ratio
	if a.anim != nil {
		a.anim.from *= ratio
		a.anim.to *= ratio
	}
	a.limit = limit
}

func (a *adapter) Progress() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progressLocked()
}

func (a *adapter) progressLocked() float64 {
	return common.Clamp(a.scroll/a.limit, 0, 1)
}

func (a *adapter) Animating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.anim != nil
}

func (a *adapter) SetTuning(duration time.Duration, wheelMultiplier float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if duration > 0 {
		a.duration = duration
	}
	if wheelMultiplier > 0 {
		a.wheelMultiplier = wheelMultiplier
	}
}

func (a *adapter) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	a.anim = nil
	a.onProgress = nil
	a.mu.Unlock()
	a.loop.Stop()
}

func (a *adapter) Destroyed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.destroyed
}
