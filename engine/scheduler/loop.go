package scheduler

// Loop is a start/stop handle around a single frame callback.
// Stop deregisters the callback from the scheduler rather than setting a flag, so a stopped
// loop costs nothing per frame.
type Loop interface {
	// Start registers the loop's callback. Calling Start on a running loop is a no-op.
	Start()

	// Stop deregisters the loop's callback. Calling Stop on a stopped loop is a no-op.
	Stop()

	// Running reports whether the callback is currently registered.
	//
	// Returns:
	//   - bool: true between Start and Stop
	Running() bool
}

type loop struct {
	s   Scheduler
	cb  FrameCallback
	reg Registration
}

var _ Loop = &loop{}

// NewLoop creates a stopped Loop that will drive cb from s once started.
//
// Parameters:
//   - s: the scheduler providing frames
//   - cb: the per-frame callback
//
// Returns:
//   - Loop: the stopped loop
func NewLoop(s Scheduler, cb FrameCallback) Loop {
	if s == nil {
		panic("scheduler: loop requires a scheduler")
	}
	if cb == nil {
		panic("scheduler: loop requires a callback")
	}
	return &loop{s: s, cb: cb}
}

func (l *loop) Start() {
	if l.Running() {
		return
	}
	l.reg = l.s.OnFrame(l.cb)
}

func (l *loop) Stop() {
	if l.reg == nil {
		return
	}
	l.reg.Cancel()
	l.reg = nil
}

func (l *loop) Running() bool {
	return l.reg != nil && l.reg.Active()
}
