// Package view is the tour's view controller. It mounts the choreographer and the scroll
// adapter on a surface, exposes navigation between planets, and tracks whether the fact panel
// is open.
package view

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/tour/catalog"
	"github.com/Carmen-Shannon/oxy-tour/tour/choreographer"
	"github.com/Carmen-Shannon/oxy-tour/tour/scroll"
)

var (
	// ErrNotMounted is returned by navigation before Mount.
	ErrNotMounted = errors.New("view: not mounted")
	// ErrDisposed is returned after Unmount.
	ErrDisposed = errors.New("view: unmounted")
	// ErrPlanetIndex is returned for an index outside the catalog.
	ErrPlanetIndex = errors.New("view: planet index out of range")
)

// Surface is a choreographer surface that also delivers wheel and key input.
type Surface interface {
	choreographer.Surface
	SetScrollHandler(fn func(deltaY float64))
	SetKeyHandler(fn func(keyCode uint32))
}

// View binds a Choreographer and a scroll Adapter to a surface.
type View interface {
	// Mount initializes the scene on surface and wires scroll progress to the camera.
	//
	// Parameters:
	//   - surface: the surface to mount on
	//
	// Returns:
	//   - error: the choreographer's init error, ErrDisposed after Unmount
	Mount(surface Surface) error

	// Unmount destroys the scroll adapter, then disposes the choreographer. Safe to call twice.
	Unmount()

	// Mounted reports whether the view is between Mount and Unmount.
	Mounted() bool

	// CurrentPlanetIndex returns the index the camera is framing.
	CurrentPlanetIndex() int

	// CurrentPlanet returns the record the camera is framing.
	CurrentPlanet() catalog.PlanetRecord

	// ShowFacts reports whether the fact panel is open.
	ShowFacts() bool

	// ToggleFacts flips the fact panel and returns the new state.
	ToggleFacts() bool

	// ScrollToPlanet scrolls to the section of planet i and closes the fact panel.
	//
	// Parameters:
	//   - i: the catalog index
	//
	// Returns:
	//   - error: ErrNotMounted, ErrDisposed or ErrPlanetIndex
	ScrollToPlanet(i int) error

	// HandleKey applies keyboard navigation: Left/Right and Up/Down step between planets,
	// Home/End jump to the ends, F toggles the facts.
	//
	// Parameters:
	//   - keyCode: the key code (see common key codes)
	//
	// Returns:
	//   - bool: true if the key was handled
	HandleKey(keyCode uint32) bool

	// Panel renders the current planet's panel for terminal display.
	//
	// Parameters:
	//   - width: the panel width in cells
	//
	// Returns:
	//   - string: the styled panel
	Panel(width int) string
}

type mountState int

const (
	stateIdle mountState = iota
	stateMounted
	stateUnmounted
)

type view struct {
	mu *sync.Mutex

	ch       choreographer.Choreographer
	ad       scroll.Adapter
	records  []catalog.PlanetRecord
	setTitle func(string)
	onChange func(int)
	title    string

	state       mountState
	surface     Surface
	unsubscribe func()
	showFacts   bool
}

var _ View = &view{}

// New creates a view over ch and ad. Panics if either is nil.
//
// Parameters:
//   - ch: the scene choreographer
//   - ad: the smooth-scroll adapter
//   - options: functional options
//
// Returns:
//   - View: the unmounted view
func New(ch choreographer.Choreographer, ad scroll.Adapter, options ...ViewBuilderOption) View {
	if ch == nil {
		panic("view: New requires a non-nil Choreographer")
	}
	if ad == nil {
		panic("view: New requires a non-nil scroll Adapter")
	}
	v := &view{
		mu:      &sync.Mutex{},
		ch:      ch,
		ad:      ad,
		records: ch.Planets(),
		title:   "Solar Tour",
	}
	for _, option := range options {
		option(v)
	}
	return v
}

// PlanetOffset returns the scroll offset of planet i's section.
//
// Parameters:
//   - i: the planet index
//   - n: the planet count
//   - limit: the scrollable height
//
// Returns:
//   - float64: i/(n-1) of limit, 0 when n < 2
func PlanetOffset(i, n int, limit float64) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1) * limit
}

// ScrollLimit returns the scrollable height for n planet sections of one viewport each.
func ScrollLimit(n int, viewportHeight float64) float64 {
	return float64(max(n-1, 1)) * viewportHeight
}

func (v *view) Mount(surface Surface) error {
	v.mu.Lock()
	switch v.state {
	case stateMounted:
		v.mu.Unlock()
		return nil
	case stateUnmounted:
		v.mu.Unlock()
		return ErrDisposed
	}
	v.mu.Unlock()

	if surface == nil {
		return fmt.Errorf("view: %w", choreographer.ErrNoSurface)
	}
	if err := v.ch.InitScene(surface); err != nil {
		return fmt.Errorf("view: mount: %w", err)
	}

	unsubscribe := surface.Subscribe(resizeListener{v: v})
	v.mu.Lock()
	v.state = stateMounted
	v.surface = surface
	v.unsubscribe = unsubscribe
	v.mu.Unlock()

	v.updateLimit(surface.Height(), surface.PixelRatio())
	v.ch.SetPlanetChangeCallback(v.planetChanged)
	v.ad.Init(func(progress float64) {
		v.ch.UpdateCameraPosition(progress)
	})
	surface.SetScrollHandler(v.ad.OnWheel)
	surface.SetKeyHandler(func(keyCode uint32) { v.HandleKey(keyCode) })

	v.planetChanged(v.ch.CurrentPlanetIndex())
	log.Printf("[view] mounted with %d planets", len(v.records))
	return nil
}

func (v *view) updateLimit(height int, ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	ratio = min(ratio, choreographer.MaxPixelRatio)
	v.ad.SetLimit(ScrollLimit(len(v.records), float64(height)/float64(ratio)))
}

func (v *view) planetChanged(i int) {
	v.mu.Lock()
	setTitle, onChange := v.setTitle, v.onChange
	title := v.title
	if i >= 0 && i < len(v.records) {
		title = fmt.Sprintf("%s - %s", v.title, v.records[i].Name)
	}
	v.mu.Unlock()

	if setTitle != nil {
		setTitle(title)
	}
	if onChange != nil {
		onChange(i)
	}
}

func (v *view) Unmount() {
	v.mu.Lock()
	if v.state != stateMounted {
		v.state = stateUnmounted
		v.mu.Unlock()
		return
	}
	v.state = stateUnmounted
	surface := v.surface
	unsubscribe := v.unsubscribe
	v.surface, v.unsubscribe = nil, nil
	v.mu.Unlock()

	surface.SetScrollHandler(nil)
	surface.SetKeyHandler(nil)
	if unsubscribe != nil {
		unsubscribe()
	}
	v.ch.SetPlanetChangeCallback(nil)

	v.ad.Destroy()
	v.ch.Dispose()
	log.Printf("[view] unmounted")
}

func (v *view) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state == stateMounted
}

func (v *view) CurrentPlanetIndex() int {
	return v.ch.CurrentPlanetIndex()
}

func (v *view) CurrentPlanet() catalog.PlanetRecord {
	i := common.Clamp(v.ch.CurrentPlanetIndex(), 0, len(v.records)-1)
	return v.records[i]
}

func (v *view) ShowFacts() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.showFacts
}

func (v *view) ToggleFacts() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showFacts = !v.showFacts
	return v.showFacts
}

func (v *view) ScrollToPlanet(i int) error {
	v.mu.Lock()
	switch v.state {
	case stateIdle:
		v.mu.Unlock()
		return ErrNotMounted
	case stateUnmounted:
		v.mu.Unlock()
		return ErrDisposed
	}
	if i < 0 || i >= len(v.records) {
		v.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrPlanetIndex, i)
	}
	v.showFacts = false
	n := len(v.records)
	v.mu.Unlock()

	v.ad.ScrollTo(PlanetOffset(i, n, v.ad.Limit()))
	return nil
}

func (v *view) HandleKey(keyCode uint32) bool {
	cur := v.CurrentPlanetIndex()
	last := len(v.records) - 1
	target := -1
	switch keyCode {
	case common.KeyLeft, common.KeyUp, common.KeyPageUp:
		target = max(cur-1, 0)
	case common.KeyRight, common.KeyDown, common.KeyPageDown:
		target = min(cur+1, last)
	case common.KeyHome:
		target = 0
	case common.KeyEnd:
		target = last
	case common.KeyF, common.KeySpace:
		v.ToggleFacts()
		return true
	default:
		return false
	}
	if err := v.ScrollToPlanet(target); err != nil {
		log.Printf("[view] key %d: %v", keyCode, err)
		return false
	}
	return true
}

func (v *view) Panel(width int) string {
	return RenderPanel(v.CurrentPlanet(), v.ShowFacts(), width)
}

// resizeListener keeps the scroll limit in step with the viewport height.
type resizeListener struct {
	v *view
}

func (r resizeListener) OnResize(width, height int) {
	r.v.mu.Lock()
	surface := r.v.surface
	r.v.mu.Unlock()
	if surface == nil || height <= 0 {
		return
	}
	r.v.updateLimit(height, surface.PixelRatio())
}

func (resizeListener) OnPointerDown(choreographer.PointerEvent) {}
func (resizeListener) OnPointerMove(choreographer.PointerEvent) {}
func (resizeListener) OnPointerUp(choreographer.PointerEvent)   {}
func (resizeListener) OnPointerLeave()                          {}
