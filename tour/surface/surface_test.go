package surface

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"github.com/Carmen-Shannon/oxy-tour/tour/choreographer"
)

type fakeHost struct {
	w, h  int
	scale float32

	onResize func(int, int)
	onScroll func(float64, float64)
	onKey    func(uint32)
	onDown   func(window.MouseButton, float64, float64)
	onUp     func(window.MouseButton, float64, float64)
	onMove   func(float64, float64)
	onLeave  func()
	onScale  func(float32)
}

func (f *fakeHost) SetResizeCallback(cb func(int, int))                                { f.onResize = cb }
func (f *fakeHost) SetScrollCallback(cb func(float64, float64))                        { f.onScroll = cb }
func (f *fakeHost) SetKeyDownCallback(cb func(uint32))                                 { f.onKey = cb }
func (f *fakeHost) SetMouseDownCallback(cb func(window.MouseButton, float64, float64)) { f.onDown = cb }
func (f *fakeHost) SetMouseUpCallback(cb func(window.MouseButton, float64, float64))   { f.onUp = cb }
func (f *fakeHost) SetMouseMoveCallback(cb func(float64, float64))                     { f.onMove = cb }
func (f *fakeHost) SetCursorLeaveCallback(cb func())                                   { f.onLeave = cb }
func (f *fakeHost) SetContentScaleCallback(cb func(float32))                           { f.onScale = cb }
func (f *fakeHost) SurfaceDescriptor() *wgpu.SurfaceDescriptor                         { return nil }
func (f *fakeHost) Width() int                                                         { return f.w }
func (f *fakeHost) Height() int                                                        { return f.h }
func (f *fakeHost) ContentScale() float32                                              { return f.scale }

type recorder struct {
	resizes []([2]int)
	downs   []choreographer.PointerEvent
	moves   []choreographer.PointerEvent
	ups     []choreographer.PointerEvent
	leaves  int
}

func (r *recorder) OnResize(w, h int)                          { r.resizes = append(r.resizes, [2]int{w, h}) }
func (r *recorder) OnPointerDown(e choreographer.PointerEvent) { r.downs = append(r.downs, e) }
func (r *recorder) OnPointerMove(e choreographer.PointerEvent) { r.moves = append(r.moves, e) }
func (r *recorder) OnPointerUp(e choreographer.PointerEvent)   { r.ups = append(r.ups, e) }
func (r *recorder) OnPointerLeave()                            { r.leaves++ }

func TestPixelRatioIsCapped(t *testing.T) {
	for _, tc := range []struct {
		scale float32
		want  float32
	}{
		{scale: 1, want: 1},
		{scale: 1.5, want: 1.5},
		{scale: 3, want: 2},
		{scale: 0, want: 1},
	} {
		s := New(&fakeHost{w: 10, h: 10, scale: tc.scale})
		assert.Equal(t, tc.want, s.PixelRatio())
	}
}

func TestEventsFanOut(t *testing.T) {
	host := &fakeHost{w: 800, h: 600, scale: 1}
	s := New(host)
	a, b := &recorder{}, &recorder{}
	s.Subscribe(a)
	unsubscribe := s.Subscribe(b)
	require.Equal(t, 2, s.Listeners())

	host.onResize(1024, 768)
	host.onDown(window.MouseButtonLeft, 10, 20)
	host.onMove(15, 20)
	host.onUp(window.MouseButtonLeft, 15, 20)
	host.onDown(window.MouseButtonMiddle, 1, 1)
	host.onLeave()

	for _, r := range []*recorder{a, b} {
		assert.Equal(t, [][2]int{{1024, 768}}, r.resizes)
		require.Len(t, r.downs, 1)
		assert.Equal(t, choreographer.PointerEvent{X: 10, Y: 20, Button: choreographer.PointerPrimary}, r.downs[0])
		assert.Len(t, r.moves, 1)
		assert.Len(t, r.ups, 1)
		assert.Equal(t, 1, r.leaves)
	}

	unsubscribe()
	unsubscribe()
	host.onLeave()
	assert.Equal(t, 2, a.leaves)
	assert.Equal(t, 1, b.leaves)
}

func TestRightDragMovesAreSecondary(t *testing.T) {
	host := &fakeHost{w: 800, h: 600, scale: 1}
	s := New(host)
	r := &recorder{}
	s.Subscribe(r)

	host.onDown(window.MouseButtonRight, 0, 0)
	host.onMove(5, 0)
	host.onUp(window.MouseButtonRight, 5, 0)
	host.onMove(6, 0)

	require.Len(t, r.moves, 2)
	assert.Equal(t, choreographer.PointerSecondary, r.moves[0].Button)
	assert.Equal(t, choreographer.PointerPrimary, r.moves[1].Button)
}

func TestWheelAndKeys(t *testing.T) {
	host := &fakeHost{w: 800, h: 600, scale: 1}
	s := New(host)

	var deltas []float64
	var keys []uint32
	s.SetScrollHandler(func(d float64) { deltas = append(deltas, d) })
	s.SetKeyHandler(func(k uint32) { keys = append(keys, k) })

	host.onScroll(0, -1)
	host.onScroll(0, 2)
	host.onScroll(3, 0)
	host.onScroll(0, 0.25)
	host.onKey(common.KeyRight)

	assert.Equal(t, []float64{WheelStep, -2 * WheelStep, -0.25 * WheelStep}, deltas)
	assert.Equal(t, []uint32{common.KeyRight}, keys)
}

func TestDetachClearsHostCallbacks(t *testing.T) {
	host := &fakeHost{w: 800, h: 600, scale: 1}
	s := New(host)
	s.Subscribe(&recorder{})
	s.Detach()

	assert.Nil(t, host.onResize)
	assert.Nil(t, host.onScroll)
	assert.Nil(t, host.onKey)
	assert.Nil(t, host.onDown)
	assert.Nil(t, host.onUp)
	assert.Nil(t, host.onMove)
	assert.Nil(t, host.onLeave)
	assert.Nil(t, host.onScale)
	assert.Zero(t, s.Listeners())
}

func TestContentScaleChangeReannouncesSize(t *testing.T) {
	host := &fakeHost{w: 800, h: 600, scale: 1}
	s := New(host)
	r := &recorder{}
	s.Subscribe(r)

	host.w, host.h, host.scale = 1600, 1200, 2
	host.onScale(2)

	assert.Equal(t, [][2]int{{1600, 1200}}, r.resizes)
	assert.Equal(t, float32(2), s.PixelRatio())
}

func TestNewPanicsWithoutHost(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
