package console

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/tour/catalog"
)

type fakeNavigator struct {
	current   int
	showFacts bool
	scrolled  []int
	toggles   int
}

func (f *fakeNavigator) CurrentPlanetIndex() int { return f.current }
func (f *fakeNavigator) ShowFacts() bool         { return f.showFacts }

func (f *fakeNavigator) ToggleFacts() bool {
	f.toggles++
	f.showFacts = !f.showFacts
	return f.showFacts
}

func (f *fakeNavigator) ScrollToPlanet(i int) error {
	f.scrolled = append(f.scrolled, i)
	f.showFacts = false
	return nil
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(key)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorMovesWithinCatalog(t *testing.T) {
	m := New(&fakeNavigator{})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, runes("j"))
	assert.Equal(t, 2, m.Cursor())

	m = press(t, m, runes("G"))
	assert.Equal(t, catalog.Len()-1, m.Cursor())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, catalog.Len()-1, m.Cursor())

	m = press(t, m, runes("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestEnterPostsScrollToPlanet(t *testing.T) {
	nav := &fakeNavigator{showFacts: true}
	var queued []func()
	m := New(nav, WithPoster(func(fn func()) { queued = append(queued, fn) }))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, nav.scrolled)
	require.Len(t, queued, 1)
	queued[0]()
	assert.Equal(t, []int{2}, nav.scrolled)
	assert.Equal(t, 2, m.Heading())
	assert.Contains(t, m.View(), "heading to VENUS")

	nav.current = 2
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, -1, m.Heading())
	assert.NotContains(t, m.View(), "heading to")
}

func TestToggleFacts(t *testing.T) {
	nav := &fakeNavigator{}
	m := New(nav)

	m = press(t, m, runes("f"))
	assert.Equal(t, 1, nav.toggles)
	assert.True(t, nav.showFacts)
	assert.NotContains(t, m.View(), "press F for facts")

	m = press(t, m, runes("f"))
	assert.False(t, nav.showFacts)
	assert.Contains(t, m.View(), "press F for facts")
}

func TestQuitKeys(t *testing.T) {
	m := New(&fakeNavigator{})
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.Quit(), cmd(), key.String())
	}
}

func TestViewListsPlanetsAndStats(t *testing.T) {
	nav := &fakeNavigator{current: catalog.SaturnIndex}
	m := New(nav, WithStats(func() profiler.Snapshot {
		return profiler.Snapshot{FPS: 144, DrawCalls: 27, HeapMB: 12.5}
	}))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := next.(Model).View()

	for _, rec := range catalog.Planets() {
		assert.Contains(t, out, rec.Name)
	}
	assert.Contains(t, out, "144 fps")
	assert.Contains(t, out, "27 draws")
	assert.Equal(t, 1, strings.Count(out, "●"))
}

func TestWithRecords(t *testing.T) {
	recs := catalog.Planets()[:3]
	m := New(&fakeNavigator{}, WithRecords(recs))
	m = press(t, m, runes("G"))
	assert.Equal(t, 2, m.Cursor())
	assert.NotContains(t, m.View(), "PLUTO")
}

func TestInitSchedulesRefresh(t *testing.T) {
	assert.NotNil(t, New(&fakeNavigator{}).Init())
}

func TestNewRequiresNavigator(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
