// Package console is a terminal companion for the tour. It lists the planets, jumps the
// window to the selected one and shows the current planet's panel and frame statistics.
package console

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/tour/catalog"
	"github.com/Carmen-Shannon/oxy-tour/tour/view"
)

// RefreshInterval is how often the console polls the tour for its state.
const RefreshInterval = 250 * time.Millisecond

// Navigator is the part of the tour the console drives. view.View satisfies it.
type Navigator interface {
	CurrentPlanetIndex() int
	ShowFacts() bool
	ToggleFacts() bool
	ScrollToPlanet(i int) error
}

var _ Navigator = view.View(nil)

// TickMsg triggers a refresh from the tour.
type TickMsg time.Time

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9D4EDD"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	listBoxStyle  = lipgloss.NewStyle().Padding(0, 2, 0, 0)
)

const panelMinWidth = 40

// Model is the console's Bubble Tea model.
type Model struct {
	nav     Navigator
	records []catalog.PlanetRecord
	post    func(func())
	stats   func() profiler.Snapshot

	cursor    int
	current   int
	showFacts bool
	snapshot  profiler.Snapshot
	// heading is the planet a jump was requested to, -1 once it is reached.
	heading int
	width     int
	height    int
}

// New creates the console model. Panics if nav is nil.
//
// Parameters:
//   - nav: the tour to drive
//   - options: functional options
//
// Returns:
//   - Model: the initial model
func New(nav Navigator, options ...ModelBuilderOption) Model {
	if nav == nil {
		panic("console: New requires a non-nil Navigator")
	}
	m := Model{
		nav:     nav,
		records: catalog.Planets(),
		post:    func(fn func()) { fn() },
		heading: -1,
	}
	for _, option := range options {
		option(&m)
	}
	return m.refresh()
}

// Run blocks until the console quits.
//
// Parameters:
//   - m: the model to run
//   - options: program options, e.g. tea.WithAltScreen()
//
// Returns:
//   - error: an error from the terminal program
func Run(m Model, options ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, options...).Run()
	return err
}

func tickCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m.refresh(), tickCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.records) - 1
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, last)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = last
	case "enter", " ":
		m = m.goTo(m.cursor)
	case "f":
		nav := m.nav
		m.post(func() { nav.ToggleFacts() })
		m.showFacts = !m.showFacts
	}
	return m, nil
}

// goTo asks the tour to scroll to planet i on the tour's own goroutine.
func (m Model) goTo(i int) Model {
	if i < 0 || i >= len(m.records) {
		return m
	}
	nav := m.nav
	m.post(func() {
		if err := nav.ScrollToPlanet(i); err != nil {
			log.Printf("[console] scroll to %d: %v", i, err)
		}
	})
	m.showFacts = false
	m.heading = i
	return m
}

func (m Model) refresh() Model {
	m.current = m.nav.CurrentPlanetIndex()
	m.showFacts = m.nav.ShowFacts()
	if m.stats != nil {
		m.snapshot = m.stats()
	}
	if m.current == m.heading {
		m.heading = -1
	}
	return m
}

// Cursor returns the highlighted list index.
func (m Model) Cursor() int { return m.cursor }

// Heading returns the planet a jump is in progress to, or -1.
func (m Model) Heading() int { return m.heading }

// View implements tea.Model.
func (m Model) View() string {
	var list strings.Builder
	list.WriteString(titleStyle.Render("SOLAR TOUR"))
	list.WriteString("\n\n")
	for i, rec := range m.records {
		marker := "  "
		if i == m.current {
			marker = currentStyle.Render("● ")
		}
		line := fmt.Sprintf("%d %s", i, rec.Name)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case i == m.current:
			line = currentStyle.Render(line)
		default:
			line = itemStyle.Render(line)
		}
		list.WriteString(marker + line + "\n")
	}

	panelWidth := max(m.width-lipgloss.Width(listBoxStyle.Render(list.String()))-1, panelMinWidth)
	current := m.records[min(max(m.current, 0), len(m.records)-1)]
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		listBoxStyle.Render(list.String()),
		view.RenderPanel(current, m.showFacts, panelWidth),
	)

	footer := dimStyle.Render("↑/↓ select • enter go • f facts • q quit")
	if m.stats != nil {
		footer = dimStyle.Render(fmt.Sprintf("%.0f fps • %d draws • %.1f MB heap", m.snapshot.FPS, m.snapshot.DrawCalls, m.snapshot.HeapMB)) + "\n" + footer
	}
	if m.heading >= 0 {
		footer = "heading to " + m.records[m.heading].Name + "\n" + footer
	}
	return body + "\n\n" + footer + "\n"
}
