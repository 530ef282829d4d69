package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Carmen-Shannon/oxy-tour/tour/catalog"
)

// minPanelWidth keeps the border and padding from swallowing the text.
const minPanelWidth = 24

var (
	descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	factStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Italic(true)
)

// RenderPanel draws a planet's name, description and, when showFacts is set, its facts inside a
// border tinted with the planet's color.
//
// Parameters:
//   - rec: the planet to describe
//   - showFacts: whether the fact list is open
//   - width: the total panel width in cells
//
// Returns:
//   - string: the styled panel
func RenderPanel(rec catalog.PlanetRecord, showFacts bool, width int) string {
	width = max(width, minPanelWidth)
	tint := lipgloss.Color(fmt.Sprintf("#%06X", rec.Color&0xffffff))

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tint).
		Padding(0, 1).
		Width(width - 2)
	inner := width - 4

	title := lipgloss.NewStyle().Bold(true).Foreground(tint).Render(rec.Name)
	distance := factStyle.Render(fmt.Sprintf("%.2f AU from the Sun", rec.Distance))

	var b strings.Builder
	b.WriteString(title)
	if rec.Distance > 0 {
		b.WriteString("  ")
		b.WriteString(distance)
	}
	b.WriteString("\n\n")
	b.WriteString(descStyle.Width(inner).Render(rec.Description))

	if showFacts {
		b.WriteString("\n")
		for _, fact := range rec.Facts {
			b.WriteString("\n")
			b.WriteString(factStyle.Width(inner).Render("• " + fact))
		}
	} else if len(rec.Facts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("press F for facts"))
	}
	return frame.Render(b.String())
}
