package components

import (
	"fmt"

	"github.com/theirongolddev/banktally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders an account's share of the total as a fixed-width bar
// followed by its percentage.
func ShareBar(pct float64, width int, selected bool) string {
	t := theme.Active
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 4 {
		width = 4
	}

	fill := t.Cyan
	if selected {
		fill = t.AccentBright
	}

	bar := progress.New(
		progress.WithSolidFill(string(fill)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(fill).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(pct) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%5.1f%%", pct*100))
}
