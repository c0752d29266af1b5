package components

import (
	"strings"

	"github.com/theirongolddev/banktally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with key hints on the left
// and the persistence state on the right.
func RenderStatusBar(width int, dirty, saving bool, store string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)

	left := " " + keyStyle.Render("m") + base.Render(" modify  ") +
		keyStyle.Render("s") + base.Render(" save  ") +
		keyStyle.Render("?") + base.Render(" help  ") +
		keyStyle.Render("q") + base.Render(" quit")

	var state string
	switch {
	case saving:
		state = lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Render("saving…")
	case dirty:
		state = lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("● unsaved")
	default:
		state = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("✓ saved")
	}
	right := state + base.Render("  "+store+" ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
