package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/verdande/dbgrip/internal/ui/theme"
)

// Panel is a bordered box whose border color reflects focus.
type Panel struct {
	Title   string
	Theme   theme.Theme
	Width   int
	Height  int
	Focused bool
}

// Render draws content inside the panel.
func (p Panel) Render(content string) string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	border := p.Theme.Border
	if p.Focused {
		border = p.Theme.BorderFocused
	}

	style := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)

	if p.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(border).Render(p.Title)
		content = title + "\n" + content
	}

	return style.Render(content)
}
