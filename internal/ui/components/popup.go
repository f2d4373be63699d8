package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/verdande/dbgrip/internal/ui/theme"
)

// MessagePopup is the centered overlay shown for informational messages,
// e.g. selecting an engine with no client. Any key dismisses it.
type MessagePopup struct {
	Theme theme.Theme
}

// View renders the popup centered in the given screen area.
func (p MessagePopup) View(width, height int, message string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Theme.BorderFocused).
		Padding(1, 3).
		Render(message + "\n\n" + lipgloss.NewStyle().Foreground(p.Theme.Muted).Render("Press any key to return."))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
