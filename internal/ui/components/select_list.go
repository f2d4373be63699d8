package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/verdande/dbgrip/internal/ui/theme"
)

// SelectList renders a vertical list with one highlighted entry. Cursor
// bounds are owned by the session state; this component only draws.
type SelectList struct {
	Theme  theme.Theme
	Height int
}

// View renders items with the cursor row highlighted, scrolling so the
// cursor stays visible.
func (l SelectList) View(items []string, cursor int) string {
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(l.Theme.Muted).Render("(empty)")
	}

	selected := lipgloss.NewStyle().
		Background(l.Theme.Selection).
		Foreground(lipgloss.Color("0")).
		Bold(true)
	normal := lipgloss.NewStyle().Foreground(l.Theme.Foreground)

	start := 0
	if l.Height > 0 && cursor >= l.Height {
		start = cursor - l.Height + 1
	}
	end := len(items)
	if l.Height > 0 && start+l.Height < end {
		end = start + l.Height
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == cursor {
			b.WriteString(selected.Render(items[i]))
		} else {
			b.WriteString(normal.Render(items[i]))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
