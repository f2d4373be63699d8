package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/verdande/dbgrip/internal/ui/theme"
)

// Hint is a single key binding shown in the bottom help bar.
type Hint struct {
	Key   string
	Label string
}

// HelpBar renders the key hints for the active screen.
type HelpBar struct {
	Theme theme.Theme
}

func (h HelpBar) View(width int, hints []Hint) string {
	keyStyle := lipgloss.NewStyle().Foreground(h.Theme.Info).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(h.Theme.Muted)

	parts := make([]string, 0, len(hints))
	for _, hint := range hints {
		parts = append(parts, keyStyle.Render(hint.Key)+" "+labelStyle.Render(hint.Label))
	}
	bar := strings.Join(parts, labelStyle.Render("  •  "))
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(bar)
}
