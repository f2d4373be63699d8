package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/verdande/dbgrip/internal/ui/theme"
)

// SQLEditor renders the multi-line SQL buffer. Editing itself happens in
// the session state machine (append, backspace, newline); the cursor is
// always at the end of the buffer.
type SQLEditor struct {
	Theme theme.Theme
}

// View renders the buffer with a block cursor when focused.
func (e SQLEditor) View(buffer string, focused bool) string {
	text := lipgloss.NewStyle().Foreground(e.Theme.Foreground)

	if !focused {
		if buffer == "" {
			return lipgloss.NewStyle().Foreground(e.Theme.Muted).Render("(press Tab to edit SQL)")
		}
		return text.Render(buffer)
	}

	cursor := lipgloss.NewStyle().
		Background(e.Theme.Foreground).
		Foreground(lipgloss.Color("0")).
		Render(" ")

	lines := strings.Split(buffer, "\n")
	last := len(lines) - 1
	lines[last] = text.Render(lines[last]) + cursor
	for i := 0; i < last; i++ {
		lines[i] = text.Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

// TrimLastRune removes the final rune from the buffer, for Backspace.
func TrimLastRune(buffer string) string {
	if buffer == "" {
		return ""
	}
	runes := []rune(buffer)
	return string(runes[:len(runes)-1])
}
