package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		Foreground: lipgloss.Color("252"),

		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("220"),
		Selection:     lipgloss.Color("220"),

		Success: lipgloss.Color("42"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),
		Muted:   lipgloss.Color("244"),

		TableHeader: lipgloss.Color("220"),
	}
}
