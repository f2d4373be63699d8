package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for all screens.
type Theme struct {
	Name string

	Foreground lipgloss.Color

	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Muted   lipgloss.Color

	TableHeader lipgloss.Color
}

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}
