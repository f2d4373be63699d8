package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/verdande/dbgrip/internal/models"
	"github.com/verdande/dbgrip/internal/ui/components"
)

// View implements tea.Model.
func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}

	switch a.state.Screen {
	case models.ScreenEngineSelect:
		return a.viewEngineSelect()
	case models.ScreenConnectionInput:
		return a.viewConnectionInput()
	case models.ScreenDatabaseSelect:
		return a.viewDatabaseSelect()
	case models.ScreenTableView:
		return a.viewTableView()
	case models.ScreenMessagePopup:
		popup := components.MessagePopup{Theme: a.theme}
		return popup.View(a.width, a.height, a.state.PopupText)
	}
	return ""
}

func (a *App) viewEngineSelect() string {
	names := make([]string, len(models.Engines))
	for i, e := range models.Engines {
		names[i] = e.String()
	}

	height := a.contentHeight()
	list := components.SelectList{Theme: a.theme, Height: height - 1}
	panel := components.Panel{
		Title:   "Select engine",
		Theme:   a.theme,
		Width:   a.width - 2,
		Height:  height,
		Focused: true,
	}

	return a.withHelpBar(panel.Render(list.View(names, a.state.EngineCursor)), []components.Hint{
		{Key: "↑/↓", Label: "move"},
		{Key: "enter", Label: "select"},
		{Key: "q", Label: "quit"},
	})
}

func (a *App) viewConnectionInput() string {
	height := a.contentHeight()
	content := a.form.View()
	if a.state.ConnError != "" {
		errStyle := lipgloss.NewStyle().Foreground(a.theme.Error)
		content += "\n\n" + errStyle.Render(a.state.ConnError)
	}
	if a.busy {
		content += "\n\n" + lipgloss.NewStyle().Foreground(a.theme.Muted).Render("Connecting...")
	}

	panel := components.Panel{
		Title:   "Connect to " + a.state.SelectedEngine().String(),
		Theme:   a.theme,
		Width:   a.width - 2,
		Height:  height,
		Focused: true,
	}

	return a.withHelpBar(panel.Render(content), []components.Hint{
		{Key: "↑/↓", Label: "field"},
		{Key: "enter", Label: "next/connect"},
		{Key: "esc", Label: "back"},
	})
}

func (a *App) viewDatabaseSelect() string {
	height := a.contentHeight()
	list := components.SelectList{Theme: a.theme, Height: height - 1}
	panel := components.Panel{
		Title:   "Databases",
		Theme:   a.theme,
		Width:   a.width - 2,
		Height:  height,
		Focused: true,
	}

	content := list.View(a.state.Databases, a.state.SelectedDatabase)
	if a.state.ConnError != "" {
		content += "\n\n" + lipgloss.NewStyle().Foreground(a.theme.Error).Render(a.state.ConnError)
	}

	return a.withHelpBar(panel.Render(content), []components.Hint{
		{Key: "↑/↓", Label: "move"},
		{Key: "enter", Label: "open"},
		{Key: "esc", Label: "back"},
		{Key: "q", Label: "quit"},
	})
}

func (a *App) viewTableView() string {
	height := a.contentHeight()

	leftWidth := a.width * 30 / 100
	if leftWidth < 20 {
		leftWidth = 20
	}
	rightWidth := a.width - leftWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
	}

	var expandedSchema *models.TableSchema
	if a.state.ExpandedTable >= 0 && a.state.ExpandedTable < len(a.state.Tables) {
		if schema, ok := a.state.CachedSchema(a.state.Tables[a.state.ExpandedTable]); ok {
			expandedSchema = &schema
		}
	}

	browser := components.TableBrowser{Theme: a.theme, Height: height - 1}
	leftPanel := components.Panel{
		Title:   "Tables (" + a.currentDB + ")",
		Theme:   a.theme,
		Width:   leftWidth,
		Height:  height,
		Focused: a.state.Focus == models.FocusTablesList,
	}
	left := leftPanel.Render(browser.View(a.state.Tables, a.state.SelectedTable, a.state.ExpandedTable, expandedSchema))

	editorHeight := 6
	resultHeight := height - editorHeight - 3
	if resultHeight < 3 {
		resultHeight = 3
	}

	editor := components.SQLEditor{Theme: a.theme}
	editorPanel := components.Panel{
		Title:   "Query",
		Theme:   a.theme,
		Width:   rightWidth,
		Height:  editorHeight,
		Focused: a.state.Focus == models.FocusSQLEditor,
	}

	grid := components.ResultGrid{Theme: a.theme, Height: resultHeight - 1}
	resultPanel := components.Panel{
		Title:  "Results",
		Theme:  a.theme,
		Width:  rightWidth,
		Height: resultHeight,
	}

	right := lipgloss.JoinVertical(
		lipgloss.Left,
		editorPanel.Render(editor.View(a.state.SQLBuffer, a.state.Focus == models.FocusSQLEditor)),
		a.messageLine(rightWidth),
		resultPanel.Render(grid.View(a.state.LastResult)),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	hints := []components.Hint{
		{Key: "tab", Label: "focus"},
		{Key: "F1", Label: "databases"},
	}
	if a.state.Focus == models.FocusTablesList {
		hints = append(hints,
			components.Hint{Key: "enter", Label: "describe"},
			components.Hint{Key: "y", Label: "yank result"},
			components.Hint{Key: "q", Label: "quit"},
		)
	} else {
		hints = append(hints, components.Hint{Key: "ctrl+e/F5", Label: "run"})
	}
	return a.withHelpBar(body, hints)
}

// messageLine renders the status line between the editor and the results:
// the last error, the last success message, or a busy indicator.
func (a *App) messageLine(width int) string {
	style := lipgloss.NewStyle().Width(width).Padding(0, 1)
	switch {
	case a.busy:
		return style.Foreground(a.theme.Muted).Render("Running...")
	case a.state.LastError != "":
		return style.Foreground(a.theme.Error).Render(a.state.LastError)
	case a.state.LastSuccess != "":
		return style.Foreground(a.theme.Success).Render(a.state.LastSuccess)
	}
	return style.Render("")
}

func (a *App) contentHeight() int {
	h := a.height - 3
	if h < 5 {
		h = 5
	}
	return h
}

func (a *App) withHelpBar(body string, hints []components.Hint) string {
	bar := components.HelpBar{Theme: a.theme}
	return lipgloss.JoinVertical(lipgloss.Left, body, bar.View(a.width, hints))
}
