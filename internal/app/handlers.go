package app

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/verdande/dbgrip/internal/config"
	"github.com/verdande/dbgrip/internal/models"
	"github.com/verdande/dbgrip/internal/ui/components"
)

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state.Screen {
	case models.ScreenEngineSelect:
		return a.handleEngineSelect(msg)
	case models.ScreenConnectionInput:
		return a.handleConnectionInput(msg)
	case models.ScreenDatabaseSelect:
		return a.handleDatabaseSelect(msg)
	case models.ScreenTableView:
		return a.handleTableView(msg)
	case models.ScreenMessagePopup:
		// Any key returns to engine selection.
		a.state.PopupText = ""
		a.state.Screen = models.ScreenEngineSelect
		return a, nil
	}
	return a, nil
}

func (a *App) handleEngineSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "up", "k":
		a.state.MoveEngineCursor(-1)
	case "down", "j":
		a.state.MoveEngineCursor(1)
	case "enter":
		engine := a.state.SelectedEngine()
		if !engine.Implemented() {
			a.state.PopupText = engine.String() + " support is not implemented yet."
			a.state.Screen = models.ScreenMessagePopup
			return a, nil
		}
		defaults := config.EnvDefaults(engine)
		password := defaults.Password
		if password == "" && a.vault != nil {
			password = a.vault.Lookup(engine, defaults.User, defaults.Host)
		}
		a.form = components.NewConnectionForm(a.theme, defaults.User, password, defaults.Host, defaults.Port)
		a.state.ConnError = ""
		a.state.Screen = models.ScreenConnectionInput
	}
	return a, nil
}

func (a *App) handleConnectionInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.state.ConnError = ""
		a.state.Screen = models.ScreenEngineSelect
		return a, nil
	case "up", "shift+tab":
		a.cycleFormFocus(-1)
		return a, nil
	case "down", "tab":
		a.cycleFormFocus(1)
		return a, nil
	case "enter":
		if !a.form.ActiveIsLast() {
			a.cycleFormFocus(1)
			return a, nil
		}
		engine := a.state.SelectedEngine()
		user, password, host, port := a.form.Values()
		a.connEngine = engine
		a.connUser = user
		a.connPassword = password
		a.connHost = host
		a.connPort = port
		cfg := models.ConnectionConfig{
			Engine: engine,
			URL:    models.BuildURL(engine, user, password, host, port, engine.DefaultDatabase()),
		}
		a.busy = true
		return a, a.connect(cfg)
	}
	return a, a.form.Update(msg)
}

// cycleFormFocus moves the focused field. Leaving the username field looks
// the typed user up in the keyring and prefills an empty password field, so
// a stored password is found even when it was saved under a different user
// than the environment suggested.
func (a *App) cycleFormFocus(delta int) {
	fromUsername := a.form.ActiveField() == components.FieldUsername
	a.form.CycleFocus(delta)
	if fromUsername && delta > 0 {
		a.prefillPassword()
	}
}

func (a *App) prefillPassword() {
	user, password, host, _ := a.form.Values()
	if password != "" || user == "" || a.vault == nil {
		return
	}
	if stored := a.vault.Lookup(a.state.SelectedEngine(), user, host); stored != "" {
		a.form.SetPassword(stored)
	}
}

func (a *App) handleDatabaseSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.state.Screen = models.ScreenConnectionInput
	case "up", "k":
		a.state.MoveDatabaseCursor(-1)
	case "down", "j":
		a.state.MoveDatabaseCursor(1)
	case "enter":
		name := a.state.SelectedDatabaseName()
		if name == "" {
			return a, nil
		}
		cfg := models.ConnectionConfig{
			Engine: a.connEngine,
			URL:    models.BuildURL(a.connEngine, a.connUser, a.connPassword, a.connHost, a.connPort, name),
		}
		a.busy = true
		return a, a.openDatabase(cfg, name)
	}
	return a, nil
}

func (a *App) handleTableView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return a, tea.Quit
	case "tab":
		if a.state.Focus == models.FocusTablesList {
			a.state.Focus = models.FocusSQLEditor
		} else {
			a.state.Focus = models.FocusTablesList
		}
		return a, nil
	case "f1":
		a.state.ClearQueryState()
		a.state.Screen = models.ScreenDatabaseSelect
		a.busy = true
		return a, a.fetchDatabases
	}

	if a.state.Focus == models.FocusTablesList {
		return a.handleTablesList(msg)
	}
	return a.handleSQLEditor(msg)
}

func (a *App) handleTablesList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		a.state.MoveTableCursor(-1)
	case "down", "j":
		a.state.MoveTableCursor(1)
	case "enter":
		table := a.state.SelectedTableName()
		if table == "" {
			return a, nil
		}
		if a.state.ExpandedTable == a.state.SelectedTable {
			a.state.ExpandedTable = -1
			return a, nil
		}
		if _, ok := a.state.CachedSchema(table); ok {
			a.state.ExpandedTable = a.state.SelectedTable
			return a, nil
		}
		a.busy = true
		return a, a.describeTable(table)
	case "y":
		a.yankResult()
	}
	return a, nil
}

func (a *App) handleSQLEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlE, tea.KeyF5:
		return a.submitQuery()
	case tea.KeyBackspace:
		a.state.SQLBuffer = components.TrimLastRune(a.state.SQLBuffer)
	case tea.KeyEnter:
		a.state.SQLBuffer += "\n"
	case tea.KeySpace:
		a.state.SQLBuffer += " "
	case tea.KeyRunes:
		a.state.SQLBuffer += string(msg.Runes)
	}
	return a, nil
}

// submitQuery dispatches the buffered statement. An all-whitespace buffer is
// left untouched; otherwise the buffer is cleared here, before the outcome
// is known.
func (a *App) submitQuery() (tea.Model, tea.Cmd) {
	trimmed := strings.TrimSpace(a.state.SQLBuffer)
	if trimmed == "" {
		return a, nil
	}
	a.state.SQLBuffer = ""
	a.busy = true
	return a, a.runSQL(trimmed, isSelect(trimmed))
}

// isSelect reports whether a statement returns rows, decided by prefix
// alone. Anything else goes through Execute.
func isSelect(sqlText string) bool {
	return len(sqlText) >= 6 && strings.EqualFold(sqlText[:6], "select")
}

// yankResult copies the last result to the clipboard as CSV.
func (a *App) yankResult() {
	if a.state.LastResult == nil {
		return
	}
	text, err := components.ResultCSV(a.state.LastResult)
	if err == nil {
		err = clipboard.WriteAll(text)
	}
	if err != nil {
		a.state.LastError = "clipboard: " + err.Error()
		return
	}
	a.state.LastSuccess = "Result copied to clipboard."
}
