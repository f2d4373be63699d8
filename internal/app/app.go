// Package app holds the bubbletea model driving the session state machine.
// All state mutation happens on the update loop; engine calls run as
// commands and report back through typed messages, so a failed connection
// or query never crashes the program.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/verdande/dbgrip/internal/config"
	"github.com/verdande/dbgrip/internal/db"
	"github.com/verdande/dbgrip/internal/history"
	"github.com/verdande/dbgrip/internal/models"
	"github.com/verdande/dbgrip/internal/ui/components"
	"github.com/verdande/dbgrip/internal/ui/theme"
	"github.com/verdande/dbgrip/internal/vault"
)

// App is the top-level bubbletea model.
type App struct {
	state    models.SessionState
	config   *config.Config
	theme    theme.Theme
	registry *db.Registry
	history  *history.Store
	vault    *vault.PasswordStore

	form *components.ConnectionForm

	width  int
	height int

	// busy is set while an engine command is in flight. Keys other than
	// ctrl+c are dropped until its message arrives.
	busy bool

	// Connection parameters kept from the last successful dial, needed to
	// reconnect when the operator picks a different database.
	connEngine   models.Engine
	connUser     string
	connPassword string
	connHost     string
	connPort     string
	currentDB    string
}

// New creates the application model. history may be nil when disabled.
func New(cfg *config.Config, registry *db.Registry, hist *history.Store, passwords *vault.PasswordStore) *App {
	if cfg == nil {
		cfg = config.Defaults()
	}
	return &App{
		state:    models.NewSessionState(),
		config:   cfg,
		theme:    theme.GetTheme(cfg.UI.Theme),
		registry: registry,
		history:  hist,
		vault:    passwords,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.busy {
			return a, nil
		}
		return a.handleKey(msg)

	case connectedMsg:
		a.busy = false
		if msg.Err != nil {
			a.state.ConnError = msg.Err.Error()
			return a, nil
		}
		a.state.ConnError = ""
		a.connEngine = msg.Engine
		a.currentDB = msg.Engine.DefaultDatabase()
		a.savePassword()
		a.busy = true
		return a, a.fetchDatabases

	case databasesMsg:
		a.busy = false
		if msg.Err != nil {
			a.state.ConnError = msg.Err.Error()
			a.state.Screen = models.ScreenConnectionInput
			return a, nil
		}
		a.state.SetDatabases(msg.Names)
		a.state.Screen = models.ScreenDatabaseSelect
		return a, nil

	case openedDatabaseMsg:
		a.busy = false
		if msg.Err != nil {
			// Stay on the database list; the operator can retry or back
			// out to the form.
			a.state.ConnError = msg.Err.Error()
			return a, nil
		}
		a.state.ConnError = ""
		a.currentDB = msg.Database
		a.state.SetTables(msg.Tables)
		a.state.SchemaCache = make(map[string]models.TableSchema)
		a.state.ClearQueryState()
		a.state.Screen = models.ScreenTableView
		a.state.Focus = models.FocusTablesList
		return a, nil

	case schemaMsg:
		a.busy = false
		if msg.Err != nil {
			a.state.LastError = msg.Err.Error()
			return a, nil
		}
		a.state.CacheSchema(msg.Schema)
		for i, name := range a.state.Tables {
			if name == msg.Table {
				a.state.ExpandedTable = i
				break
			}
		}
		return a, nil

	case queryDoneMsg:
		a.busy = false
		a.state.LastResult = nil
		a.state.LastError = ""
		a.state.LastSuccess = ""
		if msg.Err != nil {
			a.state.LastError = msg.Err.Error()
			return a, nil
		}
		if msg.IsSelect {
			a.state.LastResult = msg.Result
		} else {
			a.state.LastSuccess = "Query executed successfully."
		}
		return a, nil
	}
	return a, nil
}

// savePassword remembers the password typed on the last successful connect.
func (a *App) savePassword() {
	if a.vault == nil || a.connPassword == "" {
		return
	}
	_ = a.vault.Save(a.connEngine, a.connUser, a.connHost, a.connPassword)
}
