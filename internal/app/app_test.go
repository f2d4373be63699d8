package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/verdande/dbgrip/internal/config"
	"github.com/verdande/dbgrip/internal/db"
	"github.com/verdande/dbgrip/internal/models"
	"github.com/verdande/dbgrip/internal/vault"
	"github.com/zalando/go-keyring"
)

type fakeClient struct {
	engine    models.Engine
	databases []string
	tables    []string
	schema    models.TableSchema
	result    *models.QueryResult

	executed []string
	closed   bool
}

func (f *fakeClient) Execute(_ context.Context, sqlText string) error {
	f.executed = append(f.executed, sqlText)
	return nil
}

func (f *fakeClient) Query(_ context.Context, sqlText string) (*models.QueryResult, error) {
	f.executed = append(f.executed, sqlText)
	return f.result, nil
}

func (f *fakeClient) BeginTx(context.Context) (db.Tx, error) { return nil, nil }

func (f *fakeClient) ListDatabases(context.Context) ([]string, error) { return f.databases, nil }
func (f *fakeClient) ListTables(context.Context) ([]string, error)    { return f.tables, nil }

func (f *fakeClient) DescribeTable(_ context.Context, table string) (models.TableSchema, error) {
	s := f.schema
	s.TableName = table
	return s, nil
}

func (f *fakeClient) Engine() models.Engine { return f.engine }
func (f *fakeClient) Close()                { f.closed = true }

func newTestApp(fake *fakeClient) *App {
	registry := db.NewRegistryWithDial(func(context.Context, models.ConnectionConfig) (db.Client, error) {
		return fake, nil
	})
	return New(config.Defaults(), registry, nil, vault.NewPasswordStore(false))
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds a message and every resulting command's message back into the
// model until no command remains.
func drive(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	for msg != nil {
		_, cmd := a.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
	}
}

func TestEngineSelect_CursorMoves(t *testing.T) {
	a := newTestApp(&fakeClient{})

	a.Update(key("j"))
	if a.state.SelectedEngine() != models.EngineMySQL {
		t.Errorf("expected MySQL after one down, got %v", a.state.SelectedEngine())
	}

	a.Update(key("j"))
	a.Update(key("j"))
	if a.state.SelectedEngine() != models.EngineSQLite {
		t.Errorf("expected cursor pinned at SQLite, got %v", a.state.SelectedEngine())
	}

	a.Update(key("k"))
	if a.state.SelectedEngine() != models.EngineMySQL {
		t.Errorf("expected MySQL after up, got %v", a.state.SelectedEngine())
	}
}

func TestEngineSelect_UnimplementedEngineShowsPopup(t *testing.T) {
	a := newTestApp(&fakeClient{})
	a.Update(key("j"))
	a.Update(key("j")) // SQLite

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if a.state.Screen != models.ScreenMessagePopup {
		t.Fatalf("expected popup screen, got %v", a.state.Screen)
	}
	if a.state.PopupText == "" {
		t.Error("expected popup text")
	}

	// Any key returns to engine selection.
	a.Update(key("x"))
	if a.state.Screen != models.ScreenEngineSelect {
		t.Errorf("expected return to engine selection, got %v", a.state.Screen)
	}
	if a.state.PopupText != "" {
		t.Error("expected popup text cleared")
	}
}

func TestEngineSelect_EnterOpensConnectionInput(t *testing.T) {
	a := newTestApp(&fakeClient{})

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if a.state.Screen != models.ScreenConnectionInput {
		t.Fatalf("expected connection input, got %v", a.state.Screen)
	}
	if a.form == nil {
		t.Fatal("expected form to be built")
	}
}

func TestConnectionInput_EscGoesBack(t *testing.T) {
	a := newTestApp(&fakeClient{})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.state.ConnError = "stale"

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if a.state.Screen != models.ScreenEngineSelect {
		t.Errorf("expected engine selection, got %v", a.state.Screen)
	}
	if a.state.ConnError != "" {
		t.Error("expected connection error cleared")
	}
}

func TestConnectionInput_KeyringPrefillOnUsernameEntry(t *testing.T) {
	t.Setenv("PGUSER", "")
	t.Setenv("PGPASSWORD", "")
	t.Setenv("PGHOST", "")
	keyring.MockInit()
	store := vault.NewPasswordStore(true)
	if err := store.Save(models.EnginePostgres, "alice", "localhost", "secret"); err != nil {
		t.Fatalf("save: %v", err)
	}

	registry := db.NewRegistryWithDial(func(context.Context, models.ConnectionConfig) (db.Client, error) {
		return &fakeClient{}, nil
	})
	a := New(config.Defaults(), registry, nil, store)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter}) // engine -> form
	a.Update(key("alice"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab}) // leave username

	_, password, _, _ := a.form.Values()
	if password != "secret" {
		t.Errorf("expected stored password prefilled, got %q", password)
	}
}

func TestConnectionInput_PrefillNeverOverwritesTypedPassword(t *testing.T) {
	t.Setenv("PGUSER", "")
	t.Setenv("PGPASSWORD", "")
	t.Setenv("PGHOST", "")
	keyring.MockInit()
	store := vault.NewPasswordStore(true)
	if err := store.Save(models.EnginePostgres, "alice", "localhost", "secret"); err != nil {
		t.Fatalf("save: %v", err)
	}

	registry := db.NewRegistryWithDial(func(context.Context, models.ConnectionConfig) (db.Client, error) {
		return &fakeClient{}, nil
	})
	a := New(config.Defaults(), registry, nil, store)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(key("bob")) // nothing stored for bob
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.Update(key("typed"))
	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab}) // back to username
	a.Update(tea.KeyMsg{Type: tea.KeyTab})      // and forward again

	// Prefill only ever fills an empty password field.
	_, password, _, _ := a.form.Values()
	if password != "typed" {
		t.Errorf("expected typed password kept, got %q", password)
	}
}

func TestConnect_SuccessReachesDatabaseSelect(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres, databases: []string{"postgres", "shop"}}
	a := newTestApp(fake)
	a.Update(tea.KeyMsg{Type: tea.KeyEnter}) // engine -> form

	// Enter advances through the three upper fields, then connects.
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drive(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.state.Screen != models.ScreenDatabaseSelect {
		t.Fatalf("expected database selection, got %v", a.state.Screen)
	}
	if len(a.state.Databases) != 2 {
		t.Errorf("expected 2 databases, got %v", a.state.Databases)
	}
	if a.busy {
		t.Error("expected busy cleared after the flow settles")
	}
	if a.currentDB != "postgres" {
		t.Errorf("expected default database, got %q", a.currentDB)
	}
}

func TestConnect_FailureStaysOnForm(t *testing.T) {
	a := newTestApp(&fakeClient{})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	a.Update(connectedMsg{Engine: models.EnginePostgres, Err: context.DeadlineExceeded})

	if a.state.Screen != models.ScreenConnectionInput {
		t.Errorf("expected to stay on the form, got %v", a.state.Screen)
	}
	if a.state.ConnError == "" {
		t.Error("expected connection error set")
	}
	if a.busy {
		t.Error("expected busy cleared")
	}
}

func TestDatabaseSelect_EnterOpensTableView(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres, databases: []string{"postgres", "shop"}, tables: []string{"users", "orders"}}
	a := newTestApp(fake)
	connectTo(t, a)

	a.Update(key("j")) // cursor on "shop"
	drive(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.state.Screen != models.ScreenTableView {
		t.Fatalf("expected table view, got %v", a.state.Screen)
	}
	if a.state.Focus != models.FocusTablesList {
		t.Errorf("expected tables list focused, got %v", a.state.Focus)
	}
	if len(a.state.Tables) != 2 {
		t.Errorf("expected 2 tables, got %v", a.state.Tables)
	}
	if a.currentDB != "shop" {
		t.Errorf("expected current database shop, got %q", a.currentDB)
	}
}

func TestDatabaseSelect_OpenFailureStaysPut(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres, databases: []string{"postgres"}}
	a := newTestApp(fake)
	connectTo(t, a)

	a.Update(openedDatabaseMsg{Database: "postgres", Err: context.DeadlineExceeded})

	if a.state.Screen != models.ScreenDatabaseSelect {
		t.Errorf("expected to stay on database selection, got %v", a.state.Screen)
	}
	if a.state.ConnError == "" {
		t.Error("expected error reported")
	}
	if a.busy {
		t.Error("expected busy cleared")
	}
}

func TestTableView_TabTogglesFocus(t *testing.T) {
	a := tableViewApp(t, &fakeClient{engine: models.EnginePostgres, databases: []string{"postgres"}, tables: []string{"users"}})

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.state.Focus != models.FocusSQLEditor {
		t.Errorf("expected editor focused, got %v", a.state.Focus)
	}
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.state.Focus != models.FocusTablesList {
		t.Errorf("expected tables list focused, got %v", a.state.Focus)
	}
}

func TestTableView_DescribeCachesAndToggles(t *testing.T) {
	fake := &fakeClient{
		engine:    models.EnginePostgres,
		databases: []string{"postgres"},
		tables:    []string{"users"},
		schema:    models.TableSchema{Columns: []models.ColumnSchema{{Name: "id", DataType: "integer"}}},
	}
	a := tableViewApp(t, fake)

	drive(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.state.ExpandedTable != 0 {
		t.Fatalf("expected users expanded, got %d", a.state.ExpandedTable)
	}
	if _, ok := a.state.CachedSchema("users"); !ok {
		t.Error("expected schema cached")
	}

	// Second enter collapses without another round trip.
	drive(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.state.ExpandedTable != -1 {
		t.Errorf("expected collapsed, got %d", a.state.ExpandedTable)
	}

	// Third enter expands straight from the cache.
	drive(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.state.ExpandedTable != 0 {
		t.Errorf("expected expanded from cache, got %d", a.state.ExpandedTable)
	}
}

func TestSQLEditor_TypingAndSubmit(t *testing.T) {
	fake := &fakeClient{
		engine:    models.EnginePostgres,
		databases: []string{"postgres"},
		tables:    []string{"users"},
		result:    &models.QueryResult{Columns: []string{"id"}},
	}
	a := tableViewApp(t, fake)
	a.Update(tea.KeyMsg{Type: tea.KeyTab}) // focus editor

	a.Update(key("select"))
	a.Update(tea.KeyMsg{Type: tea.KeySpace})
	a.Update(key("1"))
	if a.state.SQLBuffer != "select 1" {
		t.Fatalf("unexpected buffer: %q", a.state.SQLBuffer)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if a.state.SQLBuffer != "select " {
		t.Fatalf("expected backspace to drop one rune, got %q", a.state.SQLBuffer)
	}
	a.Update(key("2"))

	drive(t, a, tea.KeyMsg{Type: tea.KeyCtrlE})

	if a.state.SQLBuffer != "" {
		t.Errorf("expected buffer cleared on submit, got %q", a.state.SQLBuffer)
	}
	if a.state.LastResult == nil {
		t.Error("expected a result for a select")
	}
	if a.state.LastError != "" || a.state.LastSuccess != "" {
		t.Errorf("unexpected messages: %q %q", a.state.LastError, a.state.LastSuccess)
	}
}

func TestSQLEditor_EmptyBufferSubmitIsNoop(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres, databases: []string{"postgres"}, tables: []string{"users"}}
	a := tableViewApp(t, fake)
	a.Update(tea.KeyMsg{Type: tea.KeyTab})

	a.Update(tea.KeyMsg{Type: tea.KeySpace})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	before := len(fake.executed)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlE})

	if cmd != nil {
		t.Error("expected no command for an all-whitespace buffer")
	}
	if a.state.SQLBuffer != " \n" {
		t.Errorf("expected buffer untouched, got %q", a.state.SQLBuffer)
	}
	if len(fake.executed) != before {
		t.Error("expected no statement dispatched")
	}
	if a.busy {
		t.Error("expected not busy")
	}
}

func TestSQLEditor_NonSelectSetsSuccessMessage(t *testing.T) {
	fake := &fakeClient{engine: models.EnginePostgres, databases: []string{"postgres"}, tables: []string{"users"}}
	a := tableViewApp(t, fake)
	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a.state.LastResult = &models.QueryResult{}

	a.Update(key("delete"))
	a.Update(tea.KeyMsg{Type: tea.KeySpace})
	a.Update(key("from"))
	a.Update(tea.KeyMsg{Type: tea.KeySpace})
	a.Update(key("users"))
	drive(t, a, tea.KeyMsg{Type: tea.KeyCtrlE})

	if a.state.LastSuccess != "Query executed successfully." {
		t.Errorf("unexpected success message: %q", a.state.LastSuccess)
	}
	if a.state.LastResult != nil {
		t.Error("expected stale result cleared for a non-select")
	}
	if got := fake.executed[len(fake.executed)-1]; got != "delete from users" {
		t.Errorf("unexpected statement: %q", got)
	}
}

func TestQueryDone_ErrorSetsLastError(t *testing.T) {
	a := tableViewApp(t, &fakeClient{engine: models.EnginePostgres, databases: []string{"postgres"}, tables: []string{"users"}})
	a.state.LastResult = &models.QueryResult{}
	a.state.LastSuccess = "stale"

	a.Update(queryDoneMsg{IsSelect: true, Err: context.DeadlineExceeded})

	if a.state.LastError == "" {
		t.Error("expected error message")
	}
	if a.state.LastResult != nil || a.state.LastSuccess != "" {
		t.Error("expected stale result and success cleared")
	}
}

func TestBusy_DropsKeys(t *testing.T) {
	a := newTestApp(&fakeClient{})
	a.busy = true

	_, cmd := a.Update(key("j"))

	if cmd != nil {
		t.Error("expected key dropped while busy")
	}
	if a.state.EngineCursor != 0 {
		t.Errorf("expected cursor unchanged, got %d", a.state.EngineCursor)
	}
}

func TestCtrlC_QuitsEvenWhenBusy(t *testing.T) {
	a := newTestApp(&fakeClient{})
	a.busy = true

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}

func TestIsSelect(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"select * from t", true},
		{"SELECT 1", true},
		{"SeLeCt now()", true},
		{"delete from t", false},
		{"insert into t values (1)", false},
		{"sel", false},
		{"selection_audit", true},
	}
	for _, tt := range tests {
		if got := isSelect(tt.sql); got != tt.want {
			t.Errorf("isSelect(%q) = %v, want %v", tt.sql, got, tt.want)
		}
	}
}

func TestWindowSize(t *testing.T) {
	a := newTestApp(&fakeClient{})

	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if a.width != 120 || a.height != 40 {
		t.Errorf("unexpected dimensions: %dx%d", a.width, a.height)
	}
}

// connectTo walks the model from engine selection to database selection.
func connectTo(t *testing.T, a *App) {
	t.Helper()
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drive(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.state.Screen != models.ScreenDatabaseSelect {
		t.Fatalf("expected database selection, got %v", a.state.Screen)
	}
}

// tableViewApp walks the model all the way into the table view.
func tableViewApp(t *testing.T, fake *fakeClient) *App {
	t.Helper()
	a := newTestApp(fake)
	connectTo(t, a)
	drive(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.state.Screen != models.ScreenTableView {
		t.Fatalf("expected table view, got %v", a.state.Screen)
	}
	return a
}
