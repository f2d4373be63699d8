package models

// Screen identifies one full-terminal UI mode.
type Screen int

const (
	ScreenEngineSelect Screen = iota
	ScreenConnectionInput
	ScreenDatabaseSelect
	ScreenTableView
	ScreenMessagePopup
)

// Focus identifies which widget in the table view receives keystrokes.
type Focus int

const (
	FocusTablesList Focus = iota
	FocusSQLEditor
)

// SessionState is the mutable state behind the session state machine. It is
// created once at startup and mutated only by the update loop; nothing is
// persisted across restarts.
//
// Invariant: SelectedDatabase and SelectedTable are always valid indices
// into their lists, or 0 when the list is empty. Every mutation goes through
// the Set*/Move* helpers to keep that true.
type SessionState struct {
	Screen Screen
	Focus  Focus

	EngineCursor int

	Databases        []string
	SelectedDatabase int

	Tables        []string
	SelectedTable int
	ExpandedTable int // index into Tables, -1 when nothing is expanded

	SchemaCache map[string]TableSchema

	SQLBuffer   string
	LastResult  *QueryResult
	LastError   string
	LastSuccess string

	ConnError string
	PopupText string
}

// NewSessionState returns the initial state: engine selection, nothing
// loaded.
func NewSessionState() SessionState {
	return SessionState{
		Screen:        ScreenEngineSelect,
		ExpandedTable: -1,
		SchemaCache:   make(map[string]TableSchema),
	}
}

// SelectedEngine returns the engine under the selection cursor.
func (s *SessionState) SelectedEngine() Engine {
	return Engines[clamp(s.EngineCursor, len(Engines))]
}

// MoveEngineCursor moves the engine cursor by delta, staying in bounds.
func (s *SessionState) MoveEngineCursor(delta int) {
	s.EngineCursor = clamp(s.EngineCursor+delta, len(Engines))
}

// SetDatabases replaces the database list and re-clamps the cursor. A fetch
// that fails replaces a non-empty list with an empty one; the cursor must
// stay inert rather than out of bounds.
func (s *SessionState) SetDatabases(names []string) {
	s.Databases = names
	s.SelectedDatabase = clamp(s.SelectedDatabase, len(names))
}

// MoveDatabaseCursor moves the database cursor by delta, staying in bounds.
func (s *SessionState) MoveDatabaseCursor(delta int) {
	s.SelectedDatabase = clamp(s.SelectedDatabase+delta, len(s.Databases))
}

// SelectedDatabaseName returns the database under the cursor, or "" when
// the list is empty.
func (s *SessionState) SelectedDatabaseName() string {
	if len(s.Databases) == 0 {
		return ""
	}
	return s.Databases[s.SelectedDatabase]
}

// SetTables replaces the table list, re-clamps the cursor and collapses any
// expanded schema.
func (s *SessionState) SetTables(names []string) {
	s.Tables = names
	s.SelectedTable = clamp(s.SelectedTable, len(names))
	s.ExpandedTable = -1
}

// MoveTableCursor moves the table cursor by delta, staying in bounds.
func (s *SessionState) MoveTableCursor(delta int) {
	s.SelectedTable = clamp(s.SelectedTable+delta, len(s.Tables))
}

// SelectedTableName returns the table under the cursor, or "" when the list
// is empty.
func (s *SessionState) SelectedTableName() string {
	if len(s.Tables) == 0 {
		return ""
	}
	return s.Tables[s.SelectedTable]
}

// CachedSchema looks up a previously described table.
func (s *SessionState) CachedSchema(table string) (TableSchema, bool) {
	schema, ok := s.SchemaCache[table]
	return schema, ok
}

// CacheSchema stores a described table, last write wins.
func (s *SessionState) CacheSchema(schema TableSchema) {
	s.SchemaCache[schema.TableName] = schema
}

// ClearQueryState drops the SQL buffer and any previous result or message,
// used when leaving the table view.
func (s *SessionState) ClearQueryState() {
	s.SQLBuffer = ""
	s.LastResult = nil
	s.LastError = ""
	s.LastSuccess = ""
}

// clamp bounds i to [0, n-1], or 0 for an empty list.
func clamp(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
