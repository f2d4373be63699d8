package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/verdande/dbgrip/internal/history"
	"github.com/verdande/dbgrip/internal/models"
)

// connectedMsg reports the outcome of dialing an engine's default database.
type connectedMsg struct {
	Engine models.Engine
	Err    error
}

// databasesMsg carries the database list for the active connection.
type databasesMsg struct {
	Names []string
	Err   error
}

// openedDatabaseMsg reports a reconnect against a chosen database plus its
// table list.
type openedDatabaseMsg struct {
	Database string
	Tables   []string
	Err      error
}

// schemaMsg carries one described table.
type schemaMsg struct {
	Table  string
	Schema models.TableSchema
	Err    error
}

// queryDoneMsg reports a submitted statement. Result is nil unless the
// statement was a select that succeeded.
type queryDoneMsg struct {
	IsSelect bool
	Result   *models.QueryResult
	Err      error
}

func (a *App) connectTimeout() time.Duration {
	ms := a.config.Performance.ConnectTimeoutMS
	if ms <= 0 {
		ms = 10000
	}
	return time.Duration(ms) * time.Millisecond
}

func (a *App) queryTimeout() time.Duration {
	ms := a.config.Performance.QueryTimeoutMS
	if ms <= 0 {
		ms = 30000
	}
	return time.Duration(ms) * time.Millisecond
}

// connect dials the engine's default database, replacing whatever connection
// was active before.
func (a *App) connect(cfg models.ConnectionConfig) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.connectTimeout())
		defer cancel()

		err := a.registry.Replace(ctx, cfg)
		return connectedMsg{Engine: cfg.Engine, Err: err}
	}
}

// fetchDatabases lists the databases visible on the active connection.
func (a *App) fetchDatabases() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), a.queryTimeout())
	defer cancel()

	client, err := a.registry.Active()
	if err != nil {
		return databasesMsg{Err: err}
	}
	names, err := client.ListDatabases(ctx)
	return databasesMsg{Names: names, Err: err}
}

// openDatabase reconnects against the chosen database and lists its tables.
func (a *App) openDatabase(cfg models.ConnectionConfig, database string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.connectTimeout())
		defer cancel()

		if err := a.registry.Replace(ctx, cfg); err != nil {
			return openedDatabaseMsg{Database: database, Err: err}
		}
		client, err := a.registry.Active()
		if err != nil {
			return openedDatabaseMsg{Database: database, Err: err}
		}
		tables, err := client.ListTables(ctx)
		return openedDatabaseMsg{Database: database, Tables: tables, Err: err}
	}
}

// describeTable introspects one table on the active connection.
func (a *App) describeTable(table string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.queryTimeout())
		defer cancel()

		client, err := a.registry.Active()
		if err != nil {
			return schemaMsg{Table: table, Err: err}
		}
		schema, err := client.DescribeTable(ctx, table)
		return schemaMsg{Table: table, Schema: schema, Err: err}
	}
}

// runSQL submits one statement and records it in the query history.
func (a *App) runSQL(sqlText string, isSelect bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.queryTimeout())
		defer cancel()

		client, err := a.registry.Active()
		if err != nil {
			return queryDoneMsg{IsSelect: isSelect, Err: err}
		}

		start := time.Now()
		var result *models.QueryResult
		if isSelect {
			result, err = client.Query(ctx, sqlText)
		} else {
			err = client.Execute(ctx, sqlText)
		}
		a.recordHistory(client.Engine(), sqlText, start, err)

		if err != nil {
			return queryDoneMsg{IsSelect: isSelect, Err: err}
		}
		return queryDoneMsg{IsSelect: isSelect, Result: result}
	}
}

func (a *App) recordHistory(engine models.Engine, sqlText string, start time.Time, runErr error) {
	if a.history == nil {
		return
	}
	entry := history.Entry{
		Engine:   engine.String(),
		Database: a.currentDB,
		Query:    sqlText,
		RanAt:    start,
		Duration: time.Since(start),
		Success:  runErr == nil,
	}
	if runErr != nil {
		entry.ErrorMsg = runErr.Error()
	}
	// History is best effort, a write failure never surfaces in the UI.
	_ = a.history.Add(entry)
}
