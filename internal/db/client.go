// Package db hides engine differences behind a uniform client contract:
// statement execution, row queries, transactions and catalog introspection
// work the same against PostgreSQL and MySQL. The registry owns the live
// client; nothing else in the program touches a driver directly.
package db

import (
	"context"

	"github.com/verdande/dbgrip/internal/models"
)

// Client is the uniform access contract for one engine connection. A client
// owns a small fixed connection pool and fails fast: no call retries, no
// backoff. The caller decides whether to surface the error and let the
// operator try again.
type Client interface {
	// Execute runs a statement with no expected result set.
	Execute(ctx context.Context, sql string) error

	// Query runs a statement expected to return rows. Every value is read
	// as text, best effort: a value that cannot be coerced becomes a NULL
	// cell rather than failing the whole query.
	Query(ctx context.Context, sql string) (*models.QueryResult, error)

	// BeginTx starts a transaction. The returned handle must be finished
	// with exactly one Commit or Rollback; Close rolls back when neither
	// was called and is safe to defer.
	BeginTx(ctx context.Context) (Tx, error)

	// ListDatabases and ListTables run the engine's catalog queries. Order
	// is whatever the catalog returns.
	ListDatabases(ctx context.Context) ([]string, error)
	ListTables(ctx context.Context) ([]string, error)

	// DescribeTable introspects one table. Indexes are never populated.
	// Engines disagree on missing tables: some error, some return an empty
	// column list; neither is normalized here.
	DescribeTable(ctx context.Context, table string) (models.TableSchema, error)

	// Engine reports which backend this client talks to.
	Engine() models.Engine

	// Close releases the connection pool.
	Close()
}

// Tx is a transaction handle. Commit and Rollback terminate it; a second
// terminal call fails with a Transaction-kind error instead of reaching the
// driver.
type Tx interface {
	ExecInTx(ctx context.Context, sql string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Close rolls the transaction back when it was never terminated, so a
	// deferred Close cannot leak an open transaction. After Commit or
	// Rollback it does nothing.
	Close(ctx context.Context)
}

// maxPoolConns bounds every engine pool.
const maxPoolConns = 5

// Dial constructs the client matching the config's engine tag. The engine
// set is closed; adding a backend means adding a case here.
func Dial(ctx context.Context, cfg models.ConnectionConfig) (Client, error) {
	switch cfg.Engine {
	case models.EnginePostgres:
		return dialPostgres(ctx, cfg.URL)
	case models.EngineMySQL:
		return dialMySQL(ctx, cfg.URL)
	case models.EngineSQLite:
		return nil, configErr("SQLite support is not implemented yet")
	default:
		return nil, configErr("unknown engine in connection config")
	}
}

// txState tracks whether a transaction handle has been consumed. Go has no
// move semantics, so the terminal-op-once contract is a checked flag backed
// by Close forcing a rollback.
type txState struct {
	done bool
}

// terminate flips the handle to done, erroring when it already was.
func (s *txState) terminate() error {
	if s.done {
		return txErr("transaction already finished", nil)
	}
	s.done = true
	return nil
}
