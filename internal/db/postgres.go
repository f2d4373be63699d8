package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/verdande/dbgrip/internal/models"
)

// postgresClient talks to PostgreSQL through a pgx pool.
type postgresClient struct {
	pool *pgxpool.Pool
}

func dialPostgres(ctx context.Context, url string) (Client, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, connectionErr("invalid connection URL", err)
	}

	poolCfg.MaxConns = maxPoolConns
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, connectionErr("failed to create connection pool", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, connectionErr("failed to reach database", err)
	}

	return &postgresClient{pool: pool}, nil
}

func (c *postgresClient) Engine() models.Engine { return models.EnginePostgres }

func (c *postgresClient) Close() {
	c.pool.Close()
}

func (c *postgresClient) Execute(ctx context.Context, sql string) error {
	if _, err := c.pool.Exec(ctx, sql); err != nil {
		return queryErr(err)
	}
	return nil
}

func (c *postgresClient) Query(ctx context.Context, sql string) (*models.QueryResult, error) {
	rows, err := c.pool.Query(ctx, sql)
	if err != nil {
		return nil, queryErr(err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = string(fd.Name)
	}

	result := &models.QueryResult{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, queryErr(err)
		}
		row := make(models.Row, len(columns))
		for i, name := range columns {
			row[name] = coerceText(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(err)
	}

	return result, nil
}

func (c *postgresClient) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, txErr("begin failed", err)
	}
	return &postgresTx{tx: tx}, nil
}

func (c *postgresClient) ListDatabases(ctx context.Context) ([]string, error) {
	const query = `
		SELECT datname
		FROM pg_catalog.pg_database
		WHERE datistemplate = false
	`
	return c.stringColumn(ctx, query)
}

func (c *postgresClient) ListTables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT tablename
		FROM pg_catalog.pg_tables
		WHERE schemaname = 'public'
	`
	return c.stringColumn(ctx, query)
}

func (c *postgresClient) DescribeTable(ctx context.Context, table string) (models.TableSchema, error) {
	const query = `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position
	`
	rows, err := c.pool.Query(ctx, query, table)
	if err != nil {
		return models.TableSchema{}, queryErr(err)
	}
	defer rows.Close()

	schema := models.TableSchema{TableName: table}
	for rows.Next() {
		var name, dataType, nullable string
		var def *string
		if err := rows.Scan(&name, &dataType, &nullable, &def); err != nil {
			return models.TableSchema{}, queryErr(err)
		}
		schema.Columns = append(schema.Columns, models.ColumnSchema{
			Name:       name,
			DataType:   dataType,
			IsNullable: nullable == "YES",
			Default:    def,
		})
	}
	if err := rows.Err(); err != nil {
		return models.TableSchema{}, queryErr(err)
	}

	// A table that does not exist comes back as zero columns here; that is
	// the engine's behavior and is not normalized.
	return schema, nil
}

// stringColumn runs a single-column catalog query, preserving catalog order.
func (c *postgresClient) stringColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, queryErr(err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, queryErr(err)
	}
	return names, nil
}

// postgresTx wraps a pgx transaction behind the consumed-once contract.
type postgresTx struct {
	txState
	tx pgx.Tx
}

func (t *postgresTx) ExecInTx(ctx context.Context, sql string) error {
	if t.done {
		return txErr("transaction already finished", nil)
	}
	if _, err := t.tx.Exec(ctx, sql); err != nil {
		return txErr("statement failed", err)
	}
	return nil
}

func (t *postgresTx) Commit(ctx context.Context) error {
	if err := t.terminate(); err != nil {
		return err
	}
	if err := t.tx.Commit(ctx); err != nil {
		return txErr("commit failed", err)
	}
	return nil
}

func (t *postgresTx) Rollback(ctx context.Context) error {
	if err := t.terminate(); err != nil {
		return err
	}
	if err := t.tx.Rollback(ctx); err != nil {
		return txErr("rollback failed", err)
	}
	return nil
}

func (t *postgresTx) Close(ctx context.Context) {
	if t.done {
		return
	}
	t.done = true
	_ = t.tx.Rollback(ctx)
}

// coerceText turns a driver value into a text cell, best effort. NULLs and
// values with no reasonable text form become invalid, never an error.
func coerceText(v any) sql.NullString {
	switch val := v.(type) {
	case nil:
		return sql.NullString{}
	case string:
		return sql.NullString{String: val, Valid: true}
	case []byte:
		return sql.NullString{String: string(val), Valid: true}
	case map[string]any, []any:
		// Composite and json values round-trip through encoding/json.
		b, err := json.Marshal(val)
		if err != nil {
			return sql.NullString{}
		}
		return sql.NullString{String: string(b), Valid: true}
	case time.Time:
		return sql.NullString{String: val.Format(time.RFC3339), Valid: true}
	default:
		return sql.NullString{String: fmt.Sprintf("%v", val), Valid: true}
	}
}
