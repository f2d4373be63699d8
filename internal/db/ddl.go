package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/verdande/dbgrip/internal/models"
)

// DDL helpers: single round-trip statement builders with no transactional
// grouping. Identifiers come from the operator, so they are quoted per
// engine before interpolation.

// CreateTable issues CREATE TABLE with the given column definitions.
func CreateTable(ctx context.Context, c Client, table string, columns []models.ColumnSchema) error {
	if len(columns) == 0 {
		return configErr("create table needs at least one column")
	}

	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		var b strings.Builder
		b.WriteString(quoteIdent(c.Engine(), col.Name))
		b.WriteString(" ")
		b.WriteString(col.DataType)
		if !col.IsNullable {
			b.WriteString(" NOT NULL")
		}
		if col.Default != nil {
			b.WriteString(" DEFAULT ")
			b.WriteString(*col.Default)
		}
		defs = append(defs, b.String())
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(c.Engine(), table), strings.Join(defs, ", "))
	return c.Execute(ctx, stmt)
}

// DropTable issues DROP TABLE IF EXISTS.
func DropTable(ctx context.Context, c Client, table string) error {
	return c.Execute(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(c.Engine(), table)))
}

// CreateIndex creates idx_{table}_{column} on a single column.
func CreateIndex(ctx context.Context, c Client, table, column string) error {
	name := fmt.Sprintf("idx_%s_%s", table, column)
	stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
		quoteIdent(c.Engine(), name),
		quoteIdent(c.Engine(), table),
		quoteIdent(c.Engine(), column))
	return c.Execute(ctx, stmt)
}

// DropIndex drops an index by name.
func DropIndex(ctx context.Context, c Client, index string) error {
	return c.Execute(ctx, fmt.Sprintf("DROP INDEX IF EXISTS %s", quoteIdent(c.Engine(), index)))
}

// AddUniqueConstraint adds unique_{table}_{column}.
func AddUniqueConstraint(ctx context.Context, c Client, table, column string) error {
	name := fmt.Sprintf("unique_%s_%s", table, column)
	stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s)",
		quoteIdent(c.Engine(), table),
		quoteIdent(c.Engine(), name),
		quoteIdent(c.Engine(), column))
	return c.Execute(ctx, stmt)
}

// AddForeignKey adds fk_{table}_{column} referencing foreignTable(foreignColumn).
func AddForeignKey(ctx context.Context, c Client, table, column, foreignTable, foreignColumn string) error {
	name := fmt.Sprintf("fk_%s_%s", table, column)
	stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		quoteIdent(c.Engine(), table),
		quoteIdent(c.Engine(), name),
		quoteIdent(c.Engine(), column),
		quoteIdent(c.Engine(), foreignTable),
		quoteIdent(c.Engine(), foreignColumn))
	return c.Execute(ctx, stmt)
}

func quoteIdent(engine models.Engine, ident string) string {
	if engine == models.EngineMySQL {
		return quoteMySQLIdent(ident)
	}
	return quotePostgresIdent(ident)
}

func quotePostgresIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
