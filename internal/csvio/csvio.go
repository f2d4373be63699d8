// Package csvio moves table data between CSV files and a live connection.
// Both directions are plain row-at-a-time I/O wrappers: call the client,
// map the error.
package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/verdande/dbgrip/internal/db"
)

// ImportTable reads the CSV at path and issues one INSERT per record
// against table. Records are inserted positionally; there is no header
// handling and no transactional grouping.
func ImportTable(ctx context.Context, client db.Client, table, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &db.Error{Kind: db.KindImport, Message: "open csv", Err: err}
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return &db.Error{Kind: db.KindImport, Message: "parse csv", Err: err}
	}

	for _, record := range records {
		values := make([]string, len(record))
		for i, field := range record {
			values[i] = quoteLiteral(field)
		}
		stmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, strings.Join(values, ", "))
		if err := client.Execute(ctx, stmt); err != nil {
			return &db.Error{Kind: db.KindImport, Message: "insert row", Err: err}
		}
	}

	return nil
}

// ExportTable writes every row of table to a CSV file at path, one record
// per row with a header line of column names. NULL cells are written as
// the literal NULL, matching the result grid.
func ExportTable(ctx context.Context, client db.Client, table, path string) error {
	result, err := client.Query(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return &db.Error{Kind: db.KindExport, Message: "read table", Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return &db.Error{Kind: db.KindExport, Message: "create csv", Err: err}
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(result.Columns); err != nil {
		return &db.Error{Kind: db.KindExport, Message: "write header", Err: err}
	}

	for _, row := range result.Rows {
		record := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			if v := row.Value(col); v.Valid {
				record[i] = v.String
			} else {
				record[i] = "NULL"
			}
		}
		if err := writer.Write(record); err != nil {
			return &db.Error{Kind: db.KindExport, Message: "write row", Err: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &db.Error{Kind: db.KindExport, Message: "flush csv", Err: err}
	}

	return nil
}

// quoteLiteral wraps a CSV field as a SQL string literal, doubling any
// embedded single quotes.
func quoteLiteral(field string) string {
	return "'" + strings.ReplaceAll(field, "'", "''") + "'"
}
