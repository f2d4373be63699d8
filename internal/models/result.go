package models

import "database/sql"

// Row maps a column name to its text-coerced value. An invalid NullString
// means the value was NULL or could not be coerced to text; it renders as
// "NULL" in the result grid.
type Row map[string]sql.NullString

// QueryResult holds the rows returned by a SELECT. Columns carries the
// column order separately because Go maps are unordered; the grid header
// is the key set of the first row, in this order.
type QueryResult struct {
	Columns []string
	Rows    []Row
}

// Value returns the cell for col, or an invalid NullString when the row
// has no such key.
func (r Row) Value(col string) sql.NullString {
	if v, ok := r[col]; ok {
		return v
	}
	return sql.NullString{}
}
