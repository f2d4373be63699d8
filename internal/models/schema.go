package models

// TableSchema describes one table as reported by catalog introspection.
// Instances are immutable once returned and cached by table name in the
// session.
type TableSchema struct {
	TableName string
	Columns   []ColumnSchema
	Indexes   []IndexSchema
}

// ColumnSchema describes a single column. DataType is the engine-native
// type string, not normalized across engines.
type ColumnSchema struct {
	Name       string
	DataType   string
	IsNullable bool
	Default    *string
}

// IndexSchema describes an index. No backend populates indexes today, so
// TableSchema.Indexes is always empty.
type IndexSchema struct {
	Name     string
	Columns  []string
	IsUnique bool
}
