// Package sqlgen generates schema DDL from typed column specifications.
package sqlgen

import (
	"errors"
	"fmt"
)

// ErrUnknownColumnType is returned when a logical column type is absent
// from the provider's type-mapping table.
var ErrUnknownColumnType = errors.New("unknown column type")

// ColumnType is a logical, dialect-independent column type. The set is
// closed; each provider maps it to a physical SQL type.
type ColumnType string

const (
	TypeChar      ColumnType = "char"
	TypeString    ColumnType = "string"
	TypeText      ColumnType = "text"
	TypeInteger   ColumnType = "integer"
	TypeFloat     ColumnType = "float"
	TypeDecimal   ColumnType = "decimal"
	TypeDatetime  ColumnType = "datetime"
	TypeTimestamp ColumnType = "timestamp"
	TypeTime      ColumnType = "time"
	TypeDate      ColumnType = "date"
	TypeBinary    ColumnType = "binary"
	TypeBoolean   ColumnType = "boolean"
)

// ColumnSpec describes one column in the DDL mini-language.
type ColumnSpec struct {
	Name    string
	Type    ColumnType
	Options string      // free-form trailing options text
	Default interface{} // nil means no default
	Limit   int         // parenthesized length limit; zero means none
	NotNull bool
}

// SchemaGenerator renders DDL for a specific provider.
type SchemaGenerator interface {
	// ColumnDDL renders a column declaration from its specification.
	ColumnDDL(spec ColumnSpec) (string, error)

	// PrimaryKeyDDL renders an auto-incrementing primary key declaration.
	PrimaryKeyDDL(name, options, constraint, nextval string) string

	// CreateTableDDL renders a CREATE TABLE from pre-rendered column DDL.
	CreateTableDDL(name string, columns []string, options string) string

	// DropTableDDL renders a DROP TABLE.
	DropTableDDL(name string) string

	// AddColumnDDL renders an ALTER TABLE ... ADD COLUMN from a
	// pre-rendered column declaration.
	AddColumnDDL(table, column string) string

	// RemoveColumnDDL renders an ALTER TABLE ... DROP COLUMN.
	RemoveColumnDDL(table, column string) string

	// AddIndexDDL renders a CREATE INDEX. An empty name falls back to the
	// <table>_<column>_idx convention.
	AddIndexDDL(table, column, name string, unique bool) string

	// RemoveIndexDDL renders a DROP INDEX, deriving the conventional name
	// when none is given.
	RemoveIndexDDL(table, column, name string) string

	// SequenceName returns the conventional sequence name for a column.
	SequenceName(table, column string) string

	// CreateSequenceDDL renders a CREATE SEQUENCE using the naming
	// convention.
	CreateSequenceDDL(table, column string) string

	// RemoveSequenceDDL renders a DROP SEQUENCE. An empty name falls back
	// to the naming convention.
	RemoveSequenceDDL(table, column, name string) string

	// AttachSequenceDDL renders an ALTER SEQUENCE ... OWNED BY so that
	// dropping the owning column cascades sequence cleanup.
	AttachSequenceDDL(table, column, sequence string) string
}

// NewSchemaGenerator creates a schema generator for the given provider.
func NewSchemaGenerator(provider string) (SchemaGenerator, error) {
	switch provider {
	case "postgresql", "postgres":
		return NewPostgresSchemaGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
