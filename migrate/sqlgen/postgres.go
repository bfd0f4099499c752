package sqlgen

import (
	"fmt"
	"strings"

	querysqlgen "github.com/quarrydb/quarry/query/sqlgen"
)

// postgresTypes maps logical column types to PostgreSQL physical types.
// The logical type set is closed; this table is intentionally not
// extensible at runtime.
var postgresTypes = map[ColumnType]string{
	TypeChar:      "CHAR",
	TypeString:    "VARCHAR",
	TypeText:      "TEXT",
	TypeInteger:   "INTEGER",
	TypeFloat:     "FLOAT",
	TypeDecimal:   "DECIMAL",
	TypeDatetime:  "TIMESTAMP",
	TypeTimestamp: "TIMESTAMP",
	TypeTime:      "TIME",
	TypeDate:      "DATE",
	TypeBinary:    "BYTEA",
	TypeBoolean:   "BOOLEAN",
}

// PostgresSchemaGenerator renders PostgreSQL DDL.
type PostgresSchemaGenerator struct {
	escaper *querysqlgen.PostgresGenerator
}

// NewPostgresSchemaGenerator creates a new PostgreSQL schema generator.
func NewPostgresSchemaGenerator() *PostgresSchemaGenerator {
	return &PostgresSchemaGenerator{escaper: &querysqlgen.PostgresGenerator{}}
}

// ColumnDDL renders a column declaration. Fixed order: type, length
// limit, default, NOT NULL, trailing options.
func (g *PostgresSchemaGenerator) ColumnDDL(spec ColumnSpec) (string, error) {
	physical, ok := postgresTypes[spec.Type]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownColumnType, spec.Type)
	}

	ddl := spec.Name + " " + physical
	if spec.Limit > 0 {
		ddl += fmt.Sprintf("(%d)", spec.Limit)
	}
	if spec.Default != nil {
		value, err := g.escaper.EscapeValue(spec.Default)
		if err != nil {
			return "", err
		}
		ddl += " DEFAULT " + value
	}
	if spec.NotNull {
		ddl += " NOT NULL"
	}
	if spec.Options != "" {
		ddl += " " + spec.Options
	}
	return strings.TrimSpace(ddl), nil
}

// PrimaryKeyDDL renders an auto-incrementing primary key declaration.
func (g *PostgresSchemaGenerator) PrimaryKeyDDL(name, options, constraint, nextval string) string {
	ddl := fmt.Sprintf("%s SERIAL %s PRIMARY KEY %s %s", name, constraint, nextval, options)
	return strings.Join(strings.Fields(ddl), " ")
}

// CreateTableDDL renders a CREATE TABLE from pre-rendered column DDL.
func (g *PostgresSchemaGenerator) CreateTableDDL(name string, columns []string, options string) string {
	ddl := fmt.Sprintf("CREATE TABLE %s (%s) %s", name, strings.Join(columns, ", "), options)
	return strings.TrimSpace(ddl)
}

// DropTableDDL renders a DROP TABLE.
func (g *PostgresSchemaGenerator) DropTableDDL(name string) string {
	return "DROP TABLE " + name
}

// AddColumnDDL renders an ALTER TABLE ... ADD COLUMN.
func (g *PostgresSchemaGenerator) AddColumnDDL(table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, column)
}

// RemoveColumnDDL renders an ALTER TABLE ... DROP COLUMN.
func (g *PostgresSchemaGenerator) RemoveColumnDDL(table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, column)
}

// IndexName returns the conventional index name for a column.
func IndexName(table, column string) string {
	return fmt.Sprintf("%s_%s_idx", table, column)
}

// AddIndexDDL renders a CREATE INDEX.
func (g *PostgresSchemaGenerator) AddIndexDDL(table, column, name string, unique bool) string {
	if name == "" {
		name = IndexName(table, column)
	}
	kind := "INDEX"
	if unique {
		kind = "UNIQUE INDEX"
	}
	return fmt.Sprintf("CREATE %s %s ON %s (%s)", kind, name, table, column)
}

// RemoveIndexDDL renders a DROP INDEX.
func (g *PostgresSchemaGenerator) RemoveIndexDDL(table, column, name string) string {
	if name == "" {
		name = IndexName(table, column)
	}
	return "DROP INDEX " + name
}

// SequenceName returns the conventional sequence name for a column.
// Callers relying on hand-crafted names outside this convention must pass
// them explicitly; the convention is not enforced by the database.
func (g *PostgresSchemaGenerator) SequenceName(table, column string) string {
	return fmt.Sprintf("%s__seq_%s", table, column)
}

// CreateSequenceDDL renders a CREATE SEQUENCE.
func (g *PostgresSchemaGenerator) CreateSequenceDDL(table, column string) string {
	return "CREATE SEQUENCE " + g.SequenceName(table, column)
}

// RemoveSequenceDDL renders a DROP SEQUENCE.
func (g *PostgresSchemaGenerator) RemoveSequenceDDL(table, column, name string) string {
	if name == "" {
		name = g.SequenceName(table, column)
	}
	return "DROP SEQUENCE " + name
}

// AttachSequenceDDL renders an ALTER SEQUENCE ... OWNED BY so the
// sequence is dropped with its owning column.
func (g *PostgresSchemaGenerator) AttachSequenceDDL(table, column, sequence string) string {
	if sequence == "" {
		sequence = g.SequenceName(table, column)
	}
	return fmt.Sprintf("ALTER SEQUENCE %s OWNED BY %s.%s", sequence, table, column)
}
