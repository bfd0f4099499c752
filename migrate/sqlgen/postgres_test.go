package sqlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnDDLOrdering(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	ddl, err := g.ColumnDDL(ColumnSpec{Name: "title", Type: TypeString, Limit: 255, NotNull: true})
	require.NoError(t, err)

	assert.Equal(t, "title VARCHAR(255) NOT NULL", ddl)

	varcharIdx := strings.Index(ddl, "VARCHAR")
	limitIdx := strings.Index(ddl, "(255)")
	notNullIdx := strings.Index(ddl, "NOT NULL")
	assert.True(t, varcharIdx < limitIdx && limitIdx < notNullIdx)
}

func TestColumnDDLVariants(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	tests := []struct {
		name string
		spec ColumnSpec
		want string
	}{
		{"bare text", ColumnSpec{Name: "body", Type: TypeText}, "body TEXT"},
		{"integer with default", ColumnSpec{Name: "count", Type: TypeInteger, Default: 0}, "count INTEGER DEFAULT 0"},
		{"string default escaped", ColumnSpec{Name: "status", Type: TypeString, Default: "draft"}, "status VARCHAR DEFAULT E'draft'"},
		{"boolean default", ColumnSpec{Name: "active", Type: TypeBoolean, Default: true}, "active BOOLEAN DEFAULT TRUE"},
		{"trailing options", ColumnSpec{Name: "email", Type: TypeString, Options: "UNIQUE"}, "email VARCHAR UNIQUE"},
		{"binary", ColumnSpec{Name: "data", Type: TypeBinary}, "data BYTEA"},
		{"datetime", ColumnSpec{Name: "created_at", Type: TypeDatetime}, "created_at TIMESTAMP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ddl, err := g.ColumnDDL(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ddl)
		})
	}
}

func TestColumnDDLUnknownType(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	_, err := g.ColumnDDL(ColumnSpec{Name: "x", Type: ColumnType("uuid")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownColumnType)
}

func TestPrimaryKeyDDL(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	assert.Equal(t, "id SERIAL PRIMARY KEY", g.PrimaryKeyDDL("id", "", "", ""))
	assert.Equal(t, "id SERIAL CONSTRAINT books_pk PRIMARY KEY", g.PrimaryKeyDDL("id", "", "CONSTRAINT books_pk", ""))
}

func TestCreateTableDDL(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	ddl := g.CreateTableDDL("books", []string{"id SERIAL PRIMARY KEY", "title VARCHAR(255) NOT NULL"}, "")

	assert.Equal(t, "CREATE TABLE books (id SERIAL PRIMARY KEY, title VARCHAR(255) NOT NULL)", ddl)
}

func TestDropTableDDL(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	assert.Equal(t, "DROP TABLE books", g.DropTableDDL("books"))
}

func TestAlterColumnDDL(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	assert.Equal(t, "ALTER TABLE books ADD COLUMN isbn VARCHAR(13)", g.AddColumnDDL("books", "isbn VARCHAR(13)"))
	assert.Equal(t, "ALTER TABLE books DROP COLUMN isbn", g.RemoveColumnDDL("books", "isbn"))
}

func TestIndexDDL(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	t.Run("conventional name", func(t *testing.T) {
		assert.Equal(t, "CREATE INDEX books_title_idx ON books (title)", g.AddIndexDDL("books", "title", "", false))
	})
	t.Run("unique", func(t *testing.T) {
		assert.Equal(t, "CREATE UNIQUE INDEX books_isbn_idx ON books (isbn)", g.AddIndexDDL("books", "isbn", "", true))
	})
	t.Run("explicit name", func(t *testing.T) {
		assert.Equal(t, "CREATE INDEX idx_custom ON books (title)", g.AddIndexDDL("books", "title", "idx_custom", false))
	})
	t.Run("remove by convention", func(t *testing.T) {
		assert.Equal(t, "DROP INDEX books_title_idx", g.RemoveIndexDDL("books", "title", ""))
	})
	t.Run("remove by name", func(t *testing.T) {
		assert.Equal(t, "DROP INDEX idx_custom", g.RemoveIndexDDL("", "", "idx_custom"))
	})
}

func TestSequenceDDL(t *testing.T) {
	g := NewPostgresSchemaGenerator()

	assert.Equal(t, "books__seq_id", g.SequenceName("books", "id"))
	assert.Equal(t, "CREATE SEQUENCE books__seq_id", g.CreateSequenceDDL("books", "id"))
	assert.Equal(t, "DROP SEQUENCE books__seq_id", g.RemoveSequenceDDL("books", "id", ""))
	assert.Equal(t, "DROP SEQUENCE legacy_seq", g.RemoveSequenceDDL("books", "id", "legacy_seq"))
	assert.Equal(t, "ALTER SEQUENCE books__seq_id OWNED BY books.id", g.AttachSequenceDDL("books", "id", ""))
}

func TestNewSchemaGenerator(t *testing.T) {
	g, err := NewSchemaGenerator("postgres")
	require.NoError(t, err)
	assert.IsType(t, &PostgresSchemaGenerator{}, g)

	_, err = NewSchemaGenerator("oracle")
	assert.Error(t, err)
}
