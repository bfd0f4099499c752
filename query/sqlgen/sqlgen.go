// Package sqlgen generates SQL text for different database providers.
package sqlgen

import (
	"github.com/quarrydb/quarry/orm"
	"github.com/quarrydb/quarry/query"
)

// CountAlias is the synthetic column alias used by GenerateCount. Callers
// read the single resulting row's CountAlias field.
const CountAlias = "__cid"

// ConflictStrategy governs INSERT behavior when a row violates a
// uniqueness constraint.
type ConflictStrategy string

const (
	ConflictError  ConflictStrategy = "error"
	ConflictIgnore ConflictStrategy = "ignore"
	ConflictUpdate ConflictStrategy = "update"
)

// Generator generates SQL for a specific provider.
// Generators are stateless and safe for concurrent use.
type Generator interface {
	// EscapeIdentifier renders an identifier (optionally a dotted path)
	// as dialect-safe quoted text.
	EscapeIdentifier(name string) string

	// EscapeValue renders a scalar value as a dialect-safe SQL literal.
	EscapeValue(v interface{}) (string, error)

	// GenerateSelect compiles a SELECT statement for the model's table.
	GenerateSelect(m orm.Model, q *query.Query, joins []query.Join) string

	// GenerateStore compiles an INSERT, UPSERT or UPDATE for the instance,
	// always returning the generated primary key.
	GenerateStore(m orm.Model, strategy ConflictStrategy) (string, error)

	// GenerateDelete compiles a DELETE for a persisted instance.
	GenerateDelete(m orm.Model) (string, error)

	// GenerateDeleteAll compiles a table-wide DELETE or TRUNCATE.
	GenerateDeleteAll(m orm.Model, truncate, restartIdentity, cascade bool) string

	// GenerateCount compiles a COUNT(*) query derived from q without
	// mutating it.
	GenerateCount(m orm.Model, q *query.Query) string
}

// NewGenerator creates a new SQL generator for the given provider.
func NewGenerator(provider string) Generator {
	switch provider {
	case "postgresql", "postgres":
		return &PostgresGenerator{}
	default:
		return &PostgresGenerator{} // default to postgres
	}
}
