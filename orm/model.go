// Package orm defines the model reflection contract consumed by the
// SQL generators. How a model type produces its table name, field list
// and field values is up to the caller; the generators only see this
// interface.
package orm

// Model describes a persistable type.
type Model interface {
	// TableName returns the database table backing the model.
	TableName() string

	// PrimaryKey returns the name of the primary-key field.
	PrimaryKey() string

	// Fields returns the ordered persistable field names, including the
	// primary key.
	Fields() []string

	// FieldValue returns the current value of the named field.
	FieldValue(name string) interface{}

	// Persisted reports whether the instance has an assigned identifier.
	Persisted() bool
}

// PrimaryKeyValue returns the model's current primary-key value.
func PrimaryKeyValue(m Model) interface{} {
	return m.FieldValue(m.PrimaryKey())
}
