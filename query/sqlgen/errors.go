package sqlgen

import "errors"

var (
	// ErrUnsupportedValueType is returned when the escaper cannot render
	// a value as a SQL literal.
	ErrUnsupportedValueType = errors.New("unsupported value type")

	// ErrNotPersisted is returned when a delete or update is requested
	// for an instance without an assigned identifier.
	ErrNotPersisted = errors.New("instance has not been persisted")
)
