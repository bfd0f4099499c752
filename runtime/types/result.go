// Package types provides runtime result types shared across quarry.
package types

// Result represents a tabular query result.
type Result struct {
	Columns []string
	Rows    []map[string]interface{}
}

// RowCount returns the number of rows in the result.
func (r *Result) RowCount() int {
	return len(r.Rows)
}

// First returns the first row, or nil when the result is empty.
func (r *Result) First() map[string]interface{} {
	if len(r.Rows) == 0 {
		return nil
	}
	return r.Rows[0]
}
