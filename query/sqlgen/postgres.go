package sqlgen

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/quarrydb/quarry/orm"
	"github.com/quarrydb/quarry/query"
)

// PostgresGenerator generates PostgreSQL SQL.
type PostgresGenerator struct{}

// Vestigial filler prefixes left behind by single-connector chains.
var (
	trueAndPrefix = regexp.MustCompile(`(?i)^TRUE AND `)
	falseOrPrefix = regexp.MustCompile(`(?i)^FALSE OR `)
)

// EscapeIdentifier quotes an identifier for PostgreSQL. Dotted paths
// (schema.table.column) are split and each segment quoted individually.
// Embedded double quotes are replaced with single quotes rather than
// doubled; this mirrors the adapter's historical behavior.
func (g *PostgresGenerator) EscapeIdentifier(name string) string {
	segments := strings.Split(name, ".")
	for i, s := range segments {
		segments[i] = `"` + strings.ReplaceAll(s, `"`, `'`) + `"`
	}
	return strings.Join(segments, ".")
}

// EscapeValue renders a value as a PostgreSQL literal. Numbers pass
// through unquoted; booleans become TRUE/FALSE; times are formatted as
// timestamp literals; everything string-like becomes an extended string
// literal (E'...') with backslashes and single quotes escaped.
func (g *PostgresGenerator) EscapeValue(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "NULL", nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t), nil
	case float32, float64:
		return fmt.Sprintf("%v", t), nil
	case bool:
		if t {
			return "TRUE", nil
		}
		return "FALSE", nil
	case time.Time:
		return escapeString(t.Format("2006-01-02 15:04:05.999999")), nil
	case string:
		return escapeString(t), nil
	case []byte:
		return escapeString(string(t)), nil
	case fmt.Stringer:
		return escapeString(t.String()), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValueType, v)
	}
}

// escapeString wraps s as an extended string literal.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "E'" + s + "'"
}

// GenerateSelect compiles the clause fragments in fixed order and collapses
// the result to single-space-separated SQL. The ordering is a correctness
// invariant (HAVING must follow GROUP BY).
func (g *PostgresGenerator) GenerateSelect(m orm.Model, q *query.Query, joins []query.Join) string {
	parts := []string{
		g.selectPart(m, q.Columns),
		"FROM " + g.EscapeIdentifier(m.TableName()),
		g.joinPart(joins),
		g.conditionPart("WHERE", q.Wheres),
		g.groupByPart(q.Groups),
		g.conditionPart("HAVING", q.Havings),
		g.orderByPart(m.TableName(), q.Orders),
		g.limitPart(q.Limit),
		g.offsetPart(q.Offset),
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// GenerateStore compiles an INSERT, UPSERT or UPDATE for the instance.
// Every statement returns the primary-key column so callers can recover
// generated identifiers.
func (g *PostgresGenerator) GenerateStore(m orm.Model, strategy ConflictStrategy) (string, error) {
	pk := m.PrimaryKey()

	if !m.Persisted() || strategy == ConflictUpdate {
		var cols, vals []string
		for _, f := range m.Fields() {
			if f == pk && !m.Persisted() {
				continue
			}
			v, err := g.EscapeValue(m.FieldValue(f))
			if err != nil {
				return "", err
			}
			cols = append(cols, g.EscapeIdentifier(f))
			vals = append(vals, v)
		}

		parts := []string{
			"INSERT INTO " + g.EscapeIdentifier(m.TableName()),
			"(" + strings.Join(cols, ", ") + ")",
			"VALUES (" + strings.Join(vals, ", ") + ")",
		}

		switch {
		case strategy == ConflictIgnore:
			parts = append(parts, "ON CONFLICT DO NOTHING")
		case strategy == ConflictUpdate && m.Persisted():
			set, err := g.updateAssignments(m)
			if err != nil {
				return "", err
			}
			parts = append(parts, "ON CONFLICT ("+g.EscapeIdentifier(pk)+") DO UPDATE SET "+set)
		}

		parts = append(parts, "RETURNING "+g.EscapeIdentifier(pk))
		return strings.Join(parts, " "), nil
	}

	set, err := g.updateAssignments(m)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = '%v' RETURNING %s",
		g.EscapeIdentifier(m.TableName()), set,
		g.EscapeIdentifier(pk), orm.PrimaryKeyValue(m),
		g.EscapeIdentifier(pk)), nil
}

// updateAssignments renders the SET list for UPDATE and DO UPDATE SET,
// excluding the primary key.
func (g *PostgresGenerator) updateAssignments(m orm.Model) (string, error) {
	pk := m.PrimaryKey()
	var assignments []string
	for _, f := range m.Fields() {
		if f == pk {
			continue
		}
		v, err := g.EscapeValue(m.FieldValue(f))
		if err != nil {
			return "", err
		}
		assignments = append(assignments, g.EscapeIdentifier(f)+" = "+v)
	}
	return strings.Join(assignments, ", "), nil
}

// GenerateDelete compiles a DELETE for a persisted instance. After a
// successful execution the caller resets the instance's identifier.
func (g *PostgresGenerator) GenerateDelete(m orm.Model) (string, error) {
	if !m.Persisted() {
		return "", ErrNotPersisted
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s = '%v'",
		g.EscapeIdentifier(m.TableName()),
		g.EscapeIdentifier(m.PrimaryKey()),
		orm.PrimaryKeyValue(m)), nil
}

// GenerateDeleteAll compiles a table-wide DELETE, or a TRUNCATE when
// truncate is set. restartIdentity and cascade only apply to TRUNCATE.
func (g *PostgresGenerator) GenerateDeleteAll(m orm.Model, truncate, restartIdentity, cascade bool) string {
	if !truncate {
		return "DELETE FROM " + g.EscapeIdentifier(m.TableName())
	}
	sql := "TRUNCATE " + g.EscapeIdentifier(m.TableName())
	if restartIdentity {
		sql += " RESTART IDENTITY"
	}
	if cascade {
		sql += " CASCADE"
	}
	return sql
}

// GenerateCount derives a counting query by appending a raw COUNT(*)
// column to a clone of q. The caller's query is never mutated.
func (g *PostgresGenerator) GenerateCount(m orm.Model, q *query.Query) string {
	counted := q.Clone().Select(query.Column{Name: "COUNT(*) AS " + CountAlias, Raw: true})
	return g.GenerateSelect(m, counted, nil)
}

// selectPart compiles the SELECT list. When the query names no columns,
// the model's persistable fields are selected, qualified by its table.
func (g *PostgresGenerator) selectPart(m orm.Model, cols []query.Column) string {
	if len(cols) == 0 {
		table := m.TableName()
		for _, f := range m.Fields() {
			cols = append(cols, query.Column{Table: table, Name: f})
		}
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = g.columnSQL(c)
	}
	return "SELECT " + strings.Join(parts, ", ")
}

// columnSQL renders one column reference. Raw columns contribute their
// text verbatim, without quoting or aliasing.
func (g *PostgresGenerator) columnSQL(c query.Column) string {
	if c.Raw {
		return c.Name
	}
	name := c.Name
	if c.Table != "" {
		name = c.Table + "." + name
	}
	sql := g.EscapeIdentifier(name)
	if c.Alias != "" {
		sql += " AS " + g.EscapeIdentifier(c.Alias)
	}
	return sql
}

// joinPart compiles join specs in declaration order.
func (g *PostgresGenerator) joinPart(joins []query.Join) string {
	if len(joins) == 0 {
		return ""
	}
	parts := make([]string, len(joins))
	for i, j := range joins {
		kind := strings.ToUpper(j.Type)
		if kind == "" {
			kind = "INNER"
		}
		parts[i] = fmt.Sprintf("%s JOIN %s ON %s", kind, g.EscapeIdentifier(j.Table), j.Condition)
	}
	return strings.Join(parts, " ")
}

// conditionPart compiles a WHERE or HAVING chain. The filler seed (TRUE
// for AND-chains, FALSE for OR-chains) keeps arbitrary connector
// sequences syntactically valid; the vestigial seed is collapsed out for
// the common single-connector case.
func (g *PostgresGenerator) conditionPart(keyword string, wheres []query.Where) string {
	if len(wheres) == 0 {
		return ""
	}
	filler := "TRUE"
	if wheres[0].Connector == query.ConnectorOr {
		filler = "FALSE"
	}
	var b strings.Builder
	b.WriteString(filler)
	for _, w := range wheres {
		b.WriteString(" ")
		b.WriteString(string(w.Connector))
		b.WriteString(" ")
		b.WriteString(w.Clause)
	}
	clause := trueAndPrefix.ReplaceAllString(b.String(), "")
	clause = falseOrPrefix.ReplaceAllString(clause, "")
	return keyword + " " + clause
}

// groupByPart compiles the GROUP BY list.
func (g *PostgresGenerator) groupByPart(cols []query.Column) string {
	if len(cols) == 0 {
		return ""
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = g.columnSQL(c)
	}
	return "GROUP BY " + strings.Join(parts, ", ")
}

// orderByPart compiles order specs, qualifying unqualified columns
// against the query's primary table.
func (g *PostgresGenerator) orderByPart(table string, orders []query.Order) string {
	if len(orders) == 0 {
		return ""
	}
	parts := make([]string, len(orders))
	for i, o := range orders {
		col := o.Column
		if !col.Raw && col.Table == "" {
			col.Table = table
		}
		parts[i] = g.columnSQL(col) + " " + string(o.Direction)
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// limitPart emits nothing for the ALL sentinel.
func (g *PostgresGenerator) limitPart(l query.Limit) string {
	if l.All {
		return ""
	}
	return fmt.Sprintf("LIMIT %d", l.Count)
}

// offsetPart emits nothing for a zero offset.
func (g *PostgresGenerator) offsetPart(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("OFFSET %d", n)
}
