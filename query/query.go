// Package query provides the backend-agnostic query representation
// compiled into dialect-specific SQL by query/sqlgen.
package query

// Connector joins a where/having fragment to the fragment that follows it.
type Connector string

const (
	ConnectorAnd Connector = "AND"
	ConnectorOr  Connector = "OR"
)

// Direction is an ORDER BY direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Column is a column reference.
// A raw column's name is emitted verbatim (used for expressions such as
// COUNT(*) or random()); a non-raw column's name and table qualifier are
// always individually quoted.
type Column struct {
	Table string
	Name  string
	Alias string
	Raw   bool
}

// Where is a predicate fragment plus the connector joining it to the
// following fragment.
type Where struct {
	Clause    string
	Connector Connector
}

// Order is a column reference plus a direction. Columns without a table
// qualifier are qualified against the query's primary table at compile time.
type Order struct {
	Column    Column
	Direction Direction
}

// Limit holds either a positive row count or the ALL sentinel, which
// emits no LIMIT clause.
type Limit struct {
	Count int
	All   bool
}

// LimitAll returns the sentinel limit that emits no LIMIT clause.
func LimitAll() Limit {
	return Limit{All: true}
}

// NewLimit returns a limit of n rows.
func NewLimit(n int) Limit {
	return Limit{Count: n}
}

// Join represents a JOIN clause.
type Join struct {
	Table     string
	Type      string // "INNER", "LEFT", "RIGHT"
	Condition string // join predicate, e.g. "posts.author_id = users.id"
}

// Query is an ordered aggregate of columns, filters, grouping, ordering
// and paging. It is built once per request and treated as immutable during
// compilation; compilers that need to add synthetic columns work on a Clone.
type Query struct {
	Columns []Column
	Wheres  []Where
	Groups  []Column
	Havings []Where
	Orders  []Order
	Limit   Limit
	Offset  int
}

// New creates an empty query with no limit and no offset.
func New() *Query {
	return &Query{Limit: LimitAll()}
}

// Select adds columns to the SELECT list.
func (q *Query) Select(cols ...Column) *Query {
	q.Columns = append(q.Columns, cols...)
	return q
}

// Where adds a predicate fragment joined by the given connector.
func (q *Query) Where(clause string, connector Connector) *Query {
	q.Wheres = append(q.Wheres, Where{Clause: clause, Connector: connector})
	return q
}

// GroupBy adds grouping columns.
func (q *Query) GroupBy(cols ...Column) *Query {
	q.Groups = append(q.Groups, cols...)
	return q
}

// Having adds a having fragment joined by the given connector.
func (q *Query) Having(clause string, connector Connector) *Query {
	q.Havings = append(q.Havings, Where{Clause: clause, Connector: connector})
	return q
}

// OrderBy adds an order spec.
func (q *Query) OrderBy(col Column, dir Direction) *Query {
	q.Orders = append(q.Orders, Order{Column: col, Direction: dir})
	return q
}

// WithLimit sets the limit.
func (q *Query) WithLimit(l Limit) *Query {
	q.Limit = l
	return q
}

// WithOffset sets the offset. Zero emits no OFFSET clause.
func (q *Query) WithOffset(n int) *Query {
	q.Offset = n
	return q
}

// Clone returns a deep copy of the query. Compilers derive new queries
// from clones so the caller's query is never mutated.
func (q *Query) Clone() *Query {
	return &Query{
		Columns: append([]Column(nil), q.Columns...),
		Wheres:  append([]Where(nil), q.Wheres...),
		Groups:  append([]Column(nil), q.Groups...),
		Havings: append([]Where(nil), q.Havings...),
		Orders:  append([]Order(nil), q.Orders...),
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
}
