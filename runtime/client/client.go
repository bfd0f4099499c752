// Package client provides the execution gateway: it runs compiled SQL
// against a live connection and surfaces structured errors.
package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/quarrydb/quarry/internal/debug"
	"github.com/quarrydb/quarry/runtime/types"
)

// ExecutionError is a structured backend failure carrying the backend's
// message and error code.
type ExecutionError struct {
	Message string
	Code    string
	Err     error
}

func (e *ExecutionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("database error %s: %s", e.Code, e.Message)
	}
	return "database error: " + e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Client is a database connection handle. The compilers never hold one;
// they only produce SQL text executed through Execute.
type Client struct {
	db         *sql.DB
	provider   string
	logQueries bool
}

// NewClient opens a client for the given provider and connection string.
func NewClient(provider, connectionString string) (*Client, error) {
	driverName := getDriverName(provider)
	if driverName == "" {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	db, err := sql.Open(driverName, connectionString)
	if err != nil {
		return nil, err
	}

	return &Client{db: db, provider: provider}, nil
}

// NewClientFromDB wraps an existing database connection.
func NewClientFromDB(provider string, db *sql.DB) *Client {
	return &Client{db: db, provider: provider}
}

// getDriverName maps provider names to Go database driver names.
func getDriverName(provider string) string {
	switch provider {
	case "postgresql", "postgres":
		return "postgres"
	case "mysql":
		return "mysql"
	case "sqlite":
		return "sqlite3"
	default:
		return ""
	}
}

// Provider returns the provider name the client was opened with.
func (c *Client) Provider() string {
	return c.provider
}

// DB returns the underlying database connection.
func (c *Client) DB() *sql.DB {
	return c.db
}

// SetLogQueries toggles statement logging for non-internal queries.
func (c *Client) SetLogQueries(enabled bool) {
	c.logQueries = enabled
}

// Connect establishes the database connection.
func (c *Client) Connect(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Disconnect closes the database connection.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.db.Close()
}

// Execute runs a compiled statement and materializes the result. The
// internal flag suppresses query logging; it is used for the compiler's
// own introspection queries. Backend failures are returned as
// *ExecutionError, never as a silent empty result.
func (c *Client) Execute(ctx context.Context, sqlText string, internal bool) (*types.Result, error) {
	start := time.Now()
	rows, err := c.db.QueryContext(ctx, sqlText)
	if !internal && c.logQueries {
		debug.Query(sqlText, time.Since(start))
	}
	if err != nil {
		return nil, wrapBackendError(err)
	}
	defer rows.Close()

	return scanResult(rows)
}

// wrapBackendError converts a driver error into a structured
// ExecutionError, extracting the backend code where the driver exposes one.
func wrapBackendError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &ExecutionError{Message: pqErr.Message, Code: string(pqErr.Code), Err: err}
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return &ExecutionError{Message: myErr.Message, Code: strconv.Itoa(int(myErr.Number)), Err: err}
	}
	return &ExecutionError{Message: err.Error(), Err: err}
}

// scanResult materializes rows into a tabular result.
func scanResult(rows *sql.Rows) (*types.Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, wrapBackendError(err)
	}

	result := &types.Result{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, wrapBackendError(err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapBackendError(err)
	}
	return result, nil
}
