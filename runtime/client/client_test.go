package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDriverName(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"postgresql", "postgres"},
		{"postgres", "postgres"},
		{"mysql", "mysql"},
		{"sqlite", "sqlite3"},
		{"oracle", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, getDriverName(tt.provider))
	}
}

func TestNewClientUnsupportedProvider(t *testing.T) {
	_, err := NewClient("oracle", "dsn")
	assert.Error(t, err)
}

func TestWrapBackendErrorPostgres(t *testing.T) {
	pqErr := &pq.Error{Code: "42P01", Message: "relation \"missing\" does not exist"}

	err := wrapBackendError(fmt.Errorf("query failed: %w", pqErr))

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "42P01", execErr.Code)
	assert.Contains(t, execErr.Message, "does not exist")
	assert.ErrorIs(t, err, pqErr)
}

func TestWrapBackendErrorMySQL(t *testing.T) {
	myErr := &mysql.MySQLError{Number: 1146, Message: "table doesn't exist"}

	err := wrapBackendError(myErr)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "1146", execErr.Code)
}

func TestWrapBackendErrorGeneric(t *testing.T) {
	err := wrapBackendError(errors.New("broken pipe"))

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Empty(t, execErr.Code)
	assert.Equal(t, "database error: broken pipe", execErr.Error())
}

func TestExecutionErrorFormatting(t *testing.T) {
	withCode := &ExecutionError{Message: "boom", Code: "23505"}
	assert.Equal(t, "database error 23505: boom", withCode.Error())

	bare := &ExecutionError{Message: "boom"}
	assert.Equal(t, "database error: boom", bare.Error())
}

func TestExecuteAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	c, err := NewClient("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, c.Connect(ctx))
	defer c.Disconnect(ctx)

	_, err = c.Execute(ctx, "CREATE TABLE books (id INTEGER PRIMARY KEY, title TEXT)", true)
	require.NoError(t, err)
	_, err = c.Execute(ctx, "INSERT INTO books (title) VALUES ('Go')", false)
	require.NoError(t, err)

	res, err := c.Execute(ctx, "SELECT title FROM books", false)
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount())
	assert.Equal(t, []string{"title"}, res.Columns)

	title := res.First()["title"]
	switch v := title.(type) {
	case string:
		assert.Equal(t, "Go", v)
	case []byte:
		assert.Equal(t, "Go", string(v))
	default:
		t.Fatalf("unexpected title type %T", title)
	}
}

func TestExecuteSurfacesBackendErrors(t *testing.T) {
	ctx := context.Background()
	c, err := NewClient("sqlite", ":memory:")
	require.NoError(t, err)
	defer c.Disconnect(ctx)

	_, err = c.Execute(ctx, "SELECT * FROM missing", true)
	require.Error(t, err)

	var execErr *ExecutionError
	assert.ErrorAs(t, err, &execErr)
}

func TestPoolCurrent(t *testing.T) {
	p := NewPool()

	_, err := p.Current()
	assert.ErrorIs(t, err, ErrNotConnected)

	first, err := NewClient("sqlite", ":memory:")
	require.NoError(t, err)
	second, err := NewClient("sqlite", ":memory:")
	require.NoError(t, err)

	p.Add(first)
	p.Add(second)

	current, err := p.Current()
	require.NoError(t, err)
	assert.Same(t, second, current)

	require.NoError(t, p.Disconnect(context.Background(), second))
	current, err = p.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)

	require.NoError(t, p.Close(context.Background()))
	_, err = p.Current()
	assert.ErrorIs(t, err, ErrNotConnected)
}
