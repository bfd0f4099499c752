// Package history manages the migrations bookkeeping table.
package history

import (
	"context"
	"fmt"

	"github.com/quarrydb/quarry/internal/debug"
	querysqlgen "github.com/quarrydb/quarry/query/sqlgen"
	"github.com/quarrydb/quarry/runtime/types"
)

// Conn executes compiled SQL against a live connection. The internal flag
// suppresses query logging for bookkeeping and introspection statements.
type Conn interface {
	Execute(ctx context.Context, sql string, internal bool) (*types.Result, error)
}

// Manager manages the migrations table: a single unique version column,
// one row per applied migration.
type Manager struct {
	conn    Conn
	table   string
	escaper *querysqlgen.PostgresGenerator
}

// NewManager creates a new migration history manager.
func NewManager(conn Conn, table string) *Manager {
	return &Manager{
		conn:    conn,
		table:   table,
		escaper: &querysqlgen.PostgresGenerator{},
	}
}

// Table returns the migrations table name.
func (m *Manager) Table() string {
	return m.table
}

// TableExists checks for the migrations table via information_schema.
func (m *Manager) TableExists(ctx context.Context) (bool, error) {
	name, err := m.escaper.EscapeValue(m.table)
	if err != nil {
		return false, err
	}
	sql := fmt.Sprintf("SELECT table_name FROM information_schema.tables WHERE table_name = %s", name)
	res, err := m.conn.Execute(ctx, sql, true)
	if err != nil {
		return false, fmt.Errorf("failed to check migrations table: %w", err)
	}
	return res.RowCount() > 0, nil
}

// EnsureTable creates the migrations table when it does not exist yet.
// Calling it against an existing table is a no-op.
func (m *Manager) EnsureTable(ctx context.Context) error {
	exists, err := m.TableExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		debug.Info("migrations table already exists", "table", m.table)
		return nil
	}
	sql := fmt.Sprintf("CREATE TABLE %s (version VARCHAR(255) UNIQUE)", m.table)
	if _, err := m.conn.Execute(ctx, sql, true); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// DropTable drops the migrations table when it exists. Calling it when
// the table is already absent is a no-op.
func (m *Manager) DropTable(ctx context.Context) error {
	exists, err := m.TableExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		debug.Info("migrations table already absent", "table", m.table)
		return nil
	}
	if _, err := m.conn.Execute(ctx, "DROP TABLE "+m.table, true); err != nil {
		return fmt.Errorf("failed to drop migrations table: %w", err)
	}
	return nil
}

// Record records an applied migration version.
func (m *Manager) Record(ctx context.Context, version string) error {
	value, err := m.escaper.EscapeValue(version)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf("INSERT INTO %s (version) VALUES (%s)", m.table, value)
	if _, err := m.conn.Execute(ctx, sql, true); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", version, err)
	}
	return nil
}

// Remove deletes a recorded migration version.
func (m *Manager) Remove(ctx context.Context, version string) error {
	value, err := m.escaper.EscapeValue(version)
	if err != nil {
		return err
	}
	sql := fmt.Sprintf("DELETE FROM %s WHERE version = %s", m.table, value)
	if _, err := m.conn.Execute(ctx, sql, true); err != nil {
		return fmt.Errorf("failed to remove migration %s: %w", version, err)
	}
	return nil
}

// Applied returns the versions of all applied migrations.
func (m *Manager) Applied(ctx context.Context) ([]string, error) {
	sql := fmt.Sprintf("SELECT version FROM %s", m.table)
	res, err := m.conn.Execute(ctx, sql, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}

	var versions []string
	for _, row := range res.Rows {
		switch v := row["version"].(type) {
		case string:
			versions = append(versions, v)
		case []byte:
			versions = append(versions, string(v))
		}
	}
	return versions, nil
}

// Pending returns the available migrations that have not been applied,
// preserving their order.
func (m *Manager) Pending(ctx context.Context, available []string) ([]string, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}

	appliedMap := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedMap[v] = true
	}

	var pending []string
	for _, v := range available {
		if !appliedMap[v] {
			pending = append(pending, v)
		}
	}
	return pending, nil
}
