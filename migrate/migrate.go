// Package migrate applies SQL migration files from a folder and records
// them in the migrations table.
package migrate

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/quarrydb/quarry/internal/debug"
	"github.com/quarrydb/quarry/migrate/history"
)

// Engine applies pending migrations in lexicographic version order.
type Engine struct {
	fs      afero.Fs
	dir     string
	conn    history.Conn
	history *history.Manager
}

// NewEngine creates a migration engine reading .sql files from dir and
// tracking applied versions in the named migrations table.
func NewEngine(conn history.Conn, fs afero.Fs, dir, table string) *Engine {
	return &Engine{
		fs:      fs,
		dir:     dir,
		conn:    conn,
		history: history.NewManager(conn, table),
	}
}

// History returns the underlying history manager.
func (e *Engine) History() *history.Manager {
	return e.history
}

// Available lists migration versions found in the folder, sorted. The
// version is the file name without the .sql extension.
func (e *Engine) Available() ([]string, error) {
	infos, err := afero.ReadDir(e.fs, e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations folder %s: %w", e.dir, err)
	}

	var versions []string
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".sql") {
			continue
		}
		versions = append(versions, strings.TrimSuffix(info.Name(), ".sql"))
	}
	sort.Strings(versions)
	return versions, nil
}

// Apply runs all pending migrations and returns the versions applied.
// The migrations table is created first when missing.
func (e *Engine) Apply(ctx context.Context) ([]string, error) {
	if err := e.history.EnsureTable(ctx); err != nil {
		return nil, err
	}

	available, err := e.Available()
	if err != nil {
		return nil, err
	}
	pending, err := e.history.Pending(ctx, available)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, version := range pending {
		if err := e.run(ctx, version); err != nil {
			return applied, fmt.Errorf("migration %s failed: %w", version, err)
		}
		if err := e.history.Record(ctx, version); err != nil {
			return applied, err
		}
		applied = append(applied, version)
		debug.Info("migration applied", "version", version)
	}
	return applied, nil
}

// Status returns the applied and pending migration versions.
func (e *Engine) Status(ctx context.Context) (applied, pending []string, err error) {
	if err := e.history.EnsureTable(ctx); err != nil {
		return nil, nil, err
	}
	available, err := e.Available()
	if err != nil {
		return nil, nil, err
	}
	applied, err = e.history.Applied(ctx)
	if err != nil {
		return nil, nil, err
	}
	pending, err = e.history.Pending(ctx, available)
	if err != nil {
		return nil, nil, err
	}
	return applied, pending, nil
}

// Reset drops the migrations table, forgetting all applied versions.
// The schema itself is left untouched.
func (e *Engine) Reset(ctx context.Context) error {
	return e.history.DropTable(ctx)
}

// run executes one migration file statement by statement.
func (e *Engine) run(ctx context.Context, version string) error {
	path := filepath.Join(e.dir, version+".sql")
	content, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, stmt := range splitStatements(string(content)) {
		if _, err := e.conn.Execute(ctx, stmt, false); err != nil {
			return err
		}
	}
	return nil
}

// splitStatements splits a migration file into individual statements.
// Statement-level splitting keeps drivers that reject multi-command
// prepared statements working.
func splitStatements(content string) []string {
	var statements []string
	for _, stmt := range strings.Split(content, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
