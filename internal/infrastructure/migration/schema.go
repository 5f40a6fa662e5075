package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// DBTX is satisfied by *sql.DB, *sql.Tx and *sql.Conn
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const columnExistsQuery = `SELECT EXISTS (
	SELECT 1 FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
)`

// ColumnExists reports whether table has column in the current schema
func ColumnExists(ctx context.Context, db DBTX, table, column string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, columnExistsQuery, table, column).Scan(&exists); err != nil {
		return false, fmt.Errorf("check column %s.%s: %w", table, column, err)
	}
	return exists, nil
}

// EnsureColumn adds column to table unless it is already there. It returns
// true when the column was added. definition is the column type and
// constraints, e.g. "VARCHAR(11) NOT NULL DEFAULT ''".
func EnsureColumn(ctx context.Context, db DBTX, table, column, definition string) (bool, error) {
	definition = strings.TrimSpace(definition)
	if table == "" || column == "" {
		return false, fmt.Errorf("table and column are required")
	}
	if definition == "" || strings.ContainsAny(definition, ";") || strings.Contains(definition, "--") {
		return false, fmt.Errorf("invalid column definition %q", definition)
	}

	exists, err := ColumnExists(ctx, db, table, column)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(column), definition)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return false, fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return true, nil
}
