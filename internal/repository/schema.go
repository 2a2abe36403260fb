package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS issues (
	id          TEXT PRIMARY KEY,
	project     TEXT NOT NULL,
	issue_title TEXT NOT NULL,
	issue_text  TEXT NOT NULL,
	created_by  TEXT NOT NULL,
	assigned_to TEXT NOT NULL DEFAULT '',
	status_text TEXT NOT NULL DEFAULT '',
	open        BOOLEAN NOT NULL DEFAULT TRUE,
	created_on  TIMESTAMPTZ NOT NULL,
	updated_on  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS issues_project_idx ON issues (project, created_on);
`

// modernc.org/sqlite only decodes DATETIME/TIMESTAMP declared columns back
// into time.Time.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS issues (
	id          TEXT PRIMARY KEY,
	project     TEXT NOT NULL,
	issue_title TEXT NOT NULL,
	issue_text  TEXT NOT NULL,
	created_by  TEXT NOT NULL,
	assigned_to TEXT NOT NULL DEFAULT '',
	status_text TEXT NOT NULL DEFAULT '',
	open        BOOLEAN NOT NULL DEFAULT 1,
	created_on  DATETIME NOT NULL,
	updated_on  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS issues_project_idx ON issues (project, created_on);
`

// EnsureSchema creates the issues table and its index if they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	ddl := postgresSchema
	if db.DriverName() == "sqlite" {
		ddl = sqliteSchema
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
