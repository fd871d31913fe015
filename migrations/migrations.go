// Package migrations embeds the SQL schema migrations and applies the set
// matching the active database driver.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// FS contains the embedded SQL migration files, one directory per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Run applies all pending migrations for the given driver ("sqlite" or
// "postgres") to the database.
func Run(db *sql.DB, driver string) error {
	goose.SetBaseFS(FS)

	dialect, dir := "sqlite3", "sqlite"
	if driver == "postgres" {
		dialect, dir = "postgres", "postgres"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
