// Package storage persists link records behind a sqlx connection pool. It
// supports a local SQLite file (the default) and PostgreSQL, selected from
// the database URL.
package storage

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver registration
	_ "modernc.org/sqlite" // sqlite driver registration

	"zapit/migrations"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know;
	// teach it the placeholder style.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DriverName picks the database/sql driver for a database URL. PostgreSQL
// connection strings (URL or key=value form) map to lib/pq, everything
// else is treated as a SQLite file reference.
func DriverName(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgres://") ||
		strings.HasPrefix(databaseURL, "postgresql://") ||
		strings.Contains(databaseURL, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// Open connects to the store, verifies the connection, and brings the
// schema up to date. The returned pool is shared process-wide.
func Open(databaseURL string) (*sqlx.DB, error) {
	driver := DriverName(databaseURL)

	dsn := databaseURL
	if driver == "sqlite" {
		// Accept the "sqlite:db.sqlite" spelling used by connection URLs.
		dsn = strings.TrimPrefix(dsn, "sqlite:")
		// The pragmas ride on the DSN so they apply to every pooled
		// connection: WAL for concurrent readers, busy_timeout so
		// concurrent writers wait for the lock instead of failing.
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to %q: %w", databaseURL, err)
	}

	if err := migrations.Run(db.DB, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
