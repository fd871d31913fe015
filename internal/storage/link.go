package storage

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"zapit/internal/domain"
)

// uniqueViolation is the lib/pq code for unique constraint violations.
const uniqueViolation = "23505"

type LinkStore struct {
	db *sqlx.DB
}

func NewLinkStore(db *sqlx.DB) *LinkStore {
	return &LinkStore{db: db}
}

// Insert appends one link record and returns the store-assigned id. A
// unique violation on the link column is reported as
// domain.ErrDuplicateLink; any other failure as a *domain.StoreError.
func (s *LinkStore) Insert(ctx context.Context, link *domain.Link) (int64, error) {
	query := s.db.Rebind(`INSERT INTO links (title, link, pub_date) VALUES (?, ?, ?) RETURNING id`)

	var id int64
	err := s.db.QueryRowxContext(ctx, query, link.Title, link.Link, link.PubDate.UTC()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateLink
		}
		return 0, &domain.StoreError{Op: "insert link", Err: err}
	}

	return id, nil
}

// ListRecent returns up to limit records, most recently published first.
// Ties in pub_date break by id descending so the order is stable.
func (s *LinkStore) ListRecent(ctx context.Context, limit int) ([]domain.Link, error) {
	query := s.db.Rebind(`
		SELECT id, title, link, pub_date
		FROM links
		ORDER BY pub_date DESC, id DESC
		LIMIT ?`)

	var links []domain.Link
	if err := s.db.SelectContext(ctx, &links, query, limit); err != nil {
		return nil, &domain.StoreError{Op: "list recent links", Err: err}
	}

	return links, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
