package domain

import "time"

// Link is a stored "read it later" entry. Rows are append-only: once
// inserted they are never updated or deleted.
type Link struct {
	ID      int64     `db:"id" json:"id"`
	Title   *string   `db:"title" json:"title,omitempty"`
	Link    string    `db:"link" json:"link"`
	PubDate time.Time `db:"pub_date" json:"pub_date"`
}

// Submission is a candidate link as received from a client. PubDate is
// optional; when nil the server assigns the submission wall-clock time.
type Submission struct {
	Title   *string
	Link    string
	PubDate *time.Time
}
