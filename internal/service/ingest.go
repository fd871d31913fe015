package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"zapit/internal/domain"
)

// IngestService validates and stores submitted links.
type IngestService struct {
	links     LinkStore
	publisher Publisher
	logger    *slog.Logger
}

// NewIngestService creates an ingest service. publisher may be nil, in
// which case accepted submissions are not announced.
func NewIngestService(links LinkStore, publisher Publisher, logger *slog.Logger) *IngestService {
	return &IngestService{
		links:     links,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit validates the candidate, stores it, and returns the assigned id.
// Validation happens before any store access; on any failure zero rows are
// written. When the submission omits pub_date, the current UTC wall clock
// is assigned, computed fresh per call.
func (s *IngestService) Submit(ctx context.Context, sub domain.Submission) (int64, error) {
	if err := validateLink(sub.Link); err != nil {
		return 0, err
	}

	pubDate := time.Now().UTC()
	if sub.PubDate != nil {
		pubDate = sub.PubDate.UTC()
	}

	link := &domain.Link{
		Title:   sub.Title,
		Link:    sub.Link,
		PubDate: pubDate,
	}

	id, err := s.links.Insert(ctx, link)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateLink) {
			s.logger.Info("duplicate link rejected", "link", sub.Link)
		}
		return 0, err
	}
	link.ID = id

	// The row is already durable; a publish failure must not fail the
	// submission.
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, link); err != nil {
			s.logger.Error("failed to publish link event", "id", id, "error", err)
		}
	}

	s.logger.Info("link stored", "id", id, "link", sub.Link)

	return id, nil
}

func validateLink(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &domain.ValidationError{Field: "link", Reason: err.Error()}
	}
	if !u.IsAbs() || u.Host == "" {
		return &domain.ValidationError{Field: "link", Reason: "must be an absolute URL"}
	}
	return nil
}
