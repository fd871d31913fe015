package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gorilla/feeds"
)

// RSS 2.0 specification, if you need it:
// https://www.rssboard.org/rss-draft-1
const (
	feedTitle       = "Aldur's ZapIt ⚡"
	feedDescription = "Web link to an RSS feed."
	feedImageTitle  = "Link icon"
	feedImageFile   = "link-solid.png"
	assetsPath      = "assets"

	// feedLimit caps the rendered feed at the most recent entries.
	feedLimit = 50
)

// FeedService renders stored links as an RSS 2.0 document.
type FeedService struct {
	links  LinkStore
	domain string
	logger *slog.Logger
}

func NewFeedService(links LinkStore, domain string, logger *slog.Logger) *FeedService {
	return &FeedService{
		links:  links,
		domain: domain,
		logger: logger,
	}
}

// Render reads the most recent records and materializes the feed document.
// It never mutates the store and emits all-or-nothing: a read failure
// yields no document.
func (s *FeedService) Render(ctx context.Context) (string, error) {
	records, err := s.links.ListRecent(ctx, feedLimit)
	if err != nil {
		return "", err
	}

	feed := &feeds.Feed{
		Title:       feedTitle,
		Link:        &feeds.Link{Href: s.domain},
		Description: feedDescription,
		Image: &feeds.Image{
			Url:   fmt.Sprintf("%s/%s/%s", s.domain, assetsPath, feedImageFile),
			Title: feedImageTitle,
			Link:  s.domain,
		},
	}

	for _, rec := range records {
		item := &feeds.Item{
			Link:    &feeds.Link{Href: rec.Link},
			Created: rec.PubDate,
		}
		if rec.Title != nil {
			item.Title = *rec.Title
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("render feed: %w", err)
	}

	s.logger.Debug("rendered feed", "entries", len(records))

	return rss, nil
}
