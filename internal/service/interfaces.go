package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"zapit/internal/domain"
)

type LinkStore interface {
	Insert(ctx context.Context, link *domain.Link) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Link, error)
}

type Publisher interface {
	Publish(ctx context.Context, link *domain.Link) error
	Close() error
}
