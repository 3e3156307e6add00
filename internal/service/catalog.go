package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/showcase/pkg/logging"

	"github.com/Skotchmaster/showcase/internal/models"
	"github.com/Skotchmaster/showcase/internal/repo"
	"github.com/Skotchmaster/showcase/internal/search"
)

// CatalogService owns products and categories and keeps them referentially consistent.
type CatalogService struct {
	Repo    *repo.GormRepo
	Renamer CategoryRenamer
	Index   search.Indexer
	Notify  Notifier
	Now     func() time.Time
}

func (s *CatalogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *CatalogService) renamer() CategoryRenamer {
	if s.Renamer != nil {
		return s.Renamer
	}
	return NameOnly{}
}

func (s *CatalogService) index() search.Indexer {
	if s.Index != nil {
		return s.Index
	}
	return search.Nop{}
}

func (s *CatalogService) reindex(ctx context.Context, products ...models.Product) {
	for _, p := range products {
		if err := s.index().Upsert(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
		}
	}
}
