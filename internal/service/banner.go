package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/events"
	"github.com/Skotchmaster/showcase/internal/models"
	"github.com/Skotchmaster/showcase/internal/repo"
	"github.com/Skotchmaster/showcase/internal/transport"
)

const DefaultBannerTitle = "New Banner"

type BannerService struct {
	Repo   *repo.GormRepo
	Notify Notifier
}

func (s *BannerService) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	items, err := s.Repo.ListBanners(ctx, activeOnly)
	if err != nil {
		return nil, storeErr("list banners", err)
	}
	return items, nil
}

func (s *BannerService) GetBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	b, err := s.Repo.GetBanner(ctx, id)
	if err != nil {
		return nil, storeErr("get banner", err)
	}
	return b, nil
}

// CreateBanner inserts an active placeholder banner for the admin to fill in.
func (s *BannerService) CreateBanner(ctx context.Context) (*models.Banner, error) {
	b, err := s.Repo.CreateBanner(ctx, &models.Banner{Title: DefaultBannerTitle, IsActive: true})
	if err != nil {
		return nil, storeErr("create banner", err)
	}
	s.publish(ctx, events.BannerCreated, b)
	return b, nil
}

func (s *BannerService) PatchBanner(ctx context.Context, id uuid.UUID, req transport.PatchBannerRequest) (*models.Banner, error) {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.ImageURL != nil {
		fields["imageUrl"] = strings.TrimSpace(*req.ImageURL)
	}
	if req.AffiliateURL != nil {
		u := strings.TrimSpace(*req.AffiliateURL)
		if u != "" {
			if err := domain.ValidAffiliateURL(u); err != nil {
				return nil, invalid("%v", err)
			}
		}
		fields["affiliateUrl"] = u
	}
	if req.IsActive != nil {
		fields["isActive"] = *req.IsActive
	}
	if len(fields) == 0 {
		return s.GetBanner(ctx, id)
	}

	b, err := s.Repo.UpdateBanner(ctx, id, fields)
	if err != nil {
		return nil, storeErr("update banner", err)
	}
	s.publish(ctx, events.BannerUpdated, b)
	return b, nil
}

func (s *BannerService) ToggleBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	current, err := s.GetBanner(ctx, id)
	if err != nil {
		return nil, err
	}
	active := !current.IsActive
	return s.PatchBanner(ctx, id, transport.PatchBannerRequest{IsActive: &active})
}

// DeleteBanner has no reference checks.
func (s *BannerService) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteBanner(ctx, id); err != nil {
		return storeErr("delete banner", err)
	}
	s.publish(ctx, events.BannerDeleted, &models.Banner{ID: id})
	return nil
}

func (s *BannerService) publish(ctx context.Context, typ string, b *models.Banner) {
	s.Notify.publish(ctx, b.ID.String(), events.CatalogEvent{Type: typ, EntityID: b.ID, Name: b.Title, At: time.Now().UTC()})
}
