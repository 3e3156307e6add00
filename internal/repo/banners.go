package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/showcase/internal/models"
)

func (r *GormRepo) GetBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	banner := models.Banner{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&banner).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

// ListBanners returns banners newest first; activeOnly drops inactive ones.
func (r *GormRepo) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	var items []models.Banner
	q := r.DB.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		q = q.Where("isactive = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateBanner(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.DB.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *GormRepo) UpdateBanner(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Banner, error) {
	if err := r.updateByID(ctx, &models.Banner{}, "banners", id, fields); err != nil {
		return nil, err
	}
	return r.GetBanner(ctx, id)
}

func (r *GormRepo) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.Banner{}, id)
}

func (r *GormRepo) CountActiveBanners(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Banner{}).Where("isactive = ?", true).Count(&n).Error
	return n, err
}
