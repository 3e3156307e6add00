package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/showcase/pkg/logging"

	"github.com/Skotchmaster/showcase/internal/events"
	"github.com/Skotchmaster/showcase/internal/models"
	"github.com/Skotchmaster/showcase/internal/repo"
	"github.com/Skotchmaster/showcase/internal/transport"
)

type AnalyticsService struct {
	Repo   *repo.GormRepo
	Notify Notifier
	Now    func() time.Time
}

func (s *AnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// TrackClick counts one "buy" click. Failures are logged and swallowed so the redirect always happens.
func (s *AnalyticsService) TrackClick(ctx context.Context, productID uuid.UUID, productName string) {
	at := s.now().UnixMilli()
	if err := s.Repo.IncrementClick(ctx, productID, productName, at); err != nil {
		logging.FromContext(ctx).Warn("track_click_failed", "product_id", productID, "error", err)
		return
	}
	s.Notify.publish(ctx, productID.String(), events.ClickEvent{
		Type: events.ProductClicked, ProductID: productID, ProductName: productName, ClickedAt: at,
	})
}

func (s *AnalyticsService) ListAnalytics(ctx context.Context) ([]models.Analytics, error) {
	items, err := s.Repo.ListAnalytics(ctx)
	if err != nil {
		return nil, storeErr("list analytics", err)
	}
	return items, nil
}

func (s *AnalyticsService) Summary(ctx context.Context) (*transport.AnalyticsSummary, error) {
	products, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, storeErr("count products", err)
	}
	clicks, err := s.Repo.TotalClicks(ctx)
	if err != nil {
		return nil, storeErr("sum clicks", err)
	}
	banners, err := s.Repo.CountActiveBanners(ctx)
	if err != nil {
		return nil, storeErr("count banners", err)
	}
	return &transport.AnalyticsSummary{TotalProducts: products, TotalClicks: clicks, ActiveBanners: banners}, nil
}
