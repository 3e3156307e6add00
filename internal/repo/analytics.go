package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/showcase/internal/models"
)

// IncrementClick records one click. An existing row gets clicks+1 and a new lastclicked in a single
// statement; the product name snapshot is only written on the first click.
func (r *GormRepo) IncrementClick(ctx context.Context, productID uuid.UUID, productName string, nowMillis int64) error {
	row := models.Analytics{
		ProductID:   productID,
		ProductName: productName,
		Clicks:      1,
		LastClicked: nowMillis,
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "productid"}},
		DoUpdates: clause.Assignments(map[string]any{
			"clicks":      gorm.Expr("analytics.clicks + 1"),
			"lastclicked": nowMillis,
		}),
	}).Create(&row).Error
}

func (r *GormRepo) GetAnalytics(ctx context.Context, productID uuid.UUID) (*models.Analytics, error) {
	row := models.Analytics{}
	if err := r.DB.WithContext(ctx).Where("productid = ?", productID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListAnalytics returns rows by clicks, highest first.
func (r *GormRepo) ListAnalytics(ctx context.Context) ([]models.Analytics, error) {
	var items []models.Analytics
	if err := r.DB.WithContext(ctx).Order("clicks DESC").Order("lastclicked DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) TotalClicks(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Analytics{}).Select("COALESCE(SUM(clicks), 0)").Scan(&total).Error
	return total, err
}
