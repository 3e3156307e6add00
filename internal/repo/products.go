package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns every product, newest first.
func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindProducts applies the storefront filter in the store and pages the result.
func (r *GormRepo) FindProducts(ctx context.Context, f domain.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, limit)
	if err := r.filtered(ctx, f).Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) filtered(ctx context.Context, f domain.ProductFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Subcategory != "" {
		q = q.Where("subcategory = ?", f.Subcategory)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		like := "%" + escapeLike(term) + "%"
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(code) LIKE ? ESCAPE '\\')", like, like)
	}
	return q
}

func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	items := make([]models.Product, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

// UpdateProduct applies a partial update keyed by application field names and returns the fresh row.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Product, error) {
	if err := r.updateByID(ctx, &models.Product{}, "products", id, fields); err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, id)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.Product{}, id)
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountProductsByCategory(ctx context.Context, category string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("category = ?", category).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountProductsBySubcategory(ctx context.Context, category, subcategory string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("category = ? AND subcategory = ?", category, subcategory).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) ProductsBySubcategory(ctx context.Context, category, subcategory string) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("category = ? AND subcategory = ?", category, subcategory).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *GormRepo) FindProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).Where("category = ?", category).Order("created_at DESC").Find(&items).Error
	return items, err
}
