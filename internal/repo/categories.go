package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/showcase/internal/models"
)

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := models.Category{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryByName returns the first category with that exact name. Names are unique by convention only.
func (r *GormRepo) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{}
	if err := r.DB.WithContext(ctx).Where("name = ?", name).Order("created_at ASC").First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *GormRepo) UpdateCategory(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Category, error) {
	if err := r.updateByID(ctx, &models.Category{}, "categories", id, fields); err != nil {
		return nil, err
	}
	return r.GetCategory(ctx, id)
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.Category{}, id)
}

// RenameProductsCategory rewrites the category string on every product that references from.
func (r *GormRepo) RenameProductsCategory(ctx context.Context, from, to string) (int64, error) {
	cols, err := toColumns("products", map[string]any{"category": to})
	if err != nil {
		return 0, err
	}
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("category = ?", from).Updates(cols)
	return res.RowsAffected, res.Error
}
