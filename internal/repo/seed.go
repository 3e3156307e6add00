package repo

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/showcase/internal/models"
)

func DefaultCategories() []models.Category {
	return []models.Category{
		{Name: "Electronics", Subcategories: models.StringList{"Mobile Phones", "Laptops", "Tablets", "Accessories"}},
		{Name: "Fashion", Subcategories: models.StringList{"Men's Clothing", "Women's Clothing", "Footwear", "Accessories"}},
		{Name: "Home & Kitchen", Subcategories: models.StringList{"Furniture", "Appliances", "Decor", "Kitchen Tools"}},
	}
}

// SeedDefaults fills an empty categories table and an empty settings table. Safe to call on every start.
func (r *GormRepo) SeedDefaults(ctx context.Context, defaultCode string) error {
	return r.Transaction(ctx, func(tx *GormRepo) error {
		var n int64
		if err := tx.DB.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		if n == 0 {
			cats := DefaultCategories()
			if err := tx.DB.WithContext(ctx).Create(&cats).Error; err != nil {
				return fmt.Errorf("seed categories: %w", err)
			}
		}
		if _, err := tx.GetAdminSettings(ctx, defaultCode); err != nil {
			return fmt.Errorf("seed admin settings: %w", err)
		}
		return nil
	})
}
