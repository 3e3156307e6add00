package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/showcase/internal/models"
)

// GetAdminSettings returns the singleton row, inserting one with defaultCode when the table is empty.
func (r *GormRepo) GetAdminSettings(ctx context.Context, defaultCode string) (*models.AdminSettings, error) {
	settings := models.AdminSettings{}
	err := r.DB.WithContext(ctx).Order("created_at ASC").First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.AdminSettings{SecretCode: defaultCode}
	if err := r.DB.WithContext(ctx).Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *GormRepo) UpdateSecretCode(ctx context.Context, defaultCode, code string) (*models.AdminSettings, error) {
	var out *models.AdminSettings
	err := r.Transaction(ctx, func(tx *GormRepo) error {
		current, err := tx.GetAdminSettings(ctx, defaultCode)
		if err != nil {
			return err
		}
		if err := tx.updateByID(ctx, &models.AdminSettings{}, "admin_settings", current.ID, map[string]any{"secretCode": code}); err != nil {
			return err
		}
		current.SecretCode = code
		out = current
		return nil
	})
	return out, err
}
