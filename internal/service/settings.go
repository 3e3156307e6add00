package service

import (
	"context"

	"github.com/Skotchmaster/showcase/internal/domain"
	"github.com/Skotchmaster/showcase/internal/models"
	"github.com/Skotchmaster/showcase/internal/repo"
)

type SettingsService struct {
	Repo        *repo.GormRepo
	DefaultCode string
}

func (s *SettingsService) defaultCode() string {
	if s.DefaultCode != "" {
		return s.DefaultCode
	}
	return "123456"
}

func (s *SettingsService) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	settings, err := s.Repo.GetAdminSettings(ctx, s.defaultCode())
	if err != nil {
		return nil, storeErr("get admin settings", err)
	}
	return settings, nil
}

// SecretCode satisfies the unlock gate's code source.
func (s *SettingsService) SecretCode(ctx context.Context) (string, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.SecretCode, nil
}

func (s *SettingsService) UpdateSecretCode(ctx context.Context, code string) (*models.AdminSettings, error) {
	if len(code) < domain.SecretCodeLength {
		return nil, invalid("secret code must be at least %d characters", domain.SecretCodeLength)
	}
	settings, err := s.Repo.UpdateSecretCode(ctx, s.defaultCode(), code)
	if err != nil {
		return nil, storeErr("update secret code", err)
	}
	return settings, nil
}
