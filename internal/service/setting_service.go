package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/roboreach/site-api/internal/models"
	appErrors "github.com/roboreach/site-api/pkg/errors"
)

type settingRepository interface {
	List(ctx context.Context) ([]models.Setting, error)
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, key, value string) (*models.Setting, error)
}

// SettingService exposes key/value site settings.
type SettingService struct {
	repo   settingRepository
	logger *zap.Logger
}

// NewSettingService creates a new setting service.
func NewSettingService(repo settingRepository, logger *zap.Logger) *SettingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingService{repo: repo, logger: logger}
}

// List returns every setting.
func (s *SettingService) List(ctx context.Context) ([]models.Setting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list settings")
	}
	return settings, nil
}

// Upsert writes a setting, inserting or replacing by key.
func (s *SettingService) Upsert(ctx context.Context, key, value string) (*models.Setting, error) {
	if key == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "setting key is required")
	}
	setting, err := s.repo.Upsert(ctx, key, value)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save setting")
	}
	return setting, nil
}
