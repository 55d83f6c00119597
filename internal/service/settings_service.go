package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
)

// SettingsRepository хранилище настроек сайта.
type SettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Settings, error)
	Save(ctx context.Context, s *models.Settings) error
}

// SettingsService настройки владельца, создаваемые при первом чтении.
type SettingsService struct {
	repo SettingsRepository
}

// NewSettingsService создаёт сервис настроек.
func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get возвращает настройки, записывая значения по умолчанию, если их ещё нет.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	settings = models.DefaultSettings(userID)
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Update применяет частичное изменение. Любое поле необязательно.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, patch models.SettingsPatch) (*models.Settings, error) {
	if err := dto.ValidateSettingsPatch(patch); err != nil {
		return nil, apperror.Validation(err)
	}

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(settings)
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Reset возвращает настройки к значениям по умолчанию.
func (s *SettingsService) Reset(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	settings := models.DefaultSettings(userID)
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
