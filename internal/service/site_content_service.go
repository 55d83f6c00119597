package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
)

// SiteContentRepository хранилище текстов сайта.
type SiteContentRepository interface {
	List(ctx context.Context, section string) ([]models.SiteContent, error)
	Upsert(ctx context.Context, item *models.SiteContent) error
	UpsertMany(ctx context.Context, items []models.SiteContent) ([]models.SiteContent, error)
	Delete(ctx context.Context, section, key string) error
}

// SiteContentService редактируемые тексты сайта, сгруппированные по секциям.
type SiteContentService struct {
	repo SiteContentRepository
}

// NewSiteContentService создаёт сервис текстов сайта.
func NewSiteContentService(repo SiteContentRepository) *SiteContentService {
	return &SiteContentService{repo: repo}
}

// List возвращает тексты в виде {section: {key: value}}.
func (s *SiteContentService) List(ctx context.Context, section string) (map[string]map[string]string, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(section))
	if err != nil {
		return nil, err
	}
	return models.GroupSiteContent(items), nil
}

// Upsert создаёт или обновляет один текст.
func (s *SiteContentService) Upsert(ctx context.Context, in dto.SiteContentRequest) (*models.SiteContent, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	item := in.ToModel()
	if err := s.repo.Upsert(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertMany записывает пачку текстов. Один невалидный элемент отменяет всю пачку.
func (s *SiteContentService) UpsertMany(ctx context.Context, inputs []dto.SiteContentRequest) ([]models.SiteContent, error) {
	items := make([]models.SiteContent, 0, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return nil, apperror.Validation(fmt.Errorf("элемент %d: %w", i+1, err))
		}
		items = append(items, in.ToModel())
	}
	if len(items) == 0 {
		return items, nil
	}
	return s.repo.UpsertMany(ctx, items)
}

// Delete удаляет текст по паре (section, key).
func (s *SiteContentService) Delete(ctx context.Context, section, key string) error {
	section, key = strings.TrimSpace(section), strings.TrimSpace(key)
	if section == "" || key == "" {
		return apperror.New(apperror.ErrCodeBadRequest, "параметры section и key обязательны")
	}
	if err := s.repo.Delete(ctx, section, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.New(apperror.ErrCodeNotFound, "текст не найден")
		}
		return err
	}
	return nil
}
