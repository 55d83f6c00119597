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

// PersonalInfoRepository хранилище визитки владельца.
type PersonalInfoRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.PersonalInfo, error)
	Upsert(ctx context.Context, info *models.PersonalInfo) error
}

// PersonalInfoService чтение и полная перезапись визитки.
type PersonalInfoService struct {
	repo PersonalInfoRepository
}

// NewPersonalInfoService создаёт сервис визитки.
func NewPersonalInfoService(repo PersonalInfoRepository) *PersonalInfoService {
	return &PersonalInfoService{repo: repo}
}

// Get возвращает визитку или NOT_FOUND.
func (s *PersonalInfoService) Get(ctx context.Context, userID uuid.UUID) (*models.PersonalInfo, error) {
	info, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrPersonalInfoAbsent
		}
		return nil, err
	}
	return info, nil
}

// Find как Get, но отсутствие визитки даёт nil без ошибки.
func (s *PersonalInfoService) Find(ctx context.Context, userID uuid.UUID) (*models.PersonalInfo, error) {
	info, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return info, err
}

// Save проверяет и целиком записывает визитку.
func (s *PersonalInfoService) Save(ctx context.Context, userID uuid.UUID, in dto.PersonalInfoRequest) (*models.PersonalInfo, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	info := in.ToModel(userID)
	if err := s.repo.Upsert(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}
