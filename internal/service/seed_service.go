package service

import (
	"context"
	"fmt"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// SeedService создаёт администратора и заполняет портфолио демонстрационными данными.
type SeedService struct {
	auth      *AuthService
	portfolio *PortfolioService
	content   *SiteContentService
}

// SeedResult итог заполнения.
type SeedResult struct {
	User    *models.User `json:"user"`
	Created bool         `json:"created"`
	Demo    bool         `json:"demo"`
}

// NewSeedService создаёт новый сервис для заполнения данных.
func NewSeedService(auth *AuthService, portfolio *PortfolioService, content *SiteContentService) *SeedService {
	return &SeedService{
		auth:      auth,
		portfolio: portfolio,
		content:   content,
	}
}

// EnsureAdmin возвращает существующий аккаунт с этим email или создаёт новый.
func (s *SeedService) EnsureAdmin(ctx context.Context, in CreateAccountInput) (*models.User, bool, error) {
	user, err := s.auth.GetByEmail(ctx, in.Email)
	if err == nil {
		return user, false, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, false, err
	}

	user, err = s.auth.CreateAccount(ctx, in)
	if err != nil {
		return nil, false, fmt.Errorf("seed service: не удалось создать администратора: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("seed service: администратор создан")
	return user, true, nil
}

// SeedDemo заменяет все группы портфолио пользователя демонстрационными данными
// и записывает тексты сайта по умолчанию.
func (s *SeedService) SeedDemo(ctx context.Context, user *models.User) error {
	demo := dto.DemoPortfolio()
	demo.PersonalInfo.Email = user.Email
	if user.Name != nil && *user.Name != "" {
		demo.PersonalInfo.Name = *user.Name
	}

	if _, err := s.portfolio.SavePortfolio(ctx, user.ID, demo); err != nil {
		return fmt.Errorf("seed service: не удалось записать портфолио: %w", err)
	}

	if s.content != nil {
		if _, err := s.content.UpsertMany(ctx, demoSiteContent()); err != nil {
			return fmt.Errorf("seed service: не удалось записать тексты сайта: %w", err)
		}
	}

	logger.Log.WithField("user_id", user.ID).Info("seed service: демонстрационные данные записаны")
	return nil
}

// Seed создаёт администратора и, если demo, заполняет его портфолио.
func (s *SeedService) Seed(ctx context.Context, in CreateAccountInput, demo bool) (*SeedResult, error) {
	user, created, err := s.EnsureAdmin(ctx, in)
	if err != nil {
		return nil, err
	}

	if demo {
		if err := s.SeedDemo(ctx, user); err != nil {
			return nil, err
		}
	}

	return &SeedResult{User: user, Created: created, Demo: demo}, nil
}

func demoSiteContent() []dto.SiteContentRequest {
	return []dto.SiteContentRequest{
		{Section: "hero", Key: "greeting", Value: "Hi, I'm"},
		{Section: "hero", Key: "cta", Value: "View my work"},
		{Section: "about", Key: "heading", Value: "About me"},
		{Section: "projects", Key: "heading", Value: "Featured projects"},
		{Section: "experience", Key: "heading", Value: "Experience"},
		{Section: "contact", Key: "heading", Value: "Get in touch"},
		{Section: "contact", Key: "success", Value: "Thanks! Your message has been sent."},
		{Section: "footer", Key: "copyright", Value: "All rights reserved."},
	}
}
