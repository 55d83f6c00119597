package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/validation"
)

// PasswordHashCost стоимость bcrypt для паролей администраторов.
const PasswordHashCost = 12

// AccountRepository описывает зависимости AuthService от слоя хранилища.
type AccountRepository interface {
	CreateAccount(ctx context.Context, user *models.User, info *models.PersonalInfo, settings *models.Settings) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthService инкапсулирует вход администратора и выдачу аккаунтов.
type AuthService struct {
	repo     AccountRepository
	tokens   *TokenManager
	hashCost int
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// CreateAccountInput содержит данные нового аккаунта.
type CreateAccountInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult возвращает итог авторизации.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AccountRepository, tokens *TokenManager) *AuthService {
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		hashCost: PasswordHashCost,
	}
}

// HashPassword хеширует пароль bcrypt с заданной стоимостью.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword сравнивает пароль с хешем средствами bcrypt.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login проверяет учётные данные и выпускает токен.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Validation(err)
	}
	// правило длины пароля проверяется только при создании аккаунта,
	// при входе любой неподходящий пароль это просто неверные учётные данные
	if in.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(in.Password, user.PasswordHash) {
		logger.Log.WithField("user_id", user.ID).Warn("auth service: неверный пароль")
		return nil, apperror.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// CreateAccount создаёт администратора вместе с визиткой и настройками по умолчанию.
func (s *AuthService) CreateAccount(ctx context.Context, in CreateAccountInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Validation(err)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Validation(err)
	}

	hash, err := HashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}

	email := normalizeEmail(in.Email)
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = &name
	}

	info := models.DefaultPersonalInfo(uuid.Nil, email)
	if user.Name != nil {
		info.Name = *user.Name
	}

	if err := s.repo.CreateAccount(ctx, user, info, models.DefaultSettings(uuid.Nil)); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperror.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Me возвращает аккаунт по идентификатору из токена.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail возвращает аккаунт по email или NOT_FOUND.
func (s *AuthService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
