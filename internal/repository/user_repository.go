package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// UserRepository отвечает за таблицу users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateAccount создаёт аккаунт вместе с визиткой и настройками по умолчанию в одной транзакции.
func (r *UserRepository) CreateAccount(ctx context.Context, user *models.User, info *models.PersonalInfo, settings *models.Settings) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) FROM users WHERE email = ?`), user.Email); err != nil {
			return fmt.Errorf("user repository: check email %w", err)
		}
		if exists > 0 {
			return ErrEmailTaken
		}

		now := time.Now().UTC()
		user.ID = uuid.New()
		user.CreatedAt = now
		user.UpdatedAt = now

		query := `
			INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
			VALUES (:id, :email, :password_hash, :name, :role, :created_at, :updated_at)
		`
		if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
			if common.IsUniqueViolation(err) {
				return ErrEmailTaken
			}
			return fmt.Errorf("user repository: create %w", err)
		}

		if info != nil {
			info.UserID = user.ID
			if err := upsertPersonalInfo(ctx, tx, info); err != nil {
				return err
			}
		}
		if settings != nil {
			settings.UserID = user.ID
			if err := upsertSettings(ctx, tx, settings); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByEmail возвращает пользователя по email (без учёта регистра).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := r.db.Rebind(`SELECT * FROM users WHERE email = ?`)
	if err := r.db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user repository: get by email %w", err)
	}
	return &user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(`SELECT * FROM users WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}
	return &user, nil
}
