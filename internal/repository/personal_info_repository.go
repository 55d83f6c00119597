package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// PersonalInfoRepository отвечает за таблицу personal_info (одна строка на аккаунт).
type PersonalInfoRepository struct {
	db *sqlx.DB
}

// NewPersonalInfoRepository создаёт экземпляр репозитория.
func NewPersonalInfoRepository(db *sqlx.DB) *PersonalInfoRepository {
	return &PersonalInfoRepository{db: db}
}

// Get возвращает визитку владельца или ErrNotFound.
func (r *PersonalInfoRepository) Get(ctx context.Context, userID uuid.UUID) (*models.PersonalInfo, error) {
	var info models.PersonalInfo
	if err := r.db.GetContext(ctx, &info, r.db.Rebind(`SELECT * FROM personal_info WHERE user_id = ?`), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("personal info repository: get %w", err)
	}
	return &info, nil
}

// Upsert целиком записывает визитку владельца.
func (r *PersonalInfoRepository) Upsert(ctx context.Context, info *models.PersonalInfo) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("personal info repository: begin tx %w", err)
	}
	defer tx.Rollback()

	if err := upsertPersonalInfo(ctx, tx, info); err != nil {
		return err
	}

	if err := tx.GetContext(ctx, info, tx.Rebind(`SELECT * FROM personal_info WHERE user_id = ?`), info.UserID); err != nil {
		return fmt.Errorf("personal info repository: reload %w", err)
	}

	return tx.Commit()
}

func upsertPersonalInfo(ctx context.Context, tx *sqlx.Tx, info *models.PersonalInfo) error {
	now := time.Now().UTC()
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	info.CreatedAt = now
	info.UpdatedAt = now

	query := `
		INSERT INTO personal_info (
			id, user_id, name, title, description, email, location, phone, bio, avatar,
			availability, availability_status, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :title, :description, :email, :location, :phone, :bio, :avatar,
			:availability, :availability_status, :created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name,
			title = excluded.title,
			description = excluded.description,
			email = excluded.email,
			location = excluded.location,
			phone = excluded.phone,
			bio = excluded.bio,
			avatar = excluded.avatar,
			availability = excluded.availability,
			availability_status = excluded.availability_status,
			updated_at = excluded.updated_at
	`
	if _, err := tx.NamedExecContext(ctx, query, info); err != nil {
		return fmt.Errorf("personal info repository: upsert %w", err)
	}
	return nil
}
