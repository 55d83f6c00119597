package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// SocialLinkRepository отвечает за таблицу social_links.
type SocialLinkRepository struct {
	db *sqlx.DB
}

// NewSocialLinkRepository создаёт экземпляр репозитория.
func NewSocialLinkRepository(db *sqlx.DB) *SocialLinkRepository {
	return &SocialLinkRepository{db: db}
}

// List возвращает ссылки владельца в сохранённом порядке.
func (r *SocialLinkRepository) List(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error) {
	links := []models.SocialLink{}
	query := r.db.Rebind(`SELECT * FROM social_links WHERE user_id = ? ORDER BY sort_order, created_at`)
	if err := r.db.SelectContext(ctx, &links, query, userID); err != nil {
		return nil, fmt.Errorf("social link repository: list %w", err)
	}
	return links, nil
}

// Create добавляет ссылку в конец списка.
func (r *SocialLinkRepository) Create(ctx context.Context, link *models.SocialLink) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		order, err := common.NextSortOrder(ctx, tx, "social_links", link.UserID)
		if err != nil {
			return err
		}
		link.ID = uuid.New()
		link.SortOrder = order
		return insertSocialLink(ctx, tx, link, time.Now().UTC())
	})
}

// Update меняет ссылку владельца.
func (r *SocialLinkRepository) Update(ctx context.Context, link *models.SocialLink) error {
	query := r.db.Rebind(`
		UPDATE social_links SET platform = ?, url = ?, icon = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`)
	res, err := r.db.ExecContext(ctx, query, link.Platform, link.URL, link.Icon, time.Now().UTC(), link.ID, link.UserID)
	if err != nil {
		return fmt.Errorf("social link repository: update %w", err)
	}
	if err := common.ExpectAffected(res); err != nil {
		return err
	}

	updated, err := common.GetOwned[models.SocialLink](ctx, r.db, "social_links", link.ID, link.UserID)
	if err != nil {
		return err
	}
	*link = *updated
	return nil
}

// Delete удаляет ссылку владельца.
func (r *SocialLinkRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM social_links WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return fmt.Errorf("social link repository: delete %w", err)
	}
	return common.ExpectAffected(res)
}

// ReplaceAll атомарно заменяет все ссылки владельца.
func (r *SocialLinkRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, links []models.SocialLink) ([]models.SocialLink, error) {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM social_links WHERE user_id = ?`), userID); err != nil {
			return fmt.Errorf("social link repository: delete all %w", err)
		}

		ids := common.NewIDAllocator(tx, "social_links")
		now := time.Now().UTC()
		for i := range links {
			id, err := ids.Resolve(ctx, links[i].ID)
			if err != nil {
				return err
			}
			links[i].ID = id
			links[i].UserID = userID
			links[i].SortOrder = i
			if err := insertSocialLink(ctx, tx, &links[i], now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

func insertSocialLink(ctx context.Context, tx *sqlx.Tx, link *models.SocialLink, now time.Time) error {
	link.CreatedAt = now
	link.UpdatedAt = now

	query := `
		INSERT INTO social_links (id, user_id, platform, url, icon, sort_order, created_at, updated_at)
		VALUES (:id, :user_id, :platform, :url, :icon, :sort_order, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("social link repository: insert %w", err)
	}
	return nil
}
