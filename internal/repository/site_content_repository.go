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

// SiteContentRepository отвечает за таблицу site_content.
// Тексты сайта общие для всей инсталляции и не привязаны к владельцу.
type SiteContentRepository struct {
	db *sqlx.DB
}

// NewSiteContentRepository создаёт экземпляр репозитория.
func NewSiteContentRepository(db *sqlx.DB) *SiteContentRepository {
	return &SiteContentRepository{db: db}
}

// List возвращает элементы секции, либо все, если section пустой.
func (r *SiteContentRepository) List(ctx context.Context, section string) ([]models.SiteContent, error) {
	items := []models.SiteContent{}
	query := `SELECT * FROM site_content ORDER BY section, content_key`
	args := []interface{}{}
	if section != "" {
		query = `SELECT * FROM site_content WHERE section = ? ORDER BY content_key`
		args = append(args, section)
	}

	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("site content repository: list %w", err)
	}
	return items, nil
}

// Upsert создаёт или обновляет один элемент по паре (section, key).
func (r *SiteContentRepository) Upsert(ctx context.Context, item *models.SiteContent) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		return upsertSiteContent(ctx, tx, item)
	})
}

// UpsertMany записывает пачку элементов в одной транзакции.
func (r *SiteContentRepository) UpsertMany(ctx context.Context, items []models.SiteContent) ([]models.SiteContent, error) {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		for i := range items {
			if err := upsertSiteContent(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Delete удаляет элемент по паре (section, key).
func (r *SiteContentRepository) Delete(ctx context.Context, section, key string) error {
	query := r.db.Rebind(`DELETE FROM site_content WHERE section = ? AND content_key = ?`)
	res, err := r.db.ExecContext(ctx, query, section, key)
	if err != nil {
		return fmt.Errorf("site content repository: delete %w", err)
	}
	return common.ExpectAffected(res)
}

func upsertSiteContent(ctx context.Context, tx *sqlx.Tx, item *models.SiteContent) error {
	now := time.Now().UTC()
	item.ID = uuid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `
		INSERT INTO site_content (id, section, content_key, content_value, created_at, updated_at)
		VALUES (:id, :section, :content_key, :content_value, :created_at, :updated_at)
		ON CONFLICT (section, content_key) DO UPDATE SET
			content_value = excluded.content_value,
			updated_at = excluded.updated_at
	`
	if _, err := tx.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("site content repository: upsert %w", err)
	}

	reload := tx.Rebind(`SELECT * FROM site_content WHERE section = ? AND content_key = ?`)
	if err := tx.GetContext(ctx, item, reload, item.Section, item.Key); err != nil {
		return fmt.Errorf("site content repository: reload %w", err)
	}
	return nil
}
