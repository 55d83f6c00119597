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

// ExperienceRepository отвечает за таблицы experiences и experience_technologies.
type ExperienceRepository struct {
	db *sqlx.DB
}

// NewExperienceRepository создаёт экземпляр репозитория.
func NewExperienceRepository(db *sqlx.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

type experienceTechRow struct {
	ExperienceID uuid.UUID `db:"experience_id"`
	Technology   string    `db:"technology"`
}

// List возвращает опыт работы владельца с технологиями.
func (r *ExperienceRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Experience, error) {
	items := []models.Experience{}
	query := r.db.Rebind(`SELECT * FROM experiences WHERE user_id = ? ORDER BY sort_order, created_at`)
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("experience repository: list %w", err)
	}

	var techs []experienceTechRow
	techQuery := r.db.Rebind(`
		SELECT et.experience_id, et.technology
		FROM experience_technologies et
		JOIN experiences e ON e.id = et.experience_id
		WHERE e.user_id = ?
		ORDER BY et.experience_id, et.sort_order
	`)
	if err := r.db.SelectContext(ctx, &techs, techQuery, userID); err != nil {
		return nil, fmt.Errorf("experience repository: list technologies %w", err)
	}

	byExperience := make(map[uuid.UUID][]string, len(items))
	for _, t := range techs {
		byExperience[t.ExperienceID] = append(byExperience[t.ExperienceID], t.Technology)
	}
	for i := range items {
		items[i].Technologies = byExperience[items[i].ID]
		if items[i].Technologies == nil {
			items[i].Technologies = []string{}
		}
	}

	return items, nil
}

// Create добавляет запись опыта в конец списка владельца.
func (r *ExperienceRepository) Create(ctx context.Context, item *models.Experience) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		order, err := common.NextSortOrder(ctx, tx, "experiences", item.UserID)
		if err != nil {
			return err
		}
		item.ID = uuid.New()
		item.SortOrder = order
		if err := insertExperience(ctx, tx, item, time.Now().UTC()); err != nil {
			return err
		}
		return insertExperienceTechnologies(ctx, tx, []models.Experience{*item})
	})
}

// Update меняет запись владельца и полностью заменяет её технологии.
func (r *ExperienceRepository) Update(ctx context.Context, item *models.Experience) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`
			UPDATE experiences
			SET company = ?, position = ?, duration = ?, description = ?, updated_at = ?
			WHERE id = ? AND user_id = ?
		`)
		res, err := tx.ExecContext(ctx, query,
			item.Company, item.Position, item.Duration, item.Description, time.Now().UTC(), item.ID, item.UserID)
		if err != nil {
			return fmt.Errorf("experience repository: update %w", err)
		}
		if err := common.ExpectAffected(res); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM experience_technologies WHERE experience_id = ?`), item.ID); err != nil {
			return fmt.Errorf("experience repository: delete technologies %w", err)
		}
		if err := insertExperienceTechnologies(ctx, tx, []models.Experience{*item}); err != nil {
			return err
		}

		updated, err := common.GetOwned[models.Experience](ctx, tx, "experiences", item.ID, item.UserID)
		if err != nil {
			return err
		}
		updated.Technologies = item.Technologies
		*item = *updated
		return nil
	})
}

// Delete удаляет запись владельца вместе с технологиями.
func (r *ExperienceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		techQuery := tx.Rebind(`DELETE FROM experience_technologies WHERE experience_id IN (SELECT id FROM experiences WHERE id = ? AND user_id = ?)`)
		if _, err := tx.ExecContext(ctx, techQuery, id, userID); err != nil {
			return fmt.Errorf("experience repository: delete technologies %w", err)
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM experiences WHERE id = ? AND user_id = ?`), id, userID)
		if err != nil {
			return fmt.Errorf("experience repository: delete %w", err)
		}
		return common.ExpectAffected(res)
	})
}

// ReplaceAll атомарно заменяет весь опыт работы владельца.
func (r *ExperienceRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, items []models.Experience) ([]models.Experience, error) {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		techQuery := tx.Rebind(`DELETE FROM experience_technologies WHERE experience_id IN (SELECT id FROM experiences WHERE user_id = ?)`)
		if _, err := tx.ExecContext(ctx, techQuery, userID); err != nil {
			return fmt.Errorf("experience repository: delete all technologies %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM experiences WHERE user_id = ?`), userID); err != nil {
			return fmt.Errorf("experience repository: delete all %w", err)
		}

		ids := common.NewIDAllocator(tx, "experiences")
		now := time.Now().UTC()
		for i := range items {
			id, err := ids.Resolve(ctx, items[i].ID)
			if err != nil {
				return err
			}
			items[i].ID = id
			items[i].UserID = userID
			items[i].SortOrder = i
			if items[i].Technologies == nil {
				items[i].Technologies = []string{}
			}
			if err := insertExperience(ctx, tx, &items[i], now); err != nil {
				return err
			}
		}

		return insertExperienceTechnologies(ctx, tx, items)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func insertExperience(ctx context.Context, tx *sqlx.Tx, item *models.Experience, now time.Time) error {
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `
		INSERT INTO experiences (id, user_id, company, position, duration, description, sort_order, created_at, updated_at)
		VALUES (:id, :user_id, :company, :position, :duration, :description, :sort_order, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("experience repository: insert %w", err)
	}
	return nil
}

func insertExperienceTechnologies(ctx context.Context, tx *sqlx.Tx, items []models.Experience) error {
	inserter := common.NewBatchInserter(tx, `INSERT INTO experience_technologies (id, experience_id, technology, sort_order)`, 4, 100)
	for _, e := range items {
		for i, tech := range e.Technologies {
			if err := inserter.Add(ctx, uuid.New(), e.ID, tech, i); err != nil {
				return fmt.Errorf("experience repository: insert technologies %w", err)
			}
		}
	}
	if err := inserter.Flush(ctx); err != nil {
		return fmt.Errorf("experience repository: insert technologies %w", err)
	}
	return nil
}
