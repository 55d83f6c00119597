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

// SkillRepository отвечает за таблицу skills.
type SkillRepository struct {
	db *sqlx.DB
}

// NewSkillRepository создаёт экземпляр репозитория.
func NewSkillRepository(db *sqlx.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// List возвращает навыки владельца в сохранённом порядке.
func (r *SkillRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	skills := []models.Skill{}
	query := r.db.Rebind(`SELECT * FROM skills WHERE user_id = ? ORDER BY sort_order, created_at`)
	if err := r.db.SelectContext(ctx, &skills, query, userID); err != nil {
		return nil, fmt.Errorf("skill repository: list %w", err)
	}
	return skills, nil
}

// Create добавляет навык в конец списка владельца.
func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		order, err := common.NextSortOrder(ctx, tx, "skills", skill.UserID)
		if err != nil {
			return err
		}
		skill.ID = uuid.New()
		skill.SortOrder = order
		return insertSkill(ctx, tx, skill, time.Now().UTC())
	})
}

// Update меняет поля навыка, принадлежащего владельцу.
func (r *SkillRepository) Update(ctx context.Context, skill *models.Skill) error {
	query := r.db.Rebind(`
		UPDATE skills SET name = ?, level = ?, category = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`)
	res, err := r.db.ExecContext(ctx, query, skill.Name, skill.Level, skill.Category, time.Now().UTC(), skill.ID, skill.UserID)
	if err != nil {
		return fmt.Errorf("skill repository: update %w", err)
	}
	if err := common.ExpectAffected(res); err != nil {
		return err
	}

	updated, err := common.GetOwned[models.Skill](ctx, r.db, "skills", skill.ID, skill.UserID)
	if err != nil {
		return err
	}
	*skill = *updated
	return nil
}

// Delete удаляет навык владельца.
func (r *SkillRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM skills WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return fmt.Errorf("skill repository: delete %w", err)
	}
	return common.ExpectAffected(res)
}

// ReplaceAll атомарно заменяет весь список навыков владельца.
func (r *SkillRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, skills []models.Skill) ([]models.Skill, error) {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM skills WHERE user_id = ?`), userID); err != nil {
			return fmt.Errorf("skill repository: delete all %w", err)
		}

		ids := common.NewIDAllocator(tx, "skills")
		now := time.Now().UTC()
		for i := range skills {
			id, err := ids.Resolve(ctx, skills[i].ID)
			if err != nil {
				return err
			}
			skills[i].ID = id
			skills[i].UserID = userID
			skills[i].SortOrder = i
			if err := insertSkill(ctx, tx, &skills[i], now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func insertSkill(ctx context.Context, tx *sqlx.Tx, skill *models.Skill, now time.Time) error {
	skill.CreatedAt = now
	skill.UpdatedAt = now

	query := `
		INSERT INTO skills (id, user_id, name, level, category, sort_order, created_at, updated_at)
		VALUES (:id, :user_id, :name, :level, :category, :sort_order, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, skill); err != nil {
		return fmt.Errorf("skill repository: insert %w", err)
	}
	return nil
}
