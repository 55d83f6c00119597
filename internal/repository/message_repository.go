package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// MessageRepository отвечает за таблицу messages.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository создаёт экземпляр репозитория.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// List возвращает сообщения получателя, новые первыми.
func (r *MessageRepository) List(ctx context.Context, userID uuid.UUID, filter models.MessageFilter) ([]models.Message, error) {
	conds := []string{"user_id = ?"}
	args := []interface{}{userID}

	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conds = append(conds, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.Starred != nil {
		conds = append(conds, "starred = ?")
		args = append(args, *filter.Starred)
	}

	query := r.db.Rebind(`SELECT * FROM messages WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY date DESC`)

	messages := []models.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("message repository: list %w", err)
	}
	return messages, nil
}

// Get возвращает сообщение получателя или ErrNotFound.
func (r *MessageRepository) Get(ctx context.Context, userID, id uuid.UUID) (*models.Message, error) {
	return common.GetOwned[models.Message](ctx, r.db, "messages", id, userID)
}

// Create сохраняет новое сообщение.
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	now := time.Now().UTC()
	msg.ID = uuid.New()
	if msg.Date.IsZero() {
		msg.Date = now
	}
	if msg.Status == "" {
		msg.Status = models.MessageStatusUnread
	}
	if msg.Priority == "" {
		msg.Priority = models.MessagePriorityMedium
	}
	msg.CreatedAt = now
	msg.UpdatedAt = now

	query := `
		INSERT INTO messages (id, user_id, name, email, subject, message, date, status, priority, starred, created_at, updated_at)
		VALUES (:id, :user_id, :name, :email, :subject, :message, :date, :status, :priority, :starred, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, msg); err != nil {
		return fmt.Errorf("message repository: create %w", err)
	}
	return nil
}

// Update применяет частичные изменения к сообщению получателя.
func (r *MessageRepository) Update(ctx context.Context, userID, id uuid.UUID, patch models.MessagePatch) (*models.Message, error) {
	var msg *models.Message
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		sets := []string{"updated_at = ?"}
		args := []interface{}{time.Now().UTC()}
		if patch.Status != nil {
			sets = append(sets, "status = ?")
			args = append(args, *patch.Status)
		}
		if patch.Priority != nil {
			sets = append(sets, "priority = ?")
			args = append(args, *patch.Priority)
		}
		if patch.Starred != nil {
			sets = append(sets, "starred = ?")
			args = append(args, *patch.Starred)
		}
		args = append(args, id, userID)

		query := tx.Rebind(`UPDATE messages SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`)
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("message repository: update %w", err)
		}
		if err := common.ExpectAffected(res); err != nil {
			return err
		}

		msg, err = common.GetOwned[models.Message](ctx, tx, "messages", id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// Delete удаляет сообщение получателя.
func (r *MessageRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM messages WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return fmt.Errorf("message repository: delete %w", err)
	}
	return common.ExpectAffected(res)
}
