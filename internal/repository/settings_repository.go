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
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// SettingsRepository отвечает за таблицу user_settings.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository создаёт экземпляр репозитория.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get возвращает настройки владельца или ErrNotFound.
func (r *SettingsRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	var s models.Settings
	if err := r.db.GetContext(ctx, &s, r.db.Rebind(`SELECT * FROM user_settings WHERE user_id = ?`), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("settings repository: get %w", err)
	}
	return &s, nil
}

// Save целиком записывает настройки владельца (insert или update).
func (r *SettingsRepository) Save(ctx context.Context, s *models.Settings) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := upsertSettings(ctx, tx, s); err != nil {
			return err
		}
		if err := tx.GetContext(ctx, s, tx.Rebind(`SELECT * FROM user_settings WHERE user_id = ?`), s.UserID); err != nil {
			return fmt.Errorf("settings repository: reload %w", err)
		}
		return nil
	})
}

func upsertSettings(ctx context.Context, tx *sqlx.Tx, s *models.Settings) error {
	now := time.Now().UTC()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO user_settings (
			id, user_id, site_name, site_description, site_url, language, timezone,
			maintenance_mode, allow_comments, enable_analytics, enable_seo,
			contact_email, smtp_host, smtp_port, smtp_user, smtp_password,
			enable_email_notifications, auto_reply_enabled, auto_reply_message,
			enable_rate_limit, max_requests_per_minute, enable_captcha, captcha_site_key, captcha_secret_key,
			enable_csp, allowed_domains, email_notifications, project_updates, security_alerts, marketing_emails,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :site_name, :site_description, :site_url, :language, :timezone,
			:maintenance_mode, :allow_comments, :enable_analytics, :enable_seo,
			:contact_email, :smtp_host, :smtp_port, :smtp_user, :smtp_password,
			:enable_email_notifications, :auto_reply_enabled, :auto_reply_message,
			:enable_rate_limit, :max_requests_per_minute, :enable_captcha, :captcha_site_key, :captcha_secret_key,
			:enable_csp, :allowed_domains, :email_notifications, :project_updates, :security_alerts, :marketing_emails,
			:created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			site_name = excluded.site_name,
			site_description = excluded.site_description,
			site_url = excluded.site_url,
			language = excluded.language,
			timezone = excluded.timezone,
			maintenance_mode = excluded.maintenance_mode,
			allow_comments = excluded.allow_comments,
			enable_analytics = excluded.enable_analytics,
			enable_seo = excluded.enable_seo,
			contact_email = excluded.contact_email,
			smtp_host = excluded.smtp_host,
			smtp_port = excluded.smtp_port,
			smtp_user = excluded.smtp_user,
			smtp_password = excluded.smtp_password,
			enable_email_notifications = excluded.enable_email_notifications,
			auto_reply_enabled = excluded.auto_reply_enabled,
			auto_reply_message = excluded.auto_reply_message,
			enable_rate_limit = excluded.enable_rate_limit,
			max_requests_per_minute = excluded.max_requests_per_minute,
			enable_captcha = excluded.enable_captcha,
			captcha_site_key = excluded.captcha_site_key,
			captcha_secret_key = excluded.captcha_secret_key,
			enable_csp = excluded.enable_csp,
			allowed_domains = excluded.allowed_domains,
			email_notifications = excluded.email_notifications,
			project_updates = excluded.project_updates,
			security_alerts = excluded.security_alerts,
			marketing_emails = excluded.marketing_emails,
			updated_at = excluded.updated_at
	`
	if _, err := tx.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("settings repository: upsert %w", err)
	}
	return nil
}
