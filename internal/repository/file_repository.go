package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// FileRepository отвечает за метаданные загруженных файлов.
type FileRepository struct {
	db *sqlx.DB
}

// NewFileRepository создаёт экземпляр репозитория.
func NewFileRepository(db *sqlx.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create сохраняет метаданные файла. ID назначается вызывающей стороной.
func (r *FileRepository) Create(ctx context.Context, file *models.UploadedFile) error {
	file.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO files (id, user_id, filename, original_name, mimetype, size, url, path, created_at)
		VALUES (:id, :user_id, :filename, :original_name, :mimetype, :size, :url, :path, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, file); err != nil {
		return fmt.Errorf("file repository: create %w", err)
	}
	return nil
}

// GetByRef ищет файл по сгенерированному имени или по ID записи.
func (r *FileRepository) GetByRef(ctx context.Context, ref string) (*models.UploadedFile, error) {
	var file models.UploadedFile
	query := r.db.Rebind(`SELECT * FROM files WHERE filename = ? OR id = ?`)
	if err := r.db.GetContext(ctx, &file, query, ref, ref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("file repository: get %w", err)
	}
	return &file, nil
}

// Delete удаляет метаданные файла.
func (r *FileRepository) Delete(ctx context.Context, file *models.UploadedFile) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM files WHERE id = ?`), file.ID)
	if err != nil {
		return fmt.Errorf("file repository: delete %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
