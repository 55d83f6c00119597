package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile описывает загруженный на диск файл.
// На файл не ссылаются внешние ключи: поля image/avatar хранят URL строкой.
type UploadedFile struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       *uuid.UUID `db:"user_id" json:"-"`
	Filename     string     `db:"filename" json:"filename"`
	OriginalName string     `db:"original_name" json:"originalName"`
	Mimetype     string     `db:"mimetype" json:"mimetype"`
	Size         int64      `db:"size" json:"size"`
	URL          string     `db:"url" json:"url"`
	Path         string     `db:"path" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}
