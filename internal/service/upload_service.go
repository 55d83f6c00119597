package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// Разрешённые типы загружаемых файлов и расширение по умолчанию для каждого.
var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// filetype распознаёт сигнатуру по первым 262 байтам.
const sniffLen = 262

// FileRepository хранилище метаданных загрузок.
type FileRepository interface {
	Create(ctx context.Context, file *models.UploadedFile) error
	GetByRef(ctx context.Context, ref string) (*models.UploadedFile, error)
	Delete(ctx context.Context, file *models.UploadedFile) error
}

// UploadInput загружаемый файл.
type UploadInput struct {
	OriginalName string
	DeclaredType string
	Size         int64
	Body         io.Reader
}

// UploadService сохраняет картинки под сгенерированным UUID именем.
type UploadService struct {
	repo      FileRepository
	storage   *storage.UploadStorage
	urlPrefix string
}

// NewUploadService создаёт сервис загрузок. urlPrefix вида "/uploads".
func NewUploadService(repo FileRepository, storage *storage.UploadStorage, urlPrefix string) *UploadService {
	return &UploadService{
		repo:      repo,
		storage:   storage,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

// Upload проверяет тип и размер, пишет файл на диск и сохраняет запись о нём.
func (s *UploadService) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*models.UploadedFile, error) {
	declared := normalizeMime(in.DeclaredType)
	defaultExt, ok := allowedUploadTypes[declared]
	if !ok {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("неподдерживаемый тип файла (%s). Разрешены: image/jpeg, image/png, image/gif, image/webp", in.DeclaredType))
	}
	if in.Size == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "файл не может быть пустым")
	}
	if in.Size > s.storage.MaxUploadBytes() {
		return nil, tooLarge(s.storage.MaxUploadBytes())
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось прочитать файл")
	}
	head = head[:n]
	if n == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "файл не может быть пустым")
	}

	// Короткий файл может не иметь распознаваемой сигнатуры, тогда доверяем заявленному типу.
	if kind, _ := filetype.Match(head); kind != filetype.Unknown && normalizeMime(kind.MIME.Value) != declared {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("содержимое файла (%s) не соответствует заявленному типу (%s)", kind.MIME.Value, declared))
	}

	ext := strings.ToLower(filepath.Ext(path.Base(filepath.ToSlash(in.OriginalName))))
	if !validExtension(ext) {
		ext = defaultExt
	}

	id := uuid.New()
	fileName := id.String() + ext

	fullPath, size, err := s.storage.Save(ctx, fileName, io.MultiReader(bytes.NewReader(head), in.Body))
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, tooLarge(s.storage.MaxUploadBytes())
		}
		return nil, err
	}

	file := &models.UploadedFile{
		ID:           id,
		UserID:       &userID,
		Filename:     fileName,
		OriginalName: originalName(in.OriginalName),
		Mimetype:     declared,
		Size:         size,
		URL:          s.urlPrefix + "/" + fileName,
		Path:         fullPath,
	}

	if err := s.repo.Create(ctx, file); err != nil {
		if rmErr := s.storage.Delete(ctx, fileName); rmErr != nil {
			logger.Log.WithField("error", rmErr.Error()).Warn("upload service: не удалось убрать файл после ошибки записи")
		}
		return nil, err
	}

	return file, nil
}

// Delete удаляет файл по сгенерированному имени или ID записи.
// Файл другого владельца неотличим от отсутствующего.
func (s *UploadService) Delete(ctx context.Context, userID uuid.UUID, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return apperror.New(apperror.ErrCodeBadRequest, "параметр id обязателен")
	}

	file, err := s.repo.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrFileNotFound
		}
		return err
	}
	if file.UserID != nil && *file.UserID != userID {
		return apperror.ErrFileNotFound
	}

	if err := s.repo.Delete(ctx, file); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.ErrFileNotFound
		}
		return err
	}

	if err := s.storage.Delete(ctx, file.Filename); err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"filename": file.Filename,
			"error":    err.Error(),
		}).Warn("upload service: запись удалена, но файл остался на диске")
	}
	return nil
}

// ContentTypeByName определяет Content-Type отдаваемого файла по расширению.
func ContentTypeByName(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "jpeg" {
		ext = "jpg"
	}
	if t := filetype.GetType(ext); t != filetype.Unknown {
		return t.MIME.Value
	}
	return "application/octet-stream"
}

func normalizeMime(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if i := strings.Index(value, ";"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	if value == "image/jpg" || value == "image/pjpeg" {
		return "image/jpeg"
	}
	return value
}

func validExtension(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

func originalName(name string) string {
	base := path.Base(filepath.ToSlash(name))
	if base == "." || base == "/" || base == "" {
		return "file"
	}
	return base
}

func tooLarge(limit int64) *apperror.AppError {
	return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("размер файла превышает лимит %d МБ", limit/(1024*1024)))
}
