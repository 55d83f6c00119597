package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrTooLarge файл превышает лимит загрузки.
var ErrTooLarge = errors.New("storage: размер файла превышает лимит")

// ErrInvalidPath путь не указывает на файл внутри каталога загрузок.
var ErrInvalidPath = errors.New("storage: недопустимый путь")

// UploadStorage плоский каталог загруженных файлов.
type UploadStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewUploadStorage создаёт файловое хранилище, создавая каталог при необходимости.
func NewUploadStorage(rootPath string, maxUploadBytes int64) (*UploadStorage, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("storage: некорректный каталог %s: %w", rootPath, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", abs, err)
	}

	return &UploadStorage{
		rootPath:       abs,
		maxUploadBytes: maxUploadBytes,
	}, nil
}

// MaxUploadBytes возвращает лимит размера файла.
func (s *UploadStorage) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// Save записывает поток под именем fileName и возвращает абсолютный путь и размер.
// Файл сначала пишется во временный, затем переименовывается.
func (s *UploadStorage) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	targetPath, err := s.Resolve(fileName)
	if err != nil {
		return "", 0, err
	}
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, ErrTooLarge
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return targetPath, written, nil
}

// Resolve превращает имя из URL в абсолютный путь внутри каталога.
// Выход за пределы каталога даёт ErrInvalidPath.
func (s *UploadStorage) Resolve(name string) (string, error) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "/")
	if name == "" || strings.Contains(name, "\x00") {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}

	target := filepath.Join(s.rootPath, filepath.FromSlash(name))
	rel, err := filepath.Rel(s.rootPath, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidPath
	}
	return target, nil
}

// Open открывает сохранённый файл на чтение. Каталоги и отсутствующие файлы дают os.ErrNotExist.
func (s *UploadStorage) Open(name string) (*os.File, os.FileInfo, error) {
	target, err := s.Resolve(name)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(target)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, os.ErrNotExist
	}
	return f, info, nil
}

// Delete удаляет файл из хранилища. Отсутствующий файл не считается ошибкой.
func (s *UploadStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}
