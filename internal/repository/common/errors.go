package common

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Ошибки уровня хранения. Пакет repository переэкспортирует их для сервисов.
var (
	ErrNotFound      = errors.New("repository: запись не найдена")
	ErrAlreadyExists = errors.New("repository: запись уже существует")
)

// код unique_violation в Postgres
const pqUniqueViolation = "23505"

// IsUniqueViolation распознаёт нарушение уникального индекса в Postgres и SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
