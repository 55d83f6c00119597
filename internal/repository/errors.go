package repository

import "github.com/ignatzorin/portfolio-backend/internal/repository/common"

// Ошибки репозиториев, которые сервисы различают по errors.Is.
var (
	// ErrNotFound запись не существует или принадлежит другому владельцу.
	ErrNotFound = common.ErrNotFound
	// ErrEmailTaken аккаунт с таким email уже есть.
	ErrEmailTaken = common.ErrAlreadyExists
)
