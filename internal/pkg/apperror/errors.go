package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadGateway   ErrorCode = "BAD_GATEWAY"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation оборачивает ошибку валидатора, сообщение валидатора уходит клиенту как есть.
func Validation(err error) *AppError {
	return Wrap(err, ErrCodeValidation, err.Error())
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// As достаёт AppError из цепочки ошибок.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeNotFound
}

func IsUnauthorized(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeUnauthorized
}

func IsValidation(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeValidation
}

var (
	ErrUnauthorized       = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrInvalidCredentials = New(ErrCodeUnauthorized, "неверный email или пароль")
	ErrEmailTaken         = New(ErrCodeConflict, "email уже зарегистрирован")
	ErrUserNotFound       = New(ErrCodeNotFound, "пользователь не найден")
	ErrItemNotFound       = New(ErrCodeNotFound, "запись не найдена")
	ErrMessageNotFound    = New(ErrCodeNotFound, "сообщение не найдено")
	ErrFileNotFound       = New(ErrCodeNotFound, "файл не найден")
	ErrPersonalInfoAbsent = New(ErrCodeNotFound, "личная информация не найдена")
	ErrNoPortfolioOwner   = New(ErrCodeNotFound, "не удалось определить владельца портфолио")
	ErrNotificationsOff   = New(ErrCodeBadRequest, "email уведомления отключены в настройках")
	ErrMailerUnavailable  = New(ErrCodeBadRequest, "отправка почты не настроена")
)
