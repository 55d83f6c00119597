package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// Envelope is the uniform JSON success body
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// CurrentUserID extracts the authenticated user ID from Gin context
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// OptionalUserID returns uuid.Nil for anonymous requests
func OptionalUserID(c *gin.Context) uuid.UUID {
	userID, err := CurrentUserID(c)
	if err != nil {
		return uuid.Nil
	}
	return userID
}

// QueryUUID parses an optional UUID query parameter; ok is false when the parameter is absent
func QueryUUID(c *gin.Context, name string) (id uuid.UUID, ok bool, err error) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, false, nil
	}
	id, err = uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, true, apperror.New(apperror.ErrCodeBadRequest, "параметр "+name+" должен быть валидным UUID")
	}
	return id, true, nil
}

// BindJSON binds the request body and returns a BAD_REQUEST AppError on malformed JSON
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса")
	}
	return nil
}

// RespondData sends {"success":true,"data":...}
func RespondData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

// RespondOK sends the success envelope with 200
func RespondOK(c *gin.Context, data interface{}) {
	RespondData(c, http.StatusOK, data)
}

// RespondMessage sends a success envelope with a human readable message
func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// RespondError sends {"success":false,"error":message}
func RespondError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"success": false, "error": message})
}

// RespondAppError maps AppError to its status; any other error becomes a logged 500 with a generic message
func RespondAppError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
