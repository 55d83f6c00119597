package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

const internalErrorMessage = "внутренняя ошибка сервера"

// ErrorHandler перехватывает panic и ошибки, добавленные через c.Error, если ответ ещё не отправлен.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithFields(logrus.Fields{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
					"panic":  fmt.Sprint(r),
					"stack":  string(debug.Stack()),
				}).Error("panic в обработчике запроса")
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"success": false,
						"error":   internalErrorMessage,
					})
				}
			}
		}()

		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError отправляет ошибку в конверте {success:false,error}.
// AppError отдаёт свой статус и сообщение, всё остальное маскируется под 500 и пишется в лог.
func WriteError(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logRequestError(c, err)
		}
		c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
			"success": false,
			"error":   appErr.Message,
		})
		return
	}

	logRequestError(c, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   internalErrorMessage,
	})
}

func logRequestError(c *gin.Context, err error) {
	fields := logrus.Fields{
		"error":  err.Error(),
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}
	if userID, ok := c.Get(ContextUserIDKey); ok {
		fields["user_id"] = userID
	}
	logger.Log.WithFields(fields).Error("Request error")
}
