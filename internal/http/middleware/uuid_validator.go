package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireQueryUUID проверяет, что query параметр задан и является UUID.
// Использование: api.DELETE("/skills", RequireQueryUUID("id"), handler.Delete)
func RequireQueryUUID(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query(name)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "параметр " + name + " обязателен",
			})
			return
		}

		if _, err := uuid.Parse(raw); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "параметр " + name + " должен быть валидным UUID",
			})
			return
		}

		c.Next()
	}
}
