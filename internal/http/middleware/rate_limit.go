package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

// RateLimitMiddleware ограничивает количество запросов с одного IP.
// name разделяет счётчики разных групп маршрутов (логин, форма контактов).
func RateLimitMiddleware(name string, limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = time.Minute
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: period,
		Limit:  limit,
	})

	return func(c *gin.Context) {
		lctx, err := instance.Get(c, name+":"+c.ClientIP())
		if err != nil {
			logger.Log.WithField("error", err.Error()).Error("rate limiter недоступен")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   internalErrorMessage,
			})
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", lctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", lctx.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", lctx.Reset))

		if lctx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "слишком много запросов, попробуйте позже",
			})
			return
		}

		c.Next()
	}
}
