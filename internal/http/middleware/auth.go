package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
	ContextEmailKey  = "email"
)

// AdminCookieName cookie с токеном для страниц админки.
const AdminCookieName = "admin_token"

// AuthMiddleware проверяет Bearer токен API запросов.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := tokens.Verify(bearerToken(c.Request))
		if claims == nil || claims.UserID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "требуется авторизация",
			})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth кладёт пользователя в контекст, если токен валиден. Анонимный запрос не прерывается.
func OptionalAuth(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := tokens.Verify(bearerToken(c.Request)); claims != nil && claims.UserID != uuid.Nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// AdminPageGate защищает страницы админки. Токен берётся из cookie admin_token или Bearer заголовка.
// Без токена редирект на loginPath?redirect=<путь>, чужая роль отправляет на loginPath без 403.
// Пути из publicPaths (например страница входа) пропускаются без проверки.
func AdminPageGate(tokens *service.TokenManager, loginPath string, publicPaths ...string) gin.HandlerFunc {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := public[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		claims := pageClaims(c, tokens)
		if claims == nil || claims.UserID == uuid.Nil {
			target := loginPath + "?redirect=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		if claims.Role != models.RoleAdmin {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// pageClaims проверяет Bearer заголовок, а если он отсутствует или не проходит проверку, cookie admin_token.
func pageClaims(c *gin.Context, tokens *service.TokenManager) *service.Claims {
	if raw := bearerToken(c.Request); raw != "" {
		if claims := tokens.Verify(raw); claims != nil && claims.UserID != uuid.Nil {
			return claims
		}
	}
	if cookie, err := c.Cookie(AdminCookieName); err == nil {
		return tokens.Verify(cookie)
	}
	return nil
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

func setClaims(c *gin.Context, claims *service.Claims) {
	c.Set(ContextUserIDKey, claims.UserID)
	c.Set(ContextRoleKey, claims.Role)
	c.Set(ContextEmailKey, claims.Email)
}
