package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// DefaultTokenTTL срок жизни токена администратора.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims полезная нагрузка токена: ровно userId, email и role плюс стандартные iat/exp.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager отвечает за выпуск и проверку JWT.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager создаёт менеджер токенов. Секрет обязателен и проверяется при загрузке конфигурации.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL возвращает срок жизни выпускаемых токенов.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue выпускает токен для пользователя.
func (m *TokenManager) Issue(user *models.User) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify проверяет подпись и срок действия. Любая ошибка даёт nil:
// просроченный, битый и поддельный токен для вызывающего неотличимы.
func (m *TokenManager) Verify(token string) *Claims {
	if token == "" {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID == uuid.Nil {
		return nil
	}
	return claims
}
