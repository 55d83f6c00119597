package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 0)
	user := &models.User{ID: uuid.New(), Email: "a@x.com", Role: models.RoleAdmin}

	token, exp, err := manager.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

	claims := manager.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
}

func TestTokenManager_RejectsExpiredAndTampered(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: uuid.New(), Email: "a@x.com", Role: models.RoleAdmin}

	token, _, err := manager.Issue(user)
	require.NoError(t, err)

	t.Run("после истечения", func(t *testing.T) {
		later := NewTokenManager("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		assert.Nil(t, later.Verify(token))
	})

	t.Run("обрезанный", func(t *testing.T) {
		assert.Nil(t, manager.Verify(token[:len(token)-3]))
	})

	t.Run("изменённый", func(t *testing.T) {
		other, _, err := manager.Issue(&models.User{ID: uuid.New(), Email: "b@x.com", Role: models.RoleAdmin})
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		otherParts := strings.Split(other, ".")
		require.Len(t, parts, 3)
		require.Len(t, otherParts, 3)

		forged := parts[0] + "." + otherParts[1] + "." + parts[2]
		assert.Nil(t, manager.Verify(forged))
	})

	t.Run("чужой секрет", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour)
		assert.Nil(t, other.Verify(token))
	})

	t.Run("пустой и мусор", func(t *testing.T) {
		assert.Nil(t, manager.Verify(""))
		assert.Nil(t, manager.Verify("not.a.jwt"))
	})
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	claims := Claims{
		UserID: uuid.New(),
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.Nil(t, manager.Verify(unsigned))

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.Nil(t, manager.Verify(hs512))
}
