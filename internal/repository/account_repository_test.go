package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

func TestUserRepository_CreateAccountWithDefaults(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepository(conn)
	ctx := context.Background()

	user := &models.User{Email: "a@x.com", PasswordHash: "hash", Role: models.RoleAdmin}
	info := models.DefaultPersonalInfo(uuid.Nil, "a@x.com")
	require.NoError(t, users.CreateAccount(ctx, user, info, models.DefaultSettings(uuid.Nil)))

	byEmail, err := users.GetByEmail(ctx, "A@X.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	storedInfo, err := NewPersonalInfoRepository(conn).Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Your Name", storedInfo.Name)

	settings, err := NewSettingsRepository(conn).Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Portfolio", settings.SiteName)

	err = users.CreateAccount(ctx, &models.User{Email: "a@x.com", PasswordHash: "h", Role: models.RoleAdmin}, nil, nil)
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = users.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersonalInfoRepository_Upsert(t *testing.T) {
	conn := newTestDB(t)
	repo := NewPersonalInfoRepository(conn)
	ctx := context.Background()
	userID := createUser(t, conn, "u@x.com")

	_, err := repo.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	info := &models.PersonalInfo{
		UserID: userID, Name: "N", Title: "T", Description: "D", Email: "u@x.com",
		Location: "L", Availability: "now", AvailabilityStatus: models.AvailabilityBusy,
	}
	require.NoError(t, repo.Upsert(ctx, info))
	firstID := info.ID

	info2 := *info
	info2.ID = uuid.Nil
	info2.Bio = "bio"
	require.NoError(t, repo.Upsert(ctx, &info2))
	assert.Equal(t, firstID, info2.ID, "повторный upsert обновляет ту же строку")

	stored, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "bio", stored.Bio)
	assert.Equal(t, models.AvailabilityBusy, stored.AvailabilityStatus)
}

func TestSettingsRepository_SaveRoundTrip(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSettingsRepository(conn)
	ctx := context.Background()
	userID := createUser(t, conn, "u@x.com")

	_, err := repo.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	settings := models.DefaultSettings(userID)
	require.NoError(t, repo.Save(ctx, settings))
	assert.Nil(t, settings.SMTPHost)
	require.NotNil(t, settings.SMTPPort)
	assert.Equal(t, "587", *settings.SMTPPort)

	host := "smtp.example.com"
	settings.SMTPHost = &host
	settings.MaxRequestsPerMinute = 30
	settings.MaintenanceMode = true
	require.NoError(t, repo.Save(ctx, settings))

	stored, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored.SMTPHost)
	assert.Equal(t, host, *stored.SMTPHost)
	assert.Equal(t, 30, stored.MaxRequestsPerMinute)
	assert.True(t, stored.MaintenanceMode)
	assert.True(t, stored.EnableSEO)
}
