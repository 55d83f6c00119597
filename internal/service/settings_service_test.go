package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

func TestSettingsService_GetCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newSettingsRepo()
	svc := NewSettingsService(repo)
	userID := uuid.New()

	first, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "My Portfolio", first.SiteName)
	assert.Equal(t, 60, first.MaxRequestsPerMinute)
	assert.Equal(t, 1, repo.saves)

	second, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.saves)
}

func TestSettingsService_UpdateAppliesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(newSettingsRepo())
	userID := uuid.New()

	name := "Jane's Site"
	enabled := false
	got, err := svc.Update(ctx, userID, models.SettingsPatch{
		SiteName:                 &name,
		EnableEmailNotifications: &enabled,
	})
	require.NoError(t, err)
	assert.Equal(t, name, got.SiteName)
	assert.False(t, got.EnableEmailNotifications)
	// остальные поля остались значениями по умолчанию
	assert.Equal(t, "UTC", got.Timezone)
	assert.True(t, got.EnableSEO)
}

func TestSettingsService_UpdateValidates(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(newSettingsRepo())

	badURL := "not a url"
	_, err := svc.Update(ctx, uuid.New(), models.SettingsPatch{SiteURL: &badURL})
	assert.True(t, apperror.IsValidation(err))

	badEmail := "nope"
	_, err = svc.Update(ctx, uuid.New(), models.SettingsPatch{ContactEmail: &badEmail})
	assert.True(t, apperror.IsValidation(err))

	zero := 0
	_, err = svc.Update(ctx, uuid.New(), models.SettingsPatch{MaxRequestsPerMinute: &zero})
	assert.True(t, apperror.IsValidation(err))
}

func TestSettingsService_Reset(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(newSettingsRepo())
	userID := uuid.New()

	maintenance := true
	_, err := svc.Update(ctx, userID, models.SettingsPatch{MaintenanceMode: &maintenance})
	require.NoError(t, err)

	got, err := svc.Reset(ctx, userID)
	require.NoError(t, err)
	assert.False(t, got.MaintenanceMode)

	again, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.False(t, again.MaintenanceMode)
	assert.Equal(t, got.ID, again.ID)
}
