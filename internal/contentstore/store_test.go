package contentstore

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

func init() {
	logger.Discard()
}

type fakeAPI struct {
	authenticated bool
	portfolio     *dto.PortfolioResponse
	getErr        error
	saveErr       error
	saved         []dto.SavePortfolioRequest
}

func (f *fakeAPI) Authenticated() bool { return f.authenticated }

func (f *fakeAPI) GetPortfolio(ctx context.Context) (*dto.PortfolioResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.portfolio, nil
}

func (f *fakeAPI) SavePortfolio(ctx context.Context, req dto.SavePortfolioRequest) (*dto.PortfolioResponse, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, req)
	return &dto.PortfolioResponse{}, nil
}

func TestStore_DefaultsBeforeLoad(t *testing.T) {
	s := New(&fakeAPI{})

	snap := s.Snapshot()
	assert.Equal(t, "Alex Morgan", snap.PersonalInfo.Name)
	assert.Empty(t, snap.PersonalInfo.Bio)
	assert.Equal(t, dto.DemoAboutBio, snap.AboutBio)
	assert.NotEmpty(t, snap.Skills)
	assert.False(t, s.State().Loaded)

	require.NoError(t, s.Load(context.Background()))
	assert.True(t, s.State().Loaded)
	assert.Equal(t, snap, s.Snapshot())
}

func TestStore_LoadMergesAndKeepsDefaultsForEmptyGroups(t *testing.T) {
	skillID := uuid.New()
	api := &fakeAPI{
		authenticated: true,
		portfolio: &dto.PortfolioResponse{
			PersonalInfo: &models.PersonalInfo{
				Name:               "Jane Doe",
				Title:              "Backend Engineer",
				Email:              "jane@example.com",
				Bio:                "Первый абзац.\n\nВторой абзац.",
				AvailabilityStatus: "busy",
			},
			Skills:      []models.Skill{{ID: skillID, Name: "Go", Level: 95, Category: "Backend"}},
			Projects:    []models.Project{},
			Experience:  nil,
			SocialLinks: []models.SocialLink{},
		},
	}
	s := New(api)
	defaults := DefaultContent()

	require.NoError(t, s.Load(context.Background()))
	snap := s.Snapshot()

	assert.Equal(t, "Jane Doe", snap.PersonalInfo.Name)
	assert.Empty(t, snap.PersonalInfo.Bio)
	assert.Equal(t, []string{"Первый абзац.", "Второй абзац."}, snap.AboutBio)

	require.Len(t, snap.Skills, 1)
	assert.Equal(t, skillID.String(), snap.Skills[0].ID)
	require.NotNil(t, snap.Skills[0].Level)
	assert.Equal(t, 95, *snap.Skills[0].Level)

	// пустые группы не затирают значения по умолчанию
	assert.Equal(t, defaults.Projects, snap.Projects)
	assert.Equal(t, defaults.Experience, snap.Experience)
	assert.Equal(t, defaults.SocialLinks, snap.SocialLinks)
}

func TestStore_LoadErrorKeepsLocalContent(t *testing.T) {
	api := &fakeAPI{authenticated: true, getErr: errors.New("connection refused")}
	s := New(api)
	s.SetSkills([]dto.SkillRequest{{Name: "Elixir"}})

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "connection refused", s.State().LastError)
	assert.False(t, s.State().Loaded)
	assert.Equal(t, "Elixir", s.Snapshot().Skills[0].Name)
}

func TestStore_SaveSendsWholeSnapshotWithJoinedBio(t *testing.T) {
	api := &fakeAPI{authenticated: true}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(api)
	s.now = func() time.Time { return now }

	s.SetAboutBio([]string{"Один.", "Два."})
	s.SetProjects(nil)
	s.UpdatePersonalInfo(func(info *dto.PersonalInfoRequest) { info.Location = "Berlin" })

	require.NoError(t, s.Save(context.Background()))
	require.Len(t, api.saved, 1)
	req := api.saved[0]

	require.NotNil(t, req.PersonalInfo)
	assert.Equal(t, "Один.\n\nДва.", req.PersonalInfo.Bio)
	assert.Equal(t, "Berlin", req.PersonalInfo.Location)
	// очищенная группа уходит пустым массивом, а не null
	assert.NotNil(t, req.Projects)
	assert.Empty(t, req.Projects)
	assert.NotEmpty(t, req.Skills)

	state := s.State()
	assert.False(t, state.Saving)
	assert.Equal(t, now, state.LastSaved)
	assert.Empty(t, state.LastError)
	// локальный bio не хранится в визитке
	assert.Empty(t, s.Snapshot().PersonalInfo.Bio)
}

func TestStore_SaveFailureKeepsLocalEdits(t *testing.T) {
	api := &fakeAPI{authenticated: true, saveErr: errors.New("элемент 1: название обязательно")}
	s := New(api)
	s.SetSkills([]dto.SkillRequest{{Name: ""}})

	err := s.Save(context.Background())
	require.Error(t, err)

	state := s.State()
	assert.False(t, state.Saving)
	assert.True(t, state.LastSaved.IsZero())
	assert.Contains(t, state.LastError, "название обязательно")
	assert.Len(t, s.Snapshot().Skills, 1)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := New(&fakeAPI{})
	snap := s.Snapshot()
	snap.Skills[0].Name = "изменено"
	*snap.Skills[0].Level = 1
	snap.AboutBio[0] = "изменено"
	snap.Projects[0].Tags[0] = "изменено"
	snap.Experience[0].Technologies[0] = "изменено"

	again := s.Snapshot()
	assert.NotEqual(t, "изменено", again.Skills[0].Name)
	assert.NotEqual(t, 1, *again.Skills[0].Level)
	assert.NotEqual(t, "изменено", again.AboutBio[0])
	assert.NotEqual(t, "изменено", again.Projects[0].Tags[0])
	assert.NotEqual(t, "изменено", again.Experience[0].Technologies[0])
}

func TestStore_SettersDoNotShareNestedData(t *testing.T) {
	s := New(&fakeAPI{})
	level := 70
	skills := []dto.SkillRequest{{Name: "Go", Level: &level, Category: "Backend"}}
	projects := []dto.ProjectRequest{{Title: "CMS", Tags: []string{"a", "b"}}}
	experience := []dto.ExperienceRequest{{Company: "Acme", Technologies: []string{"Go"}}}

	s.SetSkills(skills)
	s.SetProjects(projects)
	s.SetExperience(experience)

	level = 5
	projects[0].Tags[0] = "изменено"
	experience[0].Technologies[0] = "изменено"

	snap := s.Snapshot()
	require.NotNil(t, snap.Skills[0].Level)
	assert.Equal(t, 70, *snap.Skills[0].Level)
	assert.Equal(t, []string{"a", "b"}, snap.Projects[0].Tags)
	assert.Equal(t, []string{"Go"}, snap.Experience[0].Technologies)
}

func TestStore_ResetRestoresDefaults(t *testing.T) {
	s := New(&fakeAPI{})
	s.SetSkills([]dto.SkillRequest{})
	s.SetAboutBio(nil)

	s.Reset()
	assert.Equal(t, DefaultContent(), s.Snapshot())
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	src := New(&fakeAPI{})
	src.SetSocialLinks([]dto.SocialLinkRequest{{Platform: "GitHub", URL: "https://github.com/example", Icon: "github"}})

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))

	dst := New(&fakeAPI{}, WithDefaults(func() Content { return Content{} }))
	require.NoError(t, dst.Import(&buf))
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestStore_ImportFillsMissingGroupsFromDefaults(t *testing.T) {
	s := New(&fakeAPI{})
	require.NoError(t, s.Import(bytes.NewBufferString(`{"skills":[{"name":"Zig","level":40,"category":"Systems"}]}`)))

	snap := s.Snapshot()
	require.Len(t, snap.Skills, 1)
	assert.Equal(t, "Zig", snap.Skills[0].Name)
	assert.Equal(t, DefaultContent().Projects, snap.Projects)
	assert.Equal(t, "Alex Morgan", snap.PersonalInfo.Name)

	assert.Error(t, s.Import(bytes.NewBufferString(`{not json`)))
}
