package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/db"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/service"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
	"github.com/ignatzorin/portfolio-backend/internal/ws"
)

const testPassword = "secret123"

type testEnv struct {
	engine *gin.Engine
	conn   *sqlx.DB
	tokens *service.TokenManager
	users  *repository.UserRepository
	owner  *models.User
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Discard()
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	conn, err := db.NewSQLite(ctx, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(ctx, conn))

	env := &testEnv{
		conn:   conn,
		tokens: service.NewTokenManager("router-test-secret-0123456789abcdef", time.Hour),
		users:  repository.NewUserRepository(conn),
	}
	env.owner = env.createAccount(t, "owner@example.com")

	cfg := &config.Config{
		Env:             "development",
		UploadURLPrefix: "/uploads",
		LoginPath:       "/login",
		RateLimitLimit:  100,
		RateLimitPeriod: time.Minute,
	}

	uploads, err := storage.NewUploadStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	personalInfo := service.NewPersonalInfoService(repository.NewPersonalInfoRepository(conn))
	skills := service.NewSkillService(repository.NewSkillRepository(conn))
	projects := service.NewProjectService(repository.NewProjectRepository(conn))
	experience := service.NewExperienceService(repository.NewExperienceRepository(conn))
	socialLinks := service.NewSocialLinkService(repository.NewSocialLinkRepository(conn))
	settings := service.NewSettingsService(repository.NewSettingsRepository(conn))
	siteContent := service.NewSiteContentService(repository.NewSiteContentRepository(conn))
	auth := service.NewAuthService(env.users, env.tokens)
	portfolio := service.NewPortfolioService(personalInfo, skills, projects, experience, socialLinks, env.owner.ID)
	hubCtx, stopHub := context.WithCancel(context.Background())
	t.Cleanup(stopHub)
	hub := ws.NewHub(hubCtx)
	go hub.Run()

	messages := service.NewMessageService(repository.NewMessageRepository(conn), settings, nil, hub, env.owner.ID)
	upload := service.NewUploadService(repository.NewFileRepository(conn), uploads, cfg.UploadURLPrefix)

	env.engine = SetupRouter(cfg, Handlers{
		Auth:         handlers.NewAuthHandler(auth, personalInfo, env.tokens, false),
		PersonalInfo: handlers.NewPersonalInfoHandler(personalInfo),
		Portfolio:    handlers.NewPortfolioHandler(portfolio),
		Skills:       handlers.NewCollectionHandler(skills),
		Projects:     handlers.NewCollectionHandler(projects),
		Experience:   handlers.NewCollectionHandler(experience),
		SocialLinks:  handlers.NewCollectionHandler(socialLinks),
		Messages:     handlers.NewMessageHandler(messages),
		Settings:     handlers.NewSettingsHandler(settings),
		SiteContent:  handlers.NewSiteContentHandler(siteContent),
		Upload:       handlers.NewUploadHandler(upload, uploads),
		Health:       handlers.NewHealthHandler(conn),
		WS:           handlers.NewWSHandler(hub, env.tokens),
		Seed:         handlers.NewSeedHandler(auth, service.NewSeedService(auth, portfolio, siteContent)),
	}, env.tokens)

	return env
}

// createAccount создаёт администратора с быстрым bcrypt хешем.
func (e *testEnv) createAccount(t *testing.T, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Email: email, PasswordHash: string(hash), Role: models.RoleAdmin}
	info := models.DefaultPersonalInfo(uuid.Nil, email)
	require.NoError(t, e.users.CreateAccount(context.Background(), user, info, models.DefaultSettings(uuid.Nil)))
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := e.tokens.Issue(user)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "OWNER@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool        `json:"success"`
		User    models.User `json:"user"`
		Token   string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, env.owner.ID, resp.User.ID)
	assert.NotContains(t, w.Body.String(), "password")

	claims := env.tokens.Verify(resp.Token)
	require.NotNil(t, claims)
	assert.Equal(t, env.owner.ID, claims.UserID)

	cookie := w.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Equal(t, "admin_token", cookie[0].Name)
	assert.Equal(t, resp.Token, cookie[0].Value)
	assert.True(t, cookie[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie[0].SameSite)
	assert.Equal(t, "/", cookie[0].Path)

	w = env.do(t, http.MethodGet, "/api/auth/me", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		User         models.User          `json:"user"`
		PersonalInfo *models.PersonalInfo `json:"personalInfo"`
	}](t, w)
	assert.Equal(t, "owner@example.com", me.Data.User.Email)
	require.NotNil(t, me.Data.PersonalInfo)
	assert.Equal(t, "Your Name", me.Data.PersonalInfo.Name)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, decode[any](t, w).Success)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nope", "password": testPassword})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_ShortWrongPasswordIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode[any](t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "неверный email или пароль", body.Error)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, target string }{
		{http.MethodGet, "/api/skills"},
		{http.MethodPut, "/api/projects"},
		{http.MethodGet, "/api/messages"},
		{http.MethodGet, "/api/settings"},
		{http.MethodPost, "/api/site-content"},
		{http.MethodPost, "/api/upload"},
		{http.MethodPost, "/api/portfolio"},
	} {
		w := env.do(t, route.method, route.target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.target)
		assert.JSONEq(t, `{"success":false,"error":"требуется авторизация"}`, w.Body.String())
	}
}

func TestSkills_BulkReplace(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	w := env.do(t, http.MethodPut, "/api/skills", token, []map[string]any{
		{"name": "Go", "level": 80, "category": "Backend"},
		{"name": "Rust", "level": 60, "category": "Backend"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/skills", token, nil)
	skills := decode[[]models.Skill](t, w).Data
	require.Len(t, skills, 2)
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, "Rust", skills[1].Name)
	assert.NotEqual(t, uuid.Nil, skills[0].ID)

	w = env.do(t, http.MethodPut, "/api/skills", token, []map[string]any{
		{"name": "Go", "level": 90, "category": "Backend"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	skills = decode[[]models.Skill](t, env.do(t, http.MethodGet, "/api/skills", token, nil)).Data
	require.Len(t, skills, 1)
	assert.Equal(t, 90, skills[0].Level)

	// объект без ?id не принимается как замена коллекции
	w = env.do(t, http.MethodPut, "/api/skills", token, map[string]any{"name": "Go", "level": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// пустой массив очищает коллекцию
	w = env.do(t, http.MethodPut, "/api/skills", token, "[]")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Skill](t, w).Data)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestSkills_SingleItemOperationsAreOwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.tokenFor(t, env.owner)
	intruder := env.createAccount(t, "intruder@example.com")
	intruderToken := env.tokenFor(t, intruder)

	w := env.do(t, http.MethodPost, "/api/skills", ownerToken, map[string]any{"name": "Go", "level": 80, "category": "Backend"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	skill := decode[models.Skill](t, w).Data

	w = env.do(t, http.MethodDelete, "/api/skills?id="+skill.ID.String(), intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, "/api/skills?id="+skill.ID.String(), intruderToken, map[string]any{"name": "Hacked", "level": 1, "category": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	skills := decode[[]models.Skill](t, env.do(t, http.MethodGet, "/api/skills", ownerToken, nil)).Data
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)

	assert.Empty(t, decode[[]models.Skill](t, env.do(t, http.MethodGet, "/api/skills", intruderToken, nil)).Data)

	w = env.do(t, http.MethodDelete, "/api/skills", ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/skills?id="+skill.ID.String(), ownerToken, map[string]any{"name": "Go", "level": 95, "category": "Backend"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 95, decode[models.Skill](t, w).Data.Level)

	w = env.do(t, http.MethodDelete, "/api/skills?id="+skill.ID.String(), ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjects_TagsAreFlattened(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	w := env.do(t, http.MethodPut, "/api/projects", token, []map[string]any{{
		"title":       "Portfolio",
		"description": "Personal site",
		"tags":        []string{"a", "b"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/projects", token, nil)
	projects := decode[[]struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}](t, w).Data
	require.Len(t, projects, 1)
	assert.Equal(t, []string{"a", "b"}, projects[0].Tags)
}

func TestExperience_InvalidItemLeavesCollectionUnchanged(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	valid := map[string]any{
		"position":     "Developer",
		"company":      "Northwind",
		"duration":     "2020 - 2023",
		"description":  "Built things",
		"technologies": []string{"Go"},
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/api/experience", token, []map[string]any{valid}).Code)

	broken := map[string]any{"position": "Lead", "duration": "2023 - now", "description": "Led things"}
	w := env.do(t, http.MethodPut, "/api/experience", token, []map[string]any{valid, broken})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode[any](t, w).Success)

	items := decode[[]struct {
		Company      string   `json:"company"`
		Technologies []string `json:"technologies"`
	}](t, env.do(t, http.MethodGet, "/api/experience", token, nil)).Data
	require.Len(t, items, 1)
	assert.Equal(t, "Northwind", items[0].Company)
	assert.Equal(t, []string{"Go"}, items[0].Technologies)
}

func TestPortfolio_PublicReadUsesFallbackOwner(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	w := env.do(t, http.MethodPost, "/api/portfolio", token, map[string]any{
		"skills":      []map[string]any{{"name": "Go", "level": 80, "category": "Backend"}},
		"socialLinks": []map[string]any{{"platform": "GitHub", "url": "https://github.com/example", "icon": "Github"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/portfolio", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		PersonalInfo *models.PersonalInfo `json:"personalInfo"`
		Skills       []models.Skill       `json:"skills"`
		Projects     []models.Project     `json:"projects"`
		SocialLinks  []models.SocialLink  `json:"socialLinks"`
	}](t, w).Data
	require.NotNil(t, got.PersonalInfo)
	assert.Equal(t, "Your Name", got.PersonalInfo.Name)
	assert.Len(t, got.Skills, 1)
	assert.Len(t, got.SocialLinks, 1)
	assert.Contains(t, w.Body.String(), `"projects":[]`)
}

func TestUpload_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="a.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	uploaded := decode[struct {
		ID           string `json:"id"`
		URL          string `json:"url"`
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
		Mimetype     string `json:"mimetype"`
	}](t, w).Data
	assert.Equal(t, "a.png", uploaded.OriginalName)
	assert.Equal(t, int64(3), uploaded.Size)
	assert.Equal(t, "image/png", uploaded.Mimetype)
	assert.Equal(t, "/uploads/"+uploaded.Filename, uploaded.URL)

	w = env.do(t, http.MethodGet, uploaded.URL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000", w.Header().Get("Cache-Control"))

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/uploads/missing.png", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/uploads/../go.mod", "", nil).Code)

	w = env.do(t, http.MethodDelete, "/api/upload?id="+uploaded.Filename, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, uploaded.URL, "", nil).Code)
}

func TestMessages_ContactFormAndAdminFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	w := env.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hello",
		"message": "Nice site",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/contact", "", map[string]string{"name": "Visitor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	messages := decode[[]models.Message](t, env.do(t, http.MethodGet, "/api/messages?status=unread", token, nil)).Data
	require.Len(t, messages, 1)
	assert.Equal(t, "Hello", messages[0].Subject)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/messages?starred=maybe", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/messages?status=spam", token, nil).Code)

	target := fmt.Sprintf("/api/messages?id=%s", messages[0].ID)
	w = env.do(t, http.MethodPut, target, token, map[string]any{"status": "read", "starred": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Message](t, w).Data
	assert.Equal(t, "read", updated.Status)
	assert.True(t, updated.Starred)

	// почта не настроена: ответ невозможен, но это не 500
	w = env.do(t, http.MethodPost, "/api/messages/reply", token, map[string]string{
		"messageId": messages[0].ID.String(),
		"reply":     "Thanks!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	intruder := env.createAccount(t, "intruder@example.com")
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, target, env.tokenFor(t, intruder), nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, target, token, nil).Code)
}

func TestSettingsAndSiteContent(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	settings := decode[models.Settings](t, env.do(t, http.MethodGet, "/api/settings", token, nil)).Data
	assert.Equal(t, "My Portfolio", settings.SiteName)

	w := env.do(t, http.MethodPut, "/api/settings", token, map[string]any{"siteUrl": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/settings", token, map[string]any{"siteName": "Alex"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Alex", decode[models.Settings](t, w).Data.SiteName)

	w = env.do(t, http.MethodPost, "/api/settings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "My Portfolio", decode[models.Settings](t, w).Data.SiteName)

	w = env.do(t, http.MethodPut, "/api/site-content", token, []map[string]string{
		{"section": "hero", "key": "title", "value": "Hi"},
		{"section": "footer", "key": "note", "value": "Bye"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/site-content?section=hero", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]map[string]string{"hero": {"title": "Hi"}}, decode[map[string]map[string]string](t, w).Data)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodDelete, "/api/site-content?section=hero", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/site-content?section=hero&key=nope", token, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/site-content?section=hero&key=title", token, nil).Code)
}

func TestPersonalInfo_RejectsUnknownAvailability(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	req := map[string]string{
		"name":               "Alex",
		"title":              "Developer",
		"description":        "Builds things",
		"email":              "alex@example.com",
		"location":           "Remote",
		"availability":       "Open",
		"availabilityStatus": "sleeping",
	}
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, "/api/personal-info", token, req).Code)

	req["availabilityStatus"] = "busy"
	w := env.do(t, http.MethodPut, "/api/personal-info", token, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	info := decode[models.PersonalInfo](t, env.do(t, http.MethodGet, "/api/personal-info", token, nil)).Data
	assert.Equal(t, "busy", info.AvailabilityStatus)
}

func TestSeed_LoadsDemoContentForCaller(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.owner)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/seed", token, nil).Code)

	skills := decode[[]models.Skill](t, env.do(t, http.MethodGet, "/api/skills", token, nil)).Data
	assert.NotEmpty(t, skills)

	content := decode[map[string]map[string]string](t, env.do(t, http.MethodGet, "/api/site-content", "", nil)).Data
	assert.Contains(t, content, "hero")
}

func TestWebSocket_PushesNewContactMessages(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.engine)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+env.tokenFor(t, env.owner), nil)
	require.NoError(t, err)
	defer conn.Close()

	// регистрация в хабе асинхронна: повторяем отправку, пока событие не придёт
	received := make(chan []byte, 1)
	go func() {
		_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		if _, raw, err := conn.ReadMessage(); err == nil {
			received <- raw
		}
		close(received)
	}()

	deadline := time.After(3 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		w := env.do(t, http.MethodPost, "/api/contact", "", map[string]string{
			"name":    "Visitor",
			"email":   "visitor@example.com",
			"subject": "Live",
			"message": "Ping",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		select {
		case raw, ok := <-received:
			require.True(t, ok, "соединение закрыто без события")
			var event struct {
				Type string         `json:"type"`
				Data models.Message `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &event))
			assert.Equal(t, "message.created", event.Type)
			assert.Equal(t, "Live", event.Data.Subject)
			return
		case <-deadline:
			t.Fatal("событие message.created не пришло")
		case <-ticker.C:
		}
	}
}
