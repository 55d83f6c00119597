package contentstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// API удалённая сторона хранилища. *client.Client подходит напрямую.
type API interface {
	Authenticated() bool
	GetPortfolio(ctx context.Context) (*dto.PortfolioResponse, error)
	SavePortfolio(ctx context.Context, req dto.SavePortfolioRequest) (*dto.PortfolioResponse, error)
}

// Content редактируемый снимок содержимого сайта.
// AboutBio абзацы раздела "обо мне", на сервере хранятся в personalInfo.bio.
type Content struct {
	PersonalInfo dto.PersonalInfoRequest `json:"personalInfo"`
	AboutBio     []string                `json:"aboutBio"`
	Skills       []dto.SkillRequest      `json:"skills"`
	Projects     []dto.ProjectRequest    `json:"projects"`
	Experience   []dto.ExperienceRequest `json:"experience"`
	SocialLinks  []dto.SocialLinkRequest `json:"socialLinks"`
}

// State служебное состояние хранилища.
type State struct {
	Loaded    bool      `json:"loaded"`
	Saving    bool      `json:"saving"`
	LastSaved time.Time `json:"lastSaved"`
	LastError string    `json:"lastError,omitempty"`
}

// Store клиентское хранилище содержимого. До Load отдаёт значения по умолчанию,
// пустые группы с сервера тоже заменяются значениями по умолчанию.
type Store struct {
	api      API
	defaults func() Content

	mu      sync.RWMutex
	content Content
	state   State
	saving  int
	now     func() time.Time
}

// Option настраивает Store.
type Option func(*Store)

// WithDefaults подменяет содержимое по умолчанию.
func WithDefaults(defaults func() Content) Option {
	return func(s *Store) { s.defaults = defaults }
}

// New создаёт хранилище поверх api.
func New(api API, opts ...Option) *Store {
	s := &Store{
		api:      api,
		defaults: DefaultContent,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.content = s.defaults()
	return s
}

// DefaultContent демо-содержимое для первого рендера.
func DefaultContent() Content {
	demo := dto.DemoPortfolio()
	info := *demo.PersonalInfo
	info.Bio = ""

	return Content{
		PersonalInfo: info,
		AboutBio:     append([]string(nil), dto.DemoAboutBio...),
		Skills:       demo.Skills,
		Projects:     demo.Projects,
		Experience:   demo.Experience,
		SocialLinks:  demo.SocialLinks,
	}
}

// Load загружает содержимое с сервера. Без токена остаются значения по умолчанию.
// При ошибке локальное содержимое не меняется.
func (s *Store) Load(ctx context.Context) error {
	if !s.api.Authenticated() {
		s.mu.Lock()
		s.state.Loaded = true
		s.mu.Unlock()
		return nil
	}

	remote, err := s.api.GetPortfolio(ctx)
	if err != nil {
		s.mu.Lock()
		s.state.LastError = err.Error()
		s.mu.Unlock()
		return fmt.Errorf("contentstore: загрузка: %w", err)
	}

	merged := merge(s.defaults(), remote)

	s.mu.Lock()
	s.content = merged
	s.state.Loaded = true
	s.state.LastError = ""
	s.mu.Unlock()
	return nil
}

// Save отправляет весь снимок на сервер. Параллельные Save не координируются:
// LastSaved выставляет ответ, пришедший последним.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	req := toRequest(s.content)
	s.saving++
	s.state.Saving = true
	s.mu.Unlock()

	_, err := s.api.SavePortfolio(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving--
	s.state.Saving = s.saving > 0
	if err != nil {
		s.state.LastError = err.Error()
		logger.Log.WithField("error", err.Error()).Warn("contentstore: сохранение не удалось, локальные изменения сохранены")
		return fmt.Errorf("contentstore: сохранение: %w", err)
	}
	s.state.LastSaved = s.now()
	s.state.LastError = ""
	return nil
}

// UpdatePersonalInfo изменяет визитку через fn.
func (s *Store) UpdatePersonalInfo(fn func(info *dto.PersonalInfoRequest)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.content.PersonalInfo)
}

// SetAboutBio заменяет абзацы раздела "обо мне".
func (s *Store) SetAboutBio(paragraphs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.AboutBio = append([]string(nil), paragraphs...)
}

// SetSkills заменяет навыки.
func (s *Store) SetSkills(skills []dto.SkillRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Skills = cloneEach(skills, cloneSkill)
}

// SetProjects заменяет проекты.
func (s *Store) SetProjects(projects []dto.ProjectRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Projects = cloneEach(projects, cloneProject)
}

// SetExperience заменяет опыт работы.
func (s *Store) SetExperience(experience []dto.ExperienceRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Experience = cloneEach(experience, cloneExperience)
}

// SetSocialLinks заменяет ссылки на соцсети.
func (s *Store) SetSocialLinks(links []dto.SocialLinkRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.SocialLinks = cloneSlice(links)
}

// Reset возвращает содержимое по умолчанию. Служебное состояние не сбрасывается.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = s.defaults()
}

// Snapshot возвращает копию текущего содержимого.
func (s *Store) Snapshot() Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneContent(s.content)
}

// State возвращает служебное состояние.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Export пишет снимок в w как JSON.
func (s *Store) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Snapshot())
}

// Import заменяет содержимое снимком из r. Отсутствующие в файле группы берутся по умолчанию.
func (s *Store) Import(r io.Reader) error {
	var in Content
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("contentstore: некорректный снимок: %w", err)
	}

	defaults := s.defaults()
	if in.AboutBio == nil {
		in.AboutBio = defaults.AboutBio
	}
	if in.Skills == nil {
		in.Skills = defaults.Skills
	}
	if in.Projects == nil {
		in.Projects = defaults.Projects
	}
	if in.Experience == nil {
		in.Experience = defaults.Experience
	}
	if in.SocialLinks == nil {
		in.SocialLinks = defaults.SocialLinks
	}
	if in.PersonalInfo == (dto.PersonalInfoRequest{}) {
		in.PersonalInfo = defaults.PersonalInfo
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = in
	return nil
}

// merge накладывает ответ сервера на значения по умолчанию. Пустая группа не затирает значения по умолчанию.
func merge(defaults Content, remote *dto.PortfolioResponse) Content {
	out := defaults

	if remote.PersonalInfo != nil {
		out.PersonalInfo = personalInfoRequest(remote.PersonalInfo)
		if bio := dto.SplitBio(remote.PersonalInfo.Bio); len(bio) > 0 {
			out.AboutBio = bio
		}
		out.PersonalInfo.Bio = ""
	}
	if len(remote.Skills) > 0 {
		out.Skills = mapSlice(remote.Skills, skillRequest)
	}
	if len(remote.Projects) > 0 {
		out.Projects = mapSlice(remote.Projects, projectRequest)
	}
	if len(remote.Experience) > 0 {
		out.Experience = mapSlice(remote.Experience, experienceRequest)
	}
	if len(remote.SocialLinks) > 0 {
		out.SocialLinks = mapSlice(remote.SocialLinks, socialLinkRequest)
	}
	return out
}

func toRequest(c Content) dto.SavePortfolioRequest {
	info := c.PersonalInfo
	info.Bio = dto.JoinBio(c.AboutBio)

	return dto.SavePortfolioRequest{
		PersonalInfo: &info,
		Skills:       nonNil(cloneEach(c.Skills, cloneSkill)),
		Projects:     nonNil(cloneEach(c.Projects, cloneProject)),
		Experience:   nonNil(cloneEach(c.Experience, cloneExperience)),
		SocialLinks:  nonNil(cloneSlice(c.SocialLinks)),
	}
}

func personalInfoRequest(p *models.PersonalInfo) dto.PersonalInfoRequest {
	return dto.PersonalInfoRequest{
		Name:               p.Name,
		Title:              p.Title,
		Description:        p.Description,
		Email:              p.Email,
		Location:           p.Location,
		Phone:              p.Phone,
		Bio:                p.Bio,
		Avatar:             p.Avatar,
		Availability:       p.Availability,
		AvailabilityStatus: p.AvailabilityStatus,
	}
}

func skillRequest(m models.Skill) dto.SkillRequest {
	level := m.Level
	return dto.SkillRequest{ID: m.ID.String(), Name: m.Name, Level: &level, Category: m.Category}
}

func projectRequest(m models.Project) dto.ProjectRequest {
	return dto.ProjectRequest{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: m.Description,
		Image:       m.Image,
		DemoURL:     m.DemoURL,
		RepoURL:     m.RepoURL,
		Featured:    m.Featured,
		Tags:        append([]string{}, m.Tags...),
	}
}

func experienceRequest(m models.Experience) dto.ExperienceRequest {
	return dto.ExperienceRequest{
		ID:           m.ID.String(),
		Company:      m.Company,
		Position:     m.Position,
		Duration:     m.Duration,
		Description:  m.Description,
		Technologies: append([]string{}, m.Technologies...),
	}
}

func socialLinkRequest(m models.SocialLink) dto.SocialLinkRequest {
	return dto.SocialLinkRequest{ID: m.ID.String(), Platform: m.Platform, URL: m.URL, Icon: m.Icon}
}

func mapSlice[From, To any](in []From, fn func(From) To) []To {
	out := make([]To, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

// cloneEach копирует срез поэлементно, чтобы вложенные срезы и указатели не разделялись с вызывающим.
func cloneEach[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func cloneSkill(v dto.SkillRequest) dto.SkillRequest {
	if v.Level != nil {
		level := *v.Level
		v.Level = &level
	}
	return v
}

func cloneProject(v dto.ProjectRequest) dto.ProjectRequest {
	v.Tags = cloneSlice(v.Tags)
	return v
}

func cloneExperience(v dto.ExperienceRequest) dto.ExperienceRequest {
	v.Technologies = cloneSlice(v.Technologies)
	return v
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func cloneContent(c Content) Content {
	return Content{
		PersonalInfo: c.PersonalInfo,
		AboutBio:     cloneSlice(c.AboutBio),
		Skills:       cloneEach(c.Skills, cloneSkill),
		Projects:     cloneEach(c.Projects, cloneProject),
		Experience:   cloneEach(c.Experience, cloneExperience),
		SocialLinks:  cloneSlice(c.SocialLinks),
	}
}
