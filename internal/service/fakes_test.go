package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
)

// memCollection хранит коллекцию в памяти и повторяет семантику владельца настоящих репозиториев.
type memCollection[M any] struct {
	mu           sync.Mutex
	items        []M
	id           func(*M) *uuid.UUID
	owner        func(*M) uuid.UUID
	replaceErr   error
	replaceCalls int
}

func (r *memCollection[M]) List(ctx context.Context, userID uuid.UUID) ([]M, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []M
	for _, item := range r.items {
		if r.owner(&item) == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memCollection[M]) Create(ctx context.Context, item *M) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if *r.id(item) == uuid.Nil {
		*r.id(item) = uuid.New()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *memCollection[M]) Update(ctx context.Context, item *M) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if *r.id(&r.items[i]) == *r.id(item) && r.owner(&r.items[i]) == r.owner(item) {
			r.items[i] = *item
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memCollection[M]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if *r.id(&r.items[i]) == id && r.owner(&r.items[i]) == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memCollection[M]) ReplaceAll(ctx context.Context, userID uuid.UUID, items []M) ([]M, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.replaceCalls++
	if r.replaceErr != nil {
		return nil, r.replaceErr
	}

	kept := r.items[:0:0]
	for _, item := range r.items {
		if r.owner(&item) != userID {
			kept = append(kept, item)
		}
	}
	out := make([]M, 0, len(items))
	for _, item := range items {
		if *r.id(&item) == uuid.Nil {
			*r.id(&item) = uuid.New()
		}
		kept = append(kept, item)
		out = append(out, item)
	}
	r.items = kept
	return out, nil
}

func newSkillRepo() *memCollection[models.Skill] {
	return &memCollection[models.Skill]{
		id:    func(s *models.Skill) *uuid.UUID { return &s.ID },
		owner: func(s *models.Skill) uuid.UUID { return s.UserID },
	}
}

func newProjectRepo() *memCollection[models.Project] {
	return &memCollection[models.Project]{
		id:    func(p *models.Project) *uuid.UUID { return &p.ID },
		owner: func(p *models.Project) uuid.UUID { return p.UserID },
	}
}

func newExperienceRepo() *memCollection[models.Experience] {
	return &memCollection[models.Experience]{
		id:    func(e *models.Experience) *uuid.UUID { return &e.ID },
		owner: func(e *models.Experience) uuid.UUID { return e.UserID },
	}
}

func newSocialLinkRepo() *memCollection[models.SocialLink] {
	return &memCollection[models.SocialLink]{
		id:    func(l *models.SocialLink) *uuid.UUID { return &l.ID },
		owner: func(l *models.SocialLink) uuid.UUID { return l.UserID },
	}
}

type memPersonalInfoRepo struct {
	infos map[uuid.UUID]*models.PersonalInfo
}

func newPersonalInfoRepo() *memPersonalInfoRepo {
	return &memPersonalInfoRepo{infos: make(map[uuid.UUID]*models.PersonalInfo)}
}

func (r *memPersonalInfoRepo) Get(ctx context.Context, userID uuid.UUID) (*models.PersonalInfo, error) {
	info, ok := r.infos[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *info
	return &cp, nil
}

func (r *memPersonalInfoRepo) Upsert(ctx context.Context, info *models.PersonalInfo) error {
	if existing, ok := r.infos[info.UserID]; ok {
		info.ID = existing.ID
	} else {
		info.ID = uuid.New()
	}
	cp := *info
	r.infos[info.UserID] = &cp
	return nil
}

type memSettingsRepo struct {
	settings map[uuid.UUID]*models.Settings
	saves    int
}

func newSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{settings: make(map[uuid.UUID]*models.Settings)}
}

func (r *memSettingsRepo) Get(ctx context.Context, userID uuid.UUID) (*models.Settings, error) {
	s, ok := r.settings[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSettingsRepo) Save(ctx context.Context, s *models.Settings) error {
	r.saves++
	if existing, ok := r.settings[s.UserID]; ok {
		s.ID = existing.ID
	} else if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.settings[s.UserID] = &cp
	return nil
}

type portfolioFixture struct {
	info        *memPersonalInfoRepo
	skills      *memCollection[models.Skill]
	projects    *memCollection[models.Project]
	experience  *memCollection[models.Experience]
	socialLinks *memCollection[models.SocialLink]
	svc         *PortfolioService
}

func newPortfolioFixture(fallback uuid.UUID) *portfolioFixture {
	f := &portfolioFixture{
		info:        newPersonalInfoRepo(),
		skills:      newSkillRepo(),
		projects:    newProjectRepo(),
		experience:  newExperienceRepo(),
		socialLinks: newSocialLinkRepo(),
	}
	f.svc = NewPortfolioService(
		NewPersonalInfoService(f.info),
		NewSkillService(f.skills),
		NewProjectService(f.projects),
		NewExperienceService(f.experience),
		NewSocialLinkService(f.socialLinks),
		fallback,
	)
	return f
}

func intPtr(v int) *int { return &v }
