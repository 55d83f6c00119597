package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// PortfolioService собирает публичное представление портфолио и сохраняет его группами.
type PortfolioService struct {
	info        *PersonalInfoService
	skills      *SkillService
	projects    *ProjectService
	experience  *ExperienceService
	socialLinks *SocialLinkService
	fallback    uuid.UUID
}

// NewPortfolioService создаёт сервис. fallback используется для анонимного просмотра, uuid.Nil если не задан.
func NewPortfolioService(
	info *PersonalInfoService,
	skills *SkillService,
	projects *ProjectService,
	experience *ExperienceService,
	socialLinks *SocialLinkService,
	fallback uuid.UUID,
) *PortfolioService {
	return &PortfolioService{
		info:        info,
		skills:      skills,
		projects:    projects,
		experience:  experience,
		socialLinks: socialLinks,
		fallback:    fallback,
	}
}

// ResolveOwner возвращает идентичность, чьё портфолио показывать: вызывающего или запасную.
func (s *PortfolioService) ResolveOwner(caller uuid.UUID) (uuid.UUID, error) {
	if caller != uuid.Nil {
		return caller, nil
	}
	if s.fallback != uuid.Nil {
		return s.fallback, nil
	}
	return uuid.Nil, apperror.ErrNoPortfolioOwner
}

// GetPortfolio параллельно читает все группы владельца.
// Пустые группы остаются пустыми массивами, отсутствующая визитка даёт null.
func (s *PortfolioService) GetPortfolio(ctx context.Context, caller uuid.UUID) (*dto.PortfolioResponse, error) {
	owner, err := s.ResolveOwner(caller)
	if err != nil {
		return nil, err
	}

	var (
		info        *models.PersonalInfo
		skills      []models.Skill
		projects    []models.Project
		experience  []models.Experience
		socialLinks []models.SocialLink
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		info, err = s.info.Find(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		skills, err = s.skills.List(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.projects.List(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		experience, err = s.experience.List(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		socialLinks, err = s.socialLinks.List(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("portfolio service: %w", err)
	}

	return &dto.PortfolioResponse{
		PersonalInfo: info,
		Skills:       nonNil(skills),
		Projects:     nonNil(projects),
		Experience:   nonNil(experience),
		SocialLinks:  nonNil(socialLinks),
	}, nil
}

// SavePortfolio применяет замену для каждой присланной группы.
// Сначала проверяются все группы, затем каждая группа заменяется в своей транзакции.
func (s *PortfolioService) SavePortfolio(ctx context.Context, userID uuid.UUID, req dto.SavePortfolioRequest) (*dto.PortfolioResponse, error) {
	var (
		skills      []models.Skill
		projects    []models.Project
		experience  []models.Experience
		socialLinks []models.SocialLink
		err         error
	)

	if req.PersonalInfo != nil {
		if err := req.PersonalInfo.Validate(); err != nil {
			return nil, apperror.Validation(fmt.Errorf("personalInfo: %w", err))
		}
	}
	if req.Skills != nil {
		if skills, err = s.skills.Prepare(userID, req.Skills); err != nil {
			return nil, prefixValidation("skills", err)
		}
	}
	if req.Projects != nil {
		if projects, err = s.projects.Prepare(userID, req.Projects); err != nil {
			return nil, prefixValidation("projects", err)
		}
	}
	if req.Experience != nil {
		if experience, err = s.experience.Prepare(userID, req.Experience); err != nil {
			return nil, prefixValidation("experience", err)
		}
	}
	if req.SocialLinks != nil {
		if socialLinks, err = s.socialLinks.Prepare(userID, req.SocialLinks); err != nil {
			return nil, prefixValidation("socialLinks", err)
		}
	}

	if req.PersonalInfo != nil {
		if _, err := s.info.Save(ctx, userID, *req.PersonalInfo); err != nil {
			return nil, err
		}
	}
	if req.Skills != nil {
		if _, err := s.skills.ReplacePrepared(ctx, userID, skills); err != nil {
			return nil, err
		}
	}
	if req.Projects != nil {
		if _, err := s.projects.ReplacePrepared(ctx, userID, projects); err != nil {
			return nil, err
		}
	}
	if req.Experience != nil {
		if _, err := s.experience.ReplacePrepared(ctx, userID, experience); err != nil {
			return nil, err
		}
	}
	if req.SocialLinks != nil {
		if _, err := s.socialLinks.ReplacePrepared(ctx, userID, socialLinks); err != nil {
			return nil, err
		}
	}

	return s.GetPortfolio(ctx, userID)
}

func prefixValidation(group string, err error) error {
	if appErr, ok := apperror.As(err); ok {
		return apperror.Wrap(appErr.Cause, appErr.Code, group+": "+appErr.Message)
	}
	return err
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
