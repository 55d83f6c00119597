package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
)

// CollectionRepository хранилище спискового ресурса владельца (навыки, проекты, опыт, соцсети).
type CollectionRepository[M any] interface {
	List(ctx context.Context, userID uuid.UUID) ([]M, error)
	Create(ctx context.Context, item *M) error
	Update(ctx context.Context, item *M) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ReplaceAll(ctx context.Context, userID uuid.UUID, items []M) ([]M, error)
}

// CollectionInput входной элемент спискового ресурса.
type CollectionInput[M any] interface {
	Validate() error
	SubmittedID() uuid.UUID
	ToModel(id, userID uuid.UUID) M
}

// CollectionService общая логика списковых ресурсов: одиночные create/update/delete
// и полная замена коллекции. Все элементы проверяются до первого изменения.
type CollectionService[M any, In CollectionInput[M]] struct {
	repo     CollectionRepository[M]
	notFound *apperror.AppError
}

// NewCollectionService создаёт сервис спискового ресурса.
func NewCollectionService[M any, In CollectionInput[M]](repo CollectionRepository[M], notFoundMessage string) *CollectionService[M, In] {
	return &CollectionService[M, In]{
		repo:     repo,
		notFound: apperror.New(apperror.ErrCodeNotFound, notFoundMessage),
	}
}

type (
	SkillService      = CollectionService[models.Skill, dto.SkillRequest]
	ProjectService    = CollectionService[models.Project, dto.ProjectRequest]
	ExperienceService = CollectionService[models.Experience, dto.ExperienceRequest]
	SocialLinkService = CollectionService[models.SocialLink, dto.SocialLinkRequest]
)

func NewSkillService(repo CollectionRepository[models.Skill]) *SkillService {
	return NewCollectionService[models.Skill, dto.SkillRequest](repo, "навык не найден")
}

func NewProjectService(repo CollectionRepository[models.Project]) *ProjectService {
	return NewCollectionService[models.Project, dto.ProjectRequest](repo, "проект не найден")
}

func NewExperienceService(repo CollectionRepository[models.Experience]) *ExperienceService {
	return NewCollectionService[models.Experience, dto.ExperienceRequest](repo, "место работы не найдено")
}

func NewSocialLinkService(repo CollectionRepository[models.SocialLink]) *SocialLinkService {
	return NewCollectionService[models.SocialLink, dto.SocialLinkRequest](repo, "ссылка не найдена")
}

// List возвращает коллекцию владельца.
func (s *CollectionService[M, In]) List(ctx context.Context, userID uuid.UUID) ([]M, error) {
	return s.repo.List(ctx, userID)
}

// Create проверяет и добавляет один элемент.
func (s *CollectionService[M, In]) Create(ctx context.Context, userID uuid.UUID, in In) (*M, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	item := in.ToModel(uuid.Nil, userID)
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update проверяет и меняет один элемент владельца. Чужой элемент неотличим от отсутствующего.
func (s *CollectionService[M, In]) Update(ctx context.Context, userID, id uuid.UUID, in In) (*M, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	item := in.ToModel(id, userID)
	if err := s.repo.Update(ctx, &item); err != nil {
		return nil, s.translate(err)
	}
	return &item, nil
}

// Delete удаляет один элемент владельца.
func (s *CollectionService[M, In]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.translate(s.repo.Delete(ctx, userID, id))
}

// Replace атомарно заменяет всю коллекцию владельца.
// Ошибка валидации любого элемента отменяет операцию до удаления.
func (s *CollectionService[M, In]) Replace(ctx context.Context, userID uuid.UUID, inputs []In) ([]M, error) {
	items, err := s.Prepare(userID, inputs)
	if err != nil {
		return nil, err
	}
	return s.repo.ReplaceAll(ctx, userID, items)
}

// Prepare проверяет все элементы и строит модели, ничего не записывая.
func (s *CollectionService[M, In]) Prepare(userID uuid.UUID, inputs []In) ([]M, error) {
	items := make([]M, 0, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return nil, apperror.Validation(fmt.Errorf("элемент %d: %w", i+1, err))
		}
		items = append(items, in.ToModel(in.SubmittedID(), userID))
	}
	return items, nil
}

// ReplacePrepared заменяет коллекцию уже проверенными моделями.
func (s *CollectionService[M, In]) ReplacePrepared(ctx context.Context, userID uuid.UUID, items []M) ([]M, error) {
	return s.repo.ReplaceAll(ctx, userID, items)
}

func (s *CollectionService[M, In]) translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return s.notFound
	}
	return err
}
