package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
)

// ProjectRepository отвечает за таблицы projects и project_tags.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository создаёт экземпляр репозитория.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type projectTagRow struct {
	ProjectID uuid.UUID `db:"project_id"`
	Tag       string    `db:"tag"`
}

// List возвращает проекты владельца с тегами, свёрнутыми в массив строк.
func (r *ProjectRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	projects := []models.Project{}
	query := r.db.Rebind(`SELECT * FROM projects WHERE user_id = ? ORDER BY sort_order, created_at`)
	if err := r.db.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, fmt.Errorf("project repository: list %w", err)
	}

	var tags []projectTagRow
	tagsQuery := r.db.Rebind(`
		SELECT pt.project_id, pt.tag
		FROM project_tags pt
		JOIN projects p ON p.id = pt.project_id
		WHERE p.user_id = ?
		ORDER BY pt.project_id, pt.sort_order
	`)
	if err := r.db.SelectContext(ctx, &tags, tagsQuery, userID); err != nil {
		return nil, fmt.Errorf("project repository: list tags %w", err)
	}

	byProject := make(map[uuid.UUID][]string, len(projects))
	for _, t := range tags {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t.Tag)
	}
	for i := range projects {
		projects[i].Tags = byProject[projects[i].ID]
		if projects[i].Tags == nil {
			projects[i].Tags = []string{}
		}
	}

	return projects, nil
}

// Create добавляет проект в конец списка владельца.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		order, err := common.NextSortOrder(ctx, tx, "projects", project.UserID)
		if err != nil {
			return err
		}
		project.ID = uuid.New()
		project.SortOrder = order
		if err := insertProject(ctx, tx, project, time.Now().UTC()); err != nil {
			return err
		}
		return insertProjectTags(ctx, tx, []models.Project{*project})
	})
}

// Update меняет проект владельца и полностью заменяет его теги.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`
			UPDATE projects
			SET title = ?, description = ?, image = ?, demo_url = ?, repo_url = ?, featured = ?, updated_at = ?
			WHERE id = ? AND user_id = ?
		`)
		res, err := tx.ExecContext(ctx, query,
			project.Title, project.Description, project.Image, project.DemoURL, project.RepoURL, project.Featured,
			time.Now().UTC(), project.ID, project.UserID)
		if err != nil {
			return fmt.Errorf("project repository: update %w", err)
		}
		if err := common.ExpectAffected(res); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM project_tags WHERE project_id = ?`), project.ID); err != nil {
			return fmt.Errorf("project repository: delete tags %w", err)
		}
		if err := insertProjectTags(ctx, tx, []models.Project{*project}); err != nil {
			return err
		}

		updated, err := common.GetOwned[models.Project](ctx, tx, "projects", project.ID, project.UserID)
		if err != nil {
			return err
		}
		updated.Tags = project.Tags
		*project = *updated
		return nil
	})
}

// Delete удаляет проект владельца вместе с тегами.
func (r *ProjectRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		tagsQuery := tx.Rebind(`DELETE FROM project_tags WHERE project_id IN (SELECT id FROM projects WHERE id = ? AND user_id = ?)`)
		if _, err := tx.ExecContext(ctx, tagsQuery, id, userID); err != nil {
			return fmt.Errorf("project repository: delete tags %w", err)
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM projects WHERE id = ? AND user_id = ?`), id, userID)
		if err != nil {
			return fmt.Errorf("project repository: delete %w", err)
		}
		return common.ExpectAffected(res)
	})
}

// ReplaceAll атомарно заменяет все проекты владельца:
// удаляет теги, затем проекты, затем создаёт проекты и их теги в порядке списка.
func (r *ProjectRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, projects []models.Project) ([]models.Project, error) {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		tagsQuery := tx.Rebind(`DELETE FROM project_tags WHERE project_id IN (SELECT id FROM projects WHERE user_id = ?)`)
		if _, err := tx.ExecContext(ctx, tagsQuery, userID); err != nil {
			return fmt.Errorf("project repository: delete all tags %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM projects WHERE user_id = ?`), userID); err != nil {
			return fmt.Errorf("project repository: delete all %w", err)
		}

		ids := common.NewIDAllocator(tx, "projects")
		now := time.Now().UTC()
		for i := range projects {
			id, err := ids.Resolve(ctx, projects[i].ID)
			if err != nil {
				return err
			}
			projects[i].ID = id
			projects[i].UserID = userID
			projects[i].SortOrder = i
			if projects[i].Tags == nil {
				projects[i].Tags = []string{}
			}
			if err := insertProject(ctx, tx, &projects[i], now); err != nil {
				return err
			}
		}

		return insertProjectTags(ctx, tx, projects)
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func insertProject(ctx context.Context, tx *sqlx.Tx, project *models.Project, now time.Time) error {
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `
		INSERT INTO projects (id, user_id, title, description, image, demo_url, repo_url, featured, sort_order, created_at, updated_at)
		VALUES (:id, :user_id, :title, :description, :image, :demo_url, :repo_url, :featured, :sort_order, :created_at, :updated_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, project); err != nil {
		return fmt.Errorf("project repository: insert %w", err)
	}
	return nil
}

// insertProjectTags вставляет теги всех переданных проектов одним батчем.
func insertProjectTags(ctx context.Context, tx *sqlx.Tx, projects []models.Project) error {
	inserter := common.NewBatchInserter(tx, `INSERT INTO project_tags (id, project_id, tag, sort_order)`, 4, 100)
	for _, p := range projects {
		for i, tag := range p.Tags {
			if err := inserter.Add(ctx, uuid.New(), p.ID, tag, i); err != nil {
				return fmt.Errorf("project repository: insert tags %w", err)
			}
		}
	}
	if err := inserter.Flush(ctx); err != nil {
		return fmt.Errorf("project repository: insert tags %w", err)
	}
	return nil
}
