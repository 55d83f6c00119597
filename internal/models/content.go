package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill описывает навык с уровнем владения 0..100.
type Skill struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Level     int       `db:"level" json:"level"`
	Category  string    `db:"category" json:"category,omitempty"`
	SortOrder int       `db:"sort_order" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Project описывает проект портфолио. Tags хранятся отдельной таблицей project_tags.
type Project struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Image       string    `db:"image" json:"image"`
	DemoURL     string    `db:"demo_url" json:"demoUrl"`
	RepoURL     string    `db:"repo_url" json:"repoUrl"`
	Featured    bool      `db:"featured" json:"featured"`
	SortOrder   int       `db:"sort_order" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	Tags        []string  `db:"-" json:"tags"`
}

// Experience описывает место работы. Technologies хранятся в experience_technologies.
type Experience struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"-"`
	Company      string    `db:"company" json:"company"`
	Position     string    `db:"position" json:"position"`
	Duration     string    `db:"duration" json:"duration"`
	Description  string    `db:"description" json:"description"`
	SortOrder    int       `db:"sort_order" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
	Technologies []string  `db:"-" json:"technologies"`
}

// SocialLink описывает ссылку на профиль в соцсети.
type SocialLink struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	Platform  string    `db:"platform" json:"platform"`
	URL       string    `db:"url" json:"url"`
	Icon      string    `db:"icon" json:"icon"`
	SortOrder int       `db:"sort_order" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
