package dto

import (
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// PortfolioResponse is the aggregated public view of one identity's content.
// PersonalInfo is null when the owner has not filled it yet.
type PortfolioResponse struct {
	PersonalInfo *models.PersonalInfo `json:"personalInfo"`
	Skills       []models.Skill       `json:"skills"`
	Projects     []models.Project     `json:"projects"`
	Experience   []models.Experience  `json:"experience"`
	SocialLinks  []models.SocialLink  `json:"socialLinks"`
}

// LoginResponse is returned by the login endpoint outside of the data envelope
type LoginResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

// MeResponse represents the authenticated account with its business card
type MeResponse struct {
	User         *models.User         `json:"user"`
	PersonalInfo *models.PersonalInfo `json:"personalInfo"`
}

// UploadResponse represents a stored upload
type UploadResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Mimetype     string `json:"mimetype"`
}

// NewUploadResponse builds UploadResponse from the stored file record
func NewUploadResponse(file *models.UploadedFile) *UploadResponse {
	return &UploadResponse{
		ID:           file.ID.String(),
		URL:          file.URL,
		Filename:     file.Filename,
		OriginalName: file.OriginalName,
		Size:         file.Size,
		Mimetype:     file.Mimetype,
	}
}
