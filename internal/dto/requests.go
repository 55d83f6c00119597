package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/validation"
)

// LoginRequest represents the admin login form
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks email shape and a non-empty password; the length rule applies only to new accounts
func (r LoginRequest) Validate() error {
	if err := validation.ValidateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return fmt.Errorf("пароль обязателен")
	}
	return nil
}

// PersonalInfoRequest represents the owner's business card
type PersonalInfoRequest struct {
	Name               string `json:"name"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Email              string `json:"email"`
	Location           string `json:"location"`
	Phone              string `json:"phone"`
	Bio                string `json:"bio"`
	Avatar             string `json:"avatar"`
	Availability       string `json:"availability"`
	AvailabilityStatus string `json:"availabilityStatus"`
}

// Validate checks required fields and the availability enum
func (r PersonalInfoRequest) Validate() error {
	required := []struct {
		field string
		value string
		max   int
	}{
		{"имя", r.Name, validation.MaxNameLength},
		{"должность", r.Title, validation.MaxTitleLength},
		{"описание", r.Description, validation.MaxDescriptionLength},
		{"местоположение", r.Location, validation.MaxShortTextLength},
		{"доступность", r.Availability, validation.MaxShortTextLength},
	}
	for _, f := range required {
		if err := validation.ValidateRequired(f.field, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validation.ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := validation.ValidateLength("телефон", r.Phone, 0, 50); err != nil {
		return err
	}
	if err := validation.ValidateLength("биография", r.Bio, 0, validation.MaxDescriptionLength); err != nil {
		return err
	}
	if err := validation.ValidateAssetRef("аватар", r.Avatar); err != nil {
		return err
	}
	if r.AvailabilityStatus != "" {
		return validation.ValidateEnum("availabilityStatus", r.AvailabilityStatus, models.ValidAvailabilityStatuses)
	}
	return nil
}

// ToModel converts the request into a storable PersonalInfo
func (r PersonalInfoRequest) ToModel(userID uuid.UUID) *models.PersonalInfo {
	status := r.AvailabilityStatus
	if status == "" {
		status = models.AvailabilityAvailable
	}
	return &models.PersonalInfo{
		UserID:             userID,
		Name:               strings.TrimSpace(r.Name),
		Title:              strings.TrimSpace(r.Title),
		Description:        strings.TrimSpace(r.Description),
		Email:              strings.ToLower(strings.TrimSpace(r.Email)),
		Location:           strings.TrimSpace(r.Location),
		Phone:              strings.TrimSpace(r.Phone),
		Bio:                r.Bio,
		Avatar:             strings.TrimSpace(r.Avatar),
		Availability:       strings.TrimSpace(r.Availability),
		AvailabilityStatus: status,
	}
}

// SkillRequest represents one skill item
type SkillRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Level    *int   `json:"level"`
	Category string `json:"category,omitempty"`
}

// Validate checks name and 0..100 level
func (r SkillRequest) Validate() error {
	if err := validation.ValidateRequired("название навыка", r.Name, validation.MaxNameLength); err != nil {
		return err
	}
	if r.Level == nil {
		return fmt.Errorf("уровень навыка обязателен")
	}
	if err := validation.ValidateRange("уровень навыка", *r.Level, validation.MinSkillLevel, validation.MaxSkillLevel); err != nil {
		return err
	}
	return validation.ValidateLength("категория", r.Category, 0, validation.MaxNameLength)
}

// SubmittedID returns the client-side id, uuid.Nil when absent or not a UUID
func (r SkillRequest) SubmittedID() uuid.UUID { return parseOptionalID(r.ID) }

// ToModel converts the request into a Skill
func (r SkillRequest) ToModel(id, userID uuid.UUID) models.Skill {
	level := 0
	if r.Level != nil {
		level = *r.Level
	}
	return models.Skill{
		ID:       id,
		UserID:   userID,
		Name:     strings.TrimSpace(r.Name),
		Level:    level,
		Category: strings.TrimSpace(r.Category),
	}
}

// ProjectRequest represents one project with its tags
type ProjectRequest struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	DemoURL     string   `json:"demoUrl,omitempty"`
	RepoURL     string   `json:"repoUrl,omitempty"`
	Featured    bool     `json:"featured"`
	Tags        []string `json:"tags"`
}

// Validate checks required strings, links and tags
func (r ProjectRequest) Validate() error {
	if err := validation.ValidateRequired("название проекта", r.Title, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("описание проекта", r.Description, validation.MaxDescriptionLength); err != nil {
		return err
	}
	if err := validation.ValidateAssetRef("изображение", r.Image); err != nil {
		return err
	}
	if err := validation.ValidateOptionalURL("ссылка на демо", r.DemoURL); err != nil {
		return err
	}
	if err := validation.ValidateOptionalURL("ссылка на репозиторий", r.RepoURL); err != nil {
		return err
	}
	return validation.ValidateTags("теги", r.Tags)
}

// SubmittedID returns the client-side id, uuid.Nil when absent or not a UUID
func (r ProjectRequest) SubmittedID() uuid.UUID { return parseOptionalID(r.ID) }

// ToModel converts the request into a Project
func (r ProjectRequest) ToModel(id, userID uuid.UUID) models.Project {
	return models.Project{
		ID:          id,
		UserID:      userID,
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Image:       strings.TrimSpace(r.Image),
		DemoURL:     strings.TrimSpace(r.DemoURL),
		RepoURL:     strings.TrimSpace(r.RepoURL),
		Featured:    r.Featured,
		Tags:        trimAll(r.Tags),
	}
}

// ExperienceRequest represents one work experience item
type ExperienceRequest struct {
	ID           string   `json:"id,omitempty"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Validate checks required strings and technologies
func (r ExperienceRequest) Validate() error {
	if err := validation.ValidateRequired("компания", r.Company, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("должность", r.Position, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("период", r.Duration, validation.MaxShortTextLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("описание", r.Description, validation.MaxDescriptionLength); err != nil {
		return err
	}
	return validation.ValidateTags("технологии", r.Technologies)
}

// SubmittedID returns the client-side id, uuid.Nil when absent or not a UUID
func (r ExperienceRequest) SubmittedID() uuid.UUID { return parseOptionalID(r.ID) }

// ToModel converts the request into an Experience
func (r ExperienceRequest) ToModel(id, userID uuid.UUID) models.Experience {
	return models.Experience{
		ID:           id,
		UserID:       userID,
		Company:      strings.TrimSpace(r.Company),
		Position:     strings.TrimSpace(r.Position),
		Duration:     strings.TrimSpace(r.Duration),
		Description:  strings.TrimSpace(r.Description),
		Technologies: trimAll(r.Technologies),
	}
}

// SocialLinkRequest represents one social profile link
type SocialLinkRequest struct {
	ID       string `json:"id,omitempty"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon,omitempty"`
}

// Validate checks platform and url
func (r SocialLinkRequest) Validate() error {
	if err := validation.ValidateRequired("платформа", r.Platform, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateURL("ссылка", r.URL); err != nil {
		return err
	}
	return validation.ValidateLength("иконка", r.Icon, 0, validation.MaxNameLength)
}

// SubmittedID returns the client-side id, uuid.Nil when absent or not a UUID
func (r SocialLinkRequest) SubmittedID() uuid.UUID { return parseOptionalID(r.ID) }

// ToModel converts the request into a SocialLink
func (r SocialLinkRequest) ToModel(id, userID uuid.UUID) models.SocialLink {
	icon := strings.TrimSpace(r.Icon)
	if icon == "" {
		icon = models.DefaultSocialIcon
	}
	return models.SocialLink{
		ID:       id,
		UserID:   userID,
		Platform: strings.TrimSpace(r.Platform),
		URL:      strings.TrimSpace(r.URL),
		Icon:     icon,
	}
}

// SavePortfolioRequest represents a partial top-level save.
// A nil slice or pointer (absent key or JSON null) leaves the group untouched,
// an empty array clears it.
type SavePortfolioRequest struct {
	PersonalInfo *PersonalInfoRequest `json:"personalInfo,omitempty"`
	Skills       []SkillRequest       `json:"skills"`
	Projects     []ProjectRequest     `json:"projects"`
	Experience   []ExperienceRequest  `json:"experience"`
	SocialLinks  []SocialLinkRequest  `json:"socialLinks"`
}

// MessageRequest represents an incoming contact message
type MessageRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority,omitempty"`
}

// Validate checks sender fields
func (r MessageRequest) Validate() error {
	if err := validation.ValidateRequired("имя", r.Name, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := validation.ValidateRequired("тема", r.Subject, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("сообщение", r.Message, validation.MaxMessageLength); err != nil {
		return err
	}
	if r.Priority != "" {
		return validation.ValidateEnum("priority", r.Priority, models.ValidMessagePriorities)
	}
	return nil
}

// ToModel converts the request into a Message owned by the recipient
func (r MessageRequest) ToModel(ownerID uuid.UUID) *models.Message {
	return &models.Message{
		UserID:   ownerID,
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Subject:  strings.TrimSpace(r.Subject),
		Message:  strings.TrimSpace(r.Message),
		Priority: r.Priority,
	}
}

// UpdateMessageRequest represents a partial message update
type UpdateMessageRequest = models.MessagePatch

// ValidateMessagePatch checks enum fields of a message patch
func ValidateMessagePatch(p models.MessagePatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("нет полей для обновления")
	}
	if p.Status != nil {
		if err := validation.ValidateEnum("status", *p.Status, models.ValidMessageStatuses); err != nil {
			return err
		}
	}
	if p.Priority != nil {
		if err := validation.ValidateEnum("priority", *p.Priority, models.ValidMessagePriorities); err != nil {
			return err
		}
	}
	return nil
}

// ReplyRequest represents an admin reply to a message
type ReplyRequest struct {
	MessageID string `json:"messageId"`
	Reply     string `json:"reply"`
}

// Validate checks the reply body
func (r ReplyRequest) Validate() error {
	if _, err := uuid.Parse(r.MessageID); err != nil {
		return fmt.Errorf("некорректный messageId")
	}
	return validation.ValidateRequired("ответ", r.Reply, validation.MaxMessageLength)
}

// SiteContentRequest represents one site copy entry
type SiteContentRequest struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// Validate checks section and key
func (r SiteContentRequest) Validate() error {
	if err := validation.ValidateRequired("section", r.Section, validation.MaxSectionLength); err != nil {
		return err
	}
	return validation.ValidateRequired("key", r.Key, validation.MaxSectionLength)
}

// ToModel converts the request into a SiteContent row
func (r SiteContentRequest) ToModel() models.SiteContent {
	return models.SiteContent{
		Section: strings.TrimSpace(r.Section),
		Key:     strings.TrimSpace(r.Key),
		Value:   r.Value,
	}
}

func parseOptionalID(raw string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// ValidateSettingsPatch checks typed settings fields that were supplied
func ValidateSettingsPatch(p models.SettingsPatch) error {
	if p.SiteName != nil {
		if err := validation.ValidateRequired("siteName", *p.SiteName, validation.MaxTitleLength); err != nil {
			return err
		}
	}
	if p.SiteDescription != nil {
		if err := validation.ValidateLength("siteDescription", *p.SiteDescription, 0, validation.MaxDescriptionLength); err != nil {
			return err
		}
	}
	if p.SiteURL != nil {
		if err := validation.ValidateOptionalURL("siteUrl", *p.SiteURL); err != nil {
			return err
		}
	}
	if p.Language != nil {
		if err := validation.ValidateRequired("language", *p.Language, 10); err != nil {
			return err
		}
	}
	if p.Timezone != nil {
		if err := validation.ValidateRequired("timezone", *p.Timezone, validation.MaxNameLength); err != nil {
			return err
		}
	}
	if p.ContactEmail != nil && strings.TrimSpace(*p.ContactEmail) != "" {
		if err := validation.ValidateEmail(*p.ContactEmail); err != nil {
			return err
		}
	}
	if p.SMTPPort != nil && strings.TrimSpace(*p.SMTPPort) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(*p.SMTPPort))
		if err != nil {
			return fmt.Errorf("smtpPort должен быть числом")
		}
		if err := validation.ValidateRange("smtpPort", port, 1, 65535); err != nil {
			return err
		}
	}
	if p.MaxRequestsPerMinute != nil {
		if err := validation.ValidateRange("maxRequestsPerMinute", *p.MaxRequestsPerMinute, 1, 10000); err != nil {
			return err
		}
	}
	if p.AutoReplyMessage != nil {
		if err := validation.ValidateLength("autoReplyMessage", *p.AutoReplyMessage, 0, validation.MaxMessageLength); err != nil {
			return err
		}
	}
	return nil
}
