package models

import (
	"time"

	"github.com/google/uuid"
)

// Settings плоский набор настроек сайта владельца (одна запись на аккаунт).
// EnableRateLimit и MaxRequestsPerMinute только хранятся: лимиты запросов берутся из конфигурации сервера.
type Settings struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID uuid.UUID `db:"user_id" json:"-"`

	SiteName        string `db:"site_name" json:"siteName"`
	SiteDescription string `db:"site_description" json:"siteDescription"`
	SiteURL         string `db:"site_url" json:"siteUrl"`
	Language        string `db:"language" json:"language"`
	Timezone        string `db:"timezone" json:"timezone"`
	MaintenanceMode bool   `db:"maintenance_mode" json:"maintenanceMode"`
	AllowComments   bool   `db:"allow_comments" json:"allowComments"`
	EnableAnalytics bool   `db:"enable_analytics" json:"enableAnalytics"`
	EnableSEO       bool   `db:"enable_seo" json:"enableSEO"`

	ContactEmail             *string `db:"contact_email" json:"contactEmail"`
	SMTPHost                 *string `db:"smtp_host" json:"smtpHost"`
	SMTPPort                 *string `db:"smtp_port" json:"smtpPort"`
	SMTPUser                 *string `db:"smtp_user" json:"smtpUser"`
	SMTPPassword             *string `db:"smtp_password" json:"smtpPassword"`
	EnableEmailNotifications bool    `db:"enable_email_notifications" json:"enableEmailNotifications"`
	AutoReplyEnabled         bool    `db:"auto_reply_enabled" json:"autoReplyEnabled"`
	AutoReplyMessage         *string `db:"auto_reply_message" json:"autoReplyMessage"`

	EnableRateLimit      bool    `db:"enable_rate_limit" json:"enableRateLimit"`
	MaxRequestsPerMinute int     `db:"max_requests_per_minute" json:"maxRequestsPerMinute"`
	EnableCaptcha        bool    `db:"enable_captcha" json:"enableCaptcha"`
	CaptchaSiteKey       *string `db:"captcha_site_key" json:"captchaSiteKey"`
	CaptchaSecretKey     *string `db:"captcha_secret_key" json:"captchaSecretKey"`
	EnableCSP            bool    `db:"enable_csp" json:"enableCSP"`
	AllowedDomains       *string `db:"allowed_domains" json:"allowedDomains"`

	EmailNotifications bool `db:"email_notifications" json:"emailNotifications"`
	ProjectUpdates     bool `db:"project_updates" json:"projectUpdates"`
	SecurityAlerts     bool `db:"security_alerts" json:"securityAlerts"`
	MarketingEmails    bool `db:"marketing_emails" json:"marketingEmails"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultSettings возвращает настройки, создаваемые при первом чтении или сбросе.
func DefaultSettings(userID uuid.UUID) *Settings {
	str := func(s string) *string { return &s }

	return &Settings{
		UserID:                   userID,
		SiteName:                 "My Portfolio",
		SiteDescription:          "A showcase of my work and skills",
		SiteURL:                  "https://myportfolio.com",
		Language:                 "en",
		Timezone:                 "UTC",
		MaintenanceMode:          false,
		AllowComments:            true,
		EnableAnalytics:          true,
		EnableSEO:                true,
		ContactEmail:             str("contact@myportfolio.com"),
		SMTPPort:                 str("587"),
		EnableEmailNotifications: true,
		AutoReplyEnabled:         false,
		AutoReplyMessage:         str("Thank you for your message. I'll get back to you soon!"),
		EnableRateLimit:          true,
		MaxRequestsPerMinute:     60,
		EnableCaptcha:            false,
		EnableCSP:                true,
		AllowedDomains:           str("myportfolio.com, *.myportfolio.com"),
		EmailNotifications:       true,
		ProjectUpdates:           true,
		SecurityAlerts:           true,
		MarketingEmails:          false,
	}
}

// SettingsPatch частичное обновление настроек: nil поля не меняются.
type SettingsPatch struct {
	SiteName        *string `json:"siteName"`
	SiteDescription *string `json:"siteDescription"`
	SiteURL         *string `json:"siteUrl"`
	Language        *string `json:"language"`
	Timezone        *string `json:"timezone"`
	MaintenanceMode *bool   `json:"maintenanceMode"`
	AllowComments   *bool   `json:"allowComments"`
	EnableAnalytics *bool   `json:"enableAnalytics"`
	EnableSEO       *bool   `json:"enableSEO"`

	ContactEmail             *string `json:"contactEmail"`
	SMTPHost                 *string `json:"smtpHost"`
	SMTPPort                 *string `json:"smtpPort"`
	SMTPUser                 *string `json:"smtpUser"`
	SMTPPassword             *string `json:"smtpPassword"`
	EnableEmailNotifications *bool   `json:"enableEmailNotifications"`
	AutoReplyEnabled         *bool   `json:"autoReplyEnabled"`
	AutoReplyMessage         *string `json:"autoReplyMessage"`

	EnableRateLimit      *bool   `json:"enableRateLimit"`
	MaxRequestsPerMinute *int    `json:"maxRequestsPerMinute"`
	EnableCaptcha        *bool   `json:"enableCaptcha"`
	CaptchaSiteKey       *string `json:"captchaSiteKey"`
	CaptchaSecretKey     *string `json:"captchaSecretKey"`
	EnableCSP            *bool   `json:"enableCSP"`
	AllowedDomains       *string `json:"allowedDomains"`

	EmailNotifications *bool `json:"emailNotifications"`
	ProjectUpdates     *bool `json:"projectUpdates"`
	SecurityAlerts     *bool `json:"securityAlerts"`
	MarketingEmails    *bool `json:"marketingEmails"`
}

// Apply переносит заданные поля патча в настройки.
func (p SettingsPatch) Apply(s *Settings) {
	setStr(&s.SiteName, p.SiteName)
	setStr(&s.SiteDescription, p.SiteDescription)
	setStr(&s.SiteURL, p.SiteURL)
	setStr(&s.Language, p.Language)
	setStr(&s.Timezone, p.Timezone)
	setBool(&s.MaintenanceMode, p.MaintenanceMode)
	setBool(&s.AllowComments, p.AllowComments)
	setBool(&s.EnableAnalytics, p.EnableAnalytics)
	setBool(&s.EnableSEO, p.EnableSEO)

	setOptStr(&s.ContactEmail, p.ContactEmail)
	setOptStr(&s.SMTPHost, p.SMTPHost)
	setOptStr(&s.SMTPPort, p.SMTPPort)
	setOptStr(&s.SMTPUser, p.SMTPUser)
	setOptStr(&s.SMTPPassword, p.SMTPPassword)
	setBool(&s.EnableEmailNotifications, p.EnableEmailNotifications)
	setBool(&s.AutoReplyEnabled, p.AutoReplyEnabled)
	setOptStr(&s.AutoReplyMessage, p.AutoReplyMessage)

	setBool(&s.EnableRateLimit, p.EnableRateLimit)
	if p.MaxRequestsPerMinute != nil {
		s.MaxRequestsPerMinute = *p.MaxRequestsPerMinute
	}
	setBool(&s.EnableCaptcha, p.EnableCaptcha)
	setOptStr(&s.CaptchaSiteKey, p.CaptchaSiteKey)
	setOptStr(&s.CaptchaSecretKey, p.CaptchaSecretKey)
	setBool(&s.EnableCSP, p.EnableCSP)
	setOptStr(&s.AllowedDomains, p.AllowedDomains)

	setBool(&s.EmailNotifications, p.EmailNotifications)
	setBool(&s.ProjectUpdates, p.ProjectUpdates)
	setBool(&s.SecurityAlerts, p.SecurityAlerts)
	setBool(&s.MarketingEmails, p.MarketingEmails)
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setOptStr(dst **string, v *string) {
	if v != nil {
		val := *v
		*dst = &val
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
