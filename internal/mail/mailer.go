package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// SenderName отображаемое имя отправителя писем.
const SenderName = "Portfolio Admin"

// ReplySubject тема ответа на сообщение с формы.
const ReplySubject = "Re: Your message to our portfolio"

// ErrNotConfigured SMTP сервер не задан.
var ErrNotConfigured = errors.New("mail: SMTP не настроен")

// Config параметры SMTP подключения.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From адрес отправителя, по умолчанию Username.
	From    string
	Timeout time.Duration
}

// Mailer отправляет письма через SMTP.
type Mailer struct {
	cfg  Config
	send func(ctx context.Context, msg *gomail.Msg) error
}

// New создаёт SMTP отправителя. Порт 465 означает неявный TLS, остальные STARTTLS по возможности.
func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, ErrNotConfigured
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mail: не задан адрес отправителя")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
	}
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: не удалось создать SMTP клиент: %w", err)
	}

	return &Mailer{
		cfg: cfg,
		send: func(ctx context.Context, msg *gomail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

// SendContactNotification уведомляет владельца о новом сообщении с формы.
func (m *Mailer) SendContactNotification(ctx context.Context, to string, msg *models.Message) error {
	data := notificationData{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Message,
	}
	html, text, err := render(notificationHTML, notificationText, data)
	if err != nil {
		return err
	}
	return m.deliver(ctx, to, "New contact form submission: "+msg.Subject, html, text, msg.Email)
}

// SendContactReply отправляет ответ (или автоответ) автору сообщения.
func (m *Mailer) SendContactReply(ctx context.Context, to, name, originalMessage, reply string) error {
	data := replyData{
		Name:            name,
		OriginalMessage: originalMessage,
		Reply:           reply,
	}
	html, text, err := render(replyHTML, replyText, data)
	if err != nil {
		return err
	}
	return m.deliver(ctx, to, ReplySubject, html, text, "")
}

func (m *Mailer) deliver(ctx context.Context, to, subject, html, text, replyTo string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(SenderName, m.cfg.From); err != nil {
		return fmt.Errorf("mail: некорректный отправитель: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail: некорректный получатель: %w", err)
	}
	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return fmt.Errorf("mail: некорректный reply-to: %w", err)
		}
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	msg.AddAlternativeString(gomail.TypeTextHTML, html)

	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("mail: не удалось отправить письмо: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"to":      to,
		"subject": subject,
	}).Info("mail: письмо отправлено")
	return nil
}

type notificationData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type replyData struct {
	Name            string
	OriginalMessage string
	Reply           string
}

var (
	notificationHTML = htmltemplate.Must(htmltemplate.New("notification").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">New Contact Form Submission</h2>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Message:</strong></p>
    <div style="background-color: white; padding: 15px; border-radius: 3px; white-space: pre-wrap;">{{.Message}}</div>
  </div>
  <div style="margin-top: 20px;">
    <a href="mailto:{{.Email}}" style="background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Reply to {{.Name}}</a>
  </div>
</div>`))

	notificationText = texttemplate.Must(texttemplate.New("notification").Parse(`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
Subject: {{.Subject}}

Message:
{{.Message}}
`))

	replyHTML = htmltemplate.Must(htmltemplate.New("reply").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Thank you for your message, {{.Name}}!</h2>
  <p>We've received your message and wanted to get back to you.</p>
  <div style="background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px;">
    <h3 style="margin-top: 0;">Your original message:</h3>
    <p style="white-space: pre-wrap;">{{.OriginalMessage}}</p>
  </div>
  <div style="background-color: #e8f4fd; padding: 15px; margin: 20px 0; border-radius: 5px;">
    <h3 style="margin-top: 0;">Our response:</h3>
    <p style="white-space: pre-wrap;">{{.Reply}}</p>
  </div>
  <p>Best regards,<br>The Portfolio Team</p>
</div>`))

	replyText = texttemplate.Must(texttemplate.New("reply").Parse(`Thank you for your message, {{.Name}}!

We've received your message and wanted to get back to you.

Your original message:
{{.OriginalMessage}}

Our response:
{{.Reply}}

Best regards,
The Portfolio Team
`))
)

// html/template экранирует данные отправителя, текстовая часть собирается отдельным шаблоном.
func render(html *htmltemplate.Template, text *texttemplate.Template, data any) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := html.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("mail: шаблон %s: %w", html.Name(), err)
	}
	if err := text.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("mail: шаблон %s: %w", text.Name(), err)
	}
	return hb.String(), tb.String(), nil
}
