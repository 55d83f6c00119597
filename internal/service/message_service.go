package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
)

// События для панели администратора.
const (
	EventMessageCreated = "message.created"
	EventMessageUpdated = "message.updated"
	EventMessageDeleted = "message.deleted"
)

// MessageRepository хранилище входящих сообщений.
type MessageRepository interface {
	List(ctx context.Context, userID uuid.UUID, filter models.MessageFilter) ([]models.Message, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Message, error)
	Create(ctx context.Context, msg *models.Message) error
	Update(ctx context.Context, userID, id uuid.UUID, patch models.MessagePatch) (*models.Message, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Mailer отправляет письма владельцу и отправителям.
type Mailer interface {
	SendContactNotification(ctx context.Context, to string, msg *models.Message) error
	SendContactReply(ctx context.Context, to, name, originalMessage, reply string) error
}

// EventPublisher доставляет события подключённым панелям владельца.
type EventPublisher interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// MessageService входящие сообщения, уведомления и ответы.
type MessageService struct {
	repo      MessageRepository
	settings  *SettingsService
	mailer    Mailer
	publisher EventPublisher
	fallback  uuid.UUID
}

// NewMessageService создаёт сервис. mailer и publisher могут быть nil.
func NewMessageService(repo MessageRepository, settings *SettingsService, mailer Mailer, publisher EventPublisher, fallback uuid.UUID) *MessageService {
	return &MessageService{
		repo:      repo,
		settings:  settings,
		mailer:    mailer,
		publisher: publisher,
		fallback:  fallback,
	}
}

// List возвращает сообщения получателя, новые первыми.
func (s *MessageService) List(ctx context.Context, userID uuid.UUID, filter models.MessageFilter) ([]models.Message, error) {
	if filter.Status != nil {
		if _, ok := models.ValidMessageStatuses[*filter.Status]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "недопустимый фильтр status")
		}
	}
	if filter.Priority != nil {
		if _, ok := models.ValidMessagePriorities[*filter.Priority]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "недопустимый фильтр priority")
		}
	}
	return s.repo.List(ctx, userID, filter)
}

// Create сохраняет сообщение для владельца ownerID и запускает уведомления.
func (s *MessageService) Create(ctx context.Context, ownerID uuid.UUID, in dto.MessageRequest) (*models.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	msg := in.ToModel(ownerID)
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.notify(ctx, msg)
	s.publish(ownerID, EventMessageCreated, msg)
	return msg, nil
}

// Contact принимает сообщение с публичной формы для владельца сайта.
func (s *MessageService) Contact(ctx context.Context, in dto.MessageRequest) (*models.Message, error) {
	if s.fallback == uuid.Nil {
		return nil, apperror.ErrNoPortfolioOwner
	}
	return s.Create(ctx, s.fallback, in)
}

// Update меняет статус, приоритет или отметку сообщения.
func (s *MessageService) Update(ctx context.Context, userID, id uuid.UUID, patch models.MessagePatch) (*models.Message, error) {
	if err := dto.ValidateMessagePatch(patch); err != nil {
		return nil, apperror.Validation(err)
	}

	msg, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, translateMessageErr(err)
	}

	s.publish(userID, EventMessageUpdated, msg)
	return msg, nil
}

// Delete удаляет сообщение получателя.
func (s *MessageService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return translateMessageErr(err)
	}
	s.publish(userID, EventMessageDeleted, map[string]string{"id": id.String()})
	return nil
}

// Reply отправляет ответ отправителю. Ошибка доставки возвращается вызывающему,
// при успехе сообщение получает статус replied.
func (s *MessageService) Reply(ctx context.Context, userID uuid.UUID, in dto.ReplyRequest) (*models.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}
	messageID := uuid.MustParse(in.MessageID)

	msg, err := s.repo.Get(ctx, userID, messageID)
	if err != nil {
		return nil, translateMessageErr(err)
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !settings.EnableEmailNotifications {
		return nil, apperror.ErrNotificationsOff
	}
	if s.mailer == nil {
		return nil, apperror.ErrMailerUnavailable
	}

	if err := s.mailer.SendContactReply(ctx, msg.Email, msg.Name, msg.Message, in.Reply); err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id":    userID,
			"message_id": msg.ID,
			"error":      err.Error(),
		}).Error("message service: не удалось отправить ответ")
		return nil, apperror.Wrap(err, apperror.ErrCodeBadGateway, "не удалось отправить ответ по email")
	}

	status := models.MessageStatusReplied
	updated, err := s.repo.Update(ctx, userID, msg.ID, models.MessagePatch{Status: &status})
	if err != nil {
		return nil, translateMessageErr(err)
	}

	s.publish(userID, EventMessageUpdated, updated)
	return updated, nil
}

// notify отправляет уведомление владельцу и автоответ отправителю.
// Ошибки только логируются: сообщение уже сохранено.
func (s *MessageService) notify(ctx context.Context, msg *models.Message) {
	if s.mailer == nil {
		return
	}

	settings, err := s.settings.Get(ctx, msg.UserID)
	if err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id": msg.UserID,
			"error":   err.Error(),
		}).Warn("message service: не удалось прочитать настройки для уведомления")
		return
	}

	if settings.ContactEmail == nil || *settings.ContactEmail == "" || !settings.EnableEmailNotifications {
		return
	}

	if err := s.mailer.SendContactNotification(ctx, *settings.ContactEmail, msg); err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id":    msg.UserID,
			"message_id": msg.ID,
			"error":      err.Error(),
		}).Warn("message service: уведомление не отправлено")
	}

	if settings.AutoReplyEnabled && settings.AutoReplyMessage != nil && *settings.AutoReplyMessage != "" {
		if err := s.mailer.SendContactReply(ctx, msg.Email, msg.Name, msg.Message, *settings.AutoReplyMessage); err != nil {
			logger.Log.WithFields(map[string]interface{}{
				"user_id":    msg.UserID,
				"message_id": msg.ID,
				"error":      err.Error(),
			}).Warn("message service: автоответ не отправлен")
		}
	}
}

func (s *MessageService) publish(userID uuid.UUID, event string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.BroadcastToUser(userID, event, data); err != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id": userID,
			"event":   event,
			"error":   err.Error(),
		}).Warn("message service: событие не доставлено")
	}
}

func translateMessageErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.ErrMessageNotFound
	}
	return err
}
