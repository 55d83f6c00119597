package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// MessageHandler входящие сообщения и форма обратной связи.
type MessageHandler struct {
	svc *service.MessageService
}

// NewMessageHandler создаёт хэндлер.
func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// List обрабатывает GET /api/messages?status=&priority=&starred=.
func (h *MessageHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var filter models.MessageFilter
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("priority"); v != "" {
		filter.Priority = &v
	}
	if v := c.Query("starred"); v != "" {
		starred, err := strconv.ParseBool(v)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "параметр starred должен быть true или false")
			return
		}
		filter.Starred = &starred
	}

	messages, err := h.svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	common.RespondOK(c, messages)
}

// Create обрабатывает POST /api/messages от имени владельца.
func (h *MessageHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.MessageRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	msg, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, msg)
}

// Contact обрабатывает публичный POST /api/contact.
func (h *MessageHandler) Contact(c *gin.Context) {
	var req dto.MessageRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	msg, err := h.svc.Contact(c.Request.Context(), req)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, gin.H{"id": msg.ID})
}

// Update обрабатывает PUT /api/messages?id=.
func (h *MessageHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	id, hasID, err := common.QueryUUID(c, "id")
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if !hasID {
		common.RespondError(c, http.StatusBadRequest, "параметр id обязателен")
		return
	}

	var patch dto.UpdateMessageRequest
	if err := common.BindJSON(c, &patch); err != nil {
		common.RespondAppError(c, err)
		return
	}

	msg, err := h.svc.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, msg)
}

// Delete обрабатывает DELETE /api/messages?id=.
func (h *MessageHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	id, hasID, err := common.QueryUUID(c, "id")
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if !hasID {
		common.RespondError(c, http.StatusBadRequest, "параметр id обязателен")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondMessage(c, "сообщение удалено")
}

// Reply обрабатывает POST /api/messages/reply. Ошибка доставки письма возвращается администратору.
func (h *MessageHandler) Reply(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.ReplyRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	msg, err := h.svc.Reply(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, msg)
}
