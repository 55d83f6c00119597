package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// SettingsHandler настройки сайта владельца.
type SettingsHandler struct {
	svc *service.SettingsService
}

// NewSettingsHandler создаёт хэндлер.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get обрабатывает GET /api/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	settings, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, settings)
}

// Update обрабатывает PUT /api/settings. Незаданные поля не меняются.
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var patch models.SettingsPatch
	if err := common.BindJSON(c, &patch); err != nil {
		common.RespondAppError(c, err)
		return
	}

	settings, err := h.svc.Update(c.Request.Context(), userID, patch)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, settings)
}

// Reset обрабатывает POST /api/settings.
func (h *SettingsHandler) Reset(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	settings, err := h.svc.Reset(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, settings)
}
