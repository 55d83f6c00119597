package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// PersonalInfoHandler визитка владельца.
type PersonalInfoHandler struct {
	svc *service.PersonalInfoService
}

// NewPersonalInfoHandler создаёт хэндлер.
func NewPersonalInfoHandler(svc *service.PersonalInfoService) *PersonalInfoHandler {
	return &PersonalInfoHandler{svc: svc}
}

// Get обрабатывает GET /api/personal-info.
func (h *PersonalInfoHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	info, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, info)
}

// Put обрабатывает PUT /api/personal-info.
func (h *PersonalInfoHandler) Put(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.PersonalInfoRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	info, err := h.svc.Save(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, info)
}
