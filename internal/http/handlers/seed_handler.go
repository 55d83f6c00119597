package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// SeedHandler заполняет портфолио текущего пользователя демо-данными. Только для development.
type SeedHandler struct {
	auth *service.AuthService
	seed *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(auth *service.AuthService, seed *service.SeedService) *SeedHandler {
	return &SeedHandler{auth: auth, seed: seed}
}

// Seed обрабатывает POST /api/seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if err := h.seed.SeedDemo(c.Request.Context(), user); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessage(c, "демо-данные загружены")
}
