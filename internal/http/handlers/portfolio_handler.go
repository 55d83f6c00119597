package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// PortfolioHandler агрегированное содержимое сайта.
type PortfolioHandler struct {
	svc *service.PortfolioService
}

// NewPortfolioHandler создаёт хэндлер.
func NewPortfolioHandler(svc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

// Get обрабатывает GET /api/portfolio. Анонимный посетитель видит портфолио владельца по умолчанию.
func (h *PortfolioHandler) Get(c *gin.Context) {
	portfolio, err := h.svc.GetPortfolio(c.Request.Context(), common.OptionalUserID(c))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, portfolio)
}

// Save обрабатывает POST /api/portfolio. Отсутствующие группы не трогаются.
func (h *PortfolioHandler) Save(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var req dto.SavePortfolioRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	portfolio, err := h.svc.SavePortfolio(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, portfolio)
}
