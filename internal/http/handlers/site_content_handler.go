package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// SiteContentHandler тексты сайта по секциям.
type SiteContentHandler struct {
	svc *service.SiteContentService
}

// NewSiteContentHandler создаёт хэндлер.
func NewSiteContentHandler(svc *service.SiteContentService) *SiteContentHandler {
	return &SiteContentHandler{svc: svc}
}

// List обрабатывает публичный GET /api/site-content[?section=].
func (h *SiteContentHandler) List(c *gin.Context) {
	grouped, err := h.svc.List(c.Request.Context(), c.Query("section"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, grouped)
}

// Upsert обрабатывает POST /api/site-content.
func (h *SiteContentHandler) Upsert(c *gin.Context) {
	var req dto.SiteContentRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	item, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondOK(c, item)
}

// UpsertMany обрабатывает PUT /api/site-content с массивом элементов.
func (h *SiteContentHandler) UpsertMany(c *gin.Context) {
	var req []dto.SiteContentRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondAppError(c, err)
		return
	}

	items, err := h.svc.UpsertMany(c.Request.Context(), req)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if items == nil {
		items = []models.SiteContent{}
	}
	common.RespondOK(c, items)
}

// Delete обрабатывает DELETE /api/site-content?section=&key=.
func (h *SiteContentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Query("section"), c.Query("key")); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondMessage(c, "текст удалён")
}
