package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// CollectionHandler REST поверхность спискового ресурса владельца.
//
//	GET    /api/<resource>          список
//	POST   /api/<resource>          создать один элемент
//	PUT    /api/<resource>?id=...   обновить один элемент
//	PUT    /api/<resource>          заменить всю коллекцию (тело массив)
//	DELETE /api/<resource>?id=...   удалить один элемент
type CollectionHandler[M any, In service.CollectionInput[M]] struct {
	svc *service.CollectionService[M, In]
}

// NewCollectionHandler создаёт хэндлер поверх сервиса коллекции.
func NewCollectionHandler[M any, In service.CollectionInput[M]](svc *service.CollectionService[M, In]) *CollectionHandler[M, In] {
	return &CollectionHandler[M, In]{svc: svc}
}

type (
	SkillHandler      = CollectionHandler[models.Skill, dto.SkillRequest]
	ProjectHandler    = CollectionHandler[models.Project, dto.ProjectRequest]
	ExperienceHandler = CollectionHandler[models.Experience, dto.ExperienceRequest]
	SocialLinkHandler = CollectionHandler[models.SocialLink, dto.SocialLinkRequest]
)

// List обрабатывает GET.
func (h *CollectionHandler[M, In]) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if items == nil {
		items = []M{}
	}
	common.RespondOK(c, items)
}

// Create обрабатывает POST.
func (h *CollectionHandler[M, In]) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	var in In
	if err := common.BindJSON(c, &in); err != nil {
		common.RespondAppError(c, err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, item)
}

// Put обрабатывает PUT: с ?id обновляет один элемент, без него заменяет коллекцию.
func (h *CollectionHandler[M, In]) Put(c *gin.Context) {
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

	if hasID {
		var in In
		if err := common.BindJSON(c, &in); err != nil {
			common.RespondAppError(c, err)
			return
		}
		item, err := h.svc.Update(c.Request.Context(), userID, id, in)
		if err != nil {
			common.RespondAppError(c, err)
			return
		}
		common.RespondOK(c, item)
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		common.RespondAppError(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		common.RespondError(c, http.StatusBadRequest, "ожидается массив элементов или параметр id")
		return
	}

	var inputs []In
	if err := json.Unmarshal(raw, &inputs); err != nil {
		common.RespondAppError(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	items, err := h.svc.Replace(c.Request.Context(), userID, inputs)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	if items == nil {
		items = []M{}
	}
	common.RespondOK(c, items)
}

// Delete обрабатывает DELETE ?id=.
func (h *CollectionHandler[M, In]) Delete(c *gin.Context) {
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
	common.RespondMessage(c, "запись удалена")
}
