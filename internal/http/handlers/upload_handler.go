package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/service"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// запас на заголовки multipart сверх лимита файла
const multipartOverhead = 1 << 20

// UploadHandler загрузка картинок и раздача их с диска.
type UploadHandler struct {
	svc     *service.UploadService
	storage *storage.UploadStorage
}

// NewUploadHandler создаёт хэндлер.
func NewUploadHandler(svc *service.UploadService, storage *storage.UploadStorage) *UploadHandler {
	return &UploadHandler{svc: svc, storage: storage}
}

// Upload обрабатывает POST /api/upload (multipart поле file).
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.storage.MaxUploadBytes()+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondError(c, http.StatusBadRequest, "файл слишком большой")
			return
		}
		common.RespondError(c, http.StatusBadRequest, "поле file обязательно")
		return
	}

	src, err := header.Open()
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	defer src.Close()

	file, err := h.svc.Upload(c.Request.Context(), userID, service.UploadInput{
		OriginalName: header.Filename,
		DeclaredType: header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         src,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusCreated, dto.NewUploadResponse(file))
}

// Delete обрабатывает DELETE /api/upload?id= (имя файла или id записи).
func (h *UploadHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Query("id")); err != nil {
		common.RespondAppError(c, err)
		return
	}
	common.RespondMessage(c, "файл удалён")
}

// Serve обрабатывает GET /uploads/*path. Любой путь вне каталога загрузок даёт 404.
func (h *UploadHandler) Serve(c *gin.Context) {
	name := c.Param("path")

	f, info, err := h.storage.Open(name)
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "файл не найден")
		return
	}
	defer f.Close()

	c.Header("Content-Type", service.ContentTypeByName(info.Name()))
	c.Header("Cache-Control", "public, max-age=31536000")
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
