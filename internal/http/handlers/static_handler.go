package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
)

// StaticHandler раздаёт собранную админку. Неизвестные пути отдают index.html (SPA).
type StaticHandler struct {
	root string
}

// NewStaticHandler создаёт хэндлер для каталога dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{root: dir}
}

// Serve обрабатывает GET /admin/*path.
func (h *StaticHandler) Serve(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("path"), "/")
	if rel != "" {
		clean := filepath.Clean(filepath.FromSlash(rel))
		if !strings.HasPrefix(clean, "..") && !filepath.IsAbs(clean) {
			target := filepath.Join(h.root, clean)
			if info, err := os.Stat(target); err == nil && !info.IsDir() {
				c.File(target)
				return
			}
		}
	}

	index := filepath.Join(h.root, "index.html")
	if _, err := os.Stat(index); err != nil {
		common.RespondError(c, http.StatusNotFound, "страница не найдена")
		return
	}
	c.File(index)
}
