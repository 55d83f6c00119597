package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/portfolio-backend/internal/http/handlers/common"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/service"
	"github.com/ignatzorin/portfolio-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений панели администратора.
type WSHandler struct {
	hub          *ws.Hub
	tokenManager *service.TokenManager
	upgrader     websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер. CORS уже проверен снаружи, origin здесь не ограничиваем.
func NewWSHandler(hub *ws.Hub, tokens *service.TokenManager) *WSHandler {
	return &WSHandler{
		hub:          hub,
		tokenManager: tokens,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle обслуживает GET /api/ws?token=...
// Браузер не умеет слать заголовки при апгрейде, поэтому токен передаётся в query.
func (h *WSHandler) Handle(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		common.RespondError(c, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	claims := h.tokenManager.Verify(rawToken)
	if claims == nil || claims.UserID == uuid.Nil {
		common.RespondError(c, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		logger.Log.WithField("error", err.Error()).Warn("ws: не удалось установить соединение")
		return
	}

	client := ws.NewClient(conn, h.hub, claims.UserID)
	h.hub.Register(client)

	client.Run(c.Request.Context())
}
