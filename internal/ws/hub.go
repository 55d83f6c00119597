package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/goroutine"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

// ErrHubBusy очередь рассылки переполнена, событие отброшено.
var ErrHubBusy = errors.New("ws: очередь рассылки переполнена")

// Hub управляет WebSocket подключениями панели администратора.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	ctx        context.Context
}

type message struct {
	userID  uuid.UUID
	payload []byte
}

// NewHub создаёт новый хаб. Run завершается при отмене ctx.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
		ctx:        ctx,
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.userID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// ClientCount количество открытых подключений пользователя.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// BroadcastToUser отправляет событие всем открытым панелям пользователя.
// Формат: {"type": event, "data": data}.
func (h *Hub) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.broadcast <- message{userID: userID, payload: raw}:
		return nil
	default:
		logger.Log.WithFields(map[string]interface{}{
			"user_id": userID,
			"event":   event,
		}).Warn("ws: очередь рассылки переполнена, событие отброшено")
		return ErrHubBusy
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
	logger.Log.WithField("user_id", client.userID).Debug("ws: клиент подключён")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, found := clients[client]; !found {
			return
		}
		delete(clients, client)
		client.closeSend()
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.clients {
		for client := range clients {
			client.closeSend()
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) send(userID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// медленный клиент: отключаем, Unregister нельзя вызывать из цикла Run
			logger.Log.WithField("user_id", userID).Warn("ws: буфер клиента переполнен, отключаем")
			c := client
			goroutine.SafeGo(c.Close)
		}
	}
}
