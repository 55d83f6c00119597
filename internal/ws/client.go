package ws

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/portfolio-backend/internal/goroutine"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4 * 1024
	sendBuffer     = 16
)

// Client одно WebSocket подключение панели администратора.
type Client struct {
	conn      *websocket.Conn
	hub       *Hub
	userID    uuid.UUID
	send      chan []byte
	closeOnce sync.Once
	sendOnce  sync.Once
}

// NewClient создаёт нового клиента.
func NewClient(conn *websocket.Conn, hub *Hub, userID uuid.UUID) *Client {
	return &Client{
		conn:   conn,
		hub:    hub,
		userID: userID,
		send:   make(chan []byte, sendBuffer),
	}
}

// Run запускает обработку входящих и исходящих сообщений. Блокирует до отключения.
func (c *Client) Run(ctx context.Context) {
	goroutine.SafeGo(c.writePump)
	c.readPump(ctx)
}

// Close снимает клиента с хаба и закрывает соединение.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.Unregister(c)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// closeSend вызывается только хабом под его мьютексом.
func (c *Client) closeSend() {
	c.sendOnce.Do(func() { close(c.send) })
}

func (c *Client) readPump(ctx context.Context) {
	defer c.Close()
	defer goroutine.Recover("ws readPump")

	// клиент только слушает события, входящие сообщения игнорируются
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if ctx.Err() != nil {
			return
		}
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.WithFields(map[string]interface{}{
					"user_id": c.userID,
					"error":   err.Error(),
				}).Debug("ws: соединение прервано")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
