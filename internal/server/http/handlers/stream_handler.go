package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Josema-montano/FastFood-Admin/internal/broadcast"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/server/http/dto"
)

const streamWriteTimeout = 5 * time.Second

// StreamHandler upgrades clients to websocket and attaches them to the
// broadcast hub.
type StreamHandler struct {
	hub      *broadcast.Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
	nextID   atomic.Int64
}

// NewStreamHandler constructs StreamHandler.
func NewStreamHandler(hub *broadcast.Hub, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Subscribe handles GET /api/stream. A table client passes ?table=N and
// receives that table's order updates; kitchen and admin staff without a
// table parameter join the kitchen feed.
func (h *StreamHandler) Subscribe(c *gin.Context) {
	var group broadcast.Group
	if table := c.Query("table"); table != "" {
		group = broadcast.TableGroup(table)
	} else {
		role := CurrentRole(c)
		if role != model.RoleKitchen && role != model.RoleAdmin {
			c.Status(http.StatusForbidden)
			return
		}
		group = broadcast.GroupKitchen
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}

	connID := fmt.Sprintf("%d-%d", CurrentUserID(c), h.nextID.Add(1))
	h.hub.Subscribe(connID, group, &wsConn{conn: conn})
	h.logger.Info("stream subscribed",
		slog.String("conn", connID),
		slog.String("group", string(group)),
	)

	go h.readLoop(connID, conn)
}

// readLoop drains client frames until the peer goes away, then detaches
// the connection from every group.
func (h *StreamHandler) readLoop(connID string, conn *websocket.Conn) {
	defer func() {
		h.hub.Drop(connID)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// wsConn adapts a websocket connection to the hub's subscriber contract.
// Writes are serialized: the hub's dispatcher is single-goroutine but the
// same connection may be registered in several groups.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) Send(event model.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return w.conn.WriteJSON(dto.NewEventMessage(event))
}
