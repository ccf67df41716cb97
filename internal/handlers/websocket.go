package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"elevator-game/internal/models"
	"elevator-game/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler feeds connected clients the live stream of settled rounds,
// the data behind a recent-multipliers bar.
type WebSocketHandler struct {
	hub *roundHub
	log *slog.Logger
}

type roundHub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan *Message
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewWebSocketHandler(log *slog.Logger) *WebSocketHandler {
	hub := &roundHub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{hub: hub, log: log}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	h.hub.register <- conn

	defer func() {
		h.hub.unregister <- conn
		conn.Close()
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read failed", "error", err)
			}
			break
		}

		if msg.Type == "PING" {
			conn.WriteJSON(Message{Type: "PONG", Data: gin.H{"timestamp": time.Now().Unix()}})
		}
	}
}

// BroadcastRound publishes a settled round to every connected client. The
// seed pair is already revealed at settlement, so the payload carries it.
func (h *WebSocketHandler) BroadcastRound(round *models.Round) {
	msg := &Message{
		Type: "ROUND_SETTLED",
		Data: gin.H{
			"id":         round.ID,
			"multiplier": round.Multiplier,
			"isWin":      round.IsWin,
			"target":     round.Target,
			"serverSeed": round.ServerSeed,
			"clientSeed": round.ClientSeed,
			"nonce":      round.Nonce,
			"timestamp":  round.CreatedAt.Unix(),
		},
	}

	select {
	case h.hub.broadcast <- msg:
	default:
		// feed is best-effort, drop when the buffer is full
	}
}

func (hub *roundHub) run() {
	for {
		select {
		case conn := <-hub.register:
			hub.clients[conn] = true

		case conn := <-hub.unregister:
			delete(hub.clients, conn)

		case message := <-hub.broadcast:
			for conn := range hub.clients {
				conn.WriteJSON(message)
			}
		}
	}
}

var _ services.Broadcaster = (*WebSocketHandler)(nil)
