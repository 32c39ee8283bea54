package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/crossplay/banana-engine/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeSpectatorWs handles GET /api/ws: upgrades the connection and hands
// it to the realtime hub as a spectator client. The client authenticates
// with a "token" query parameter since the browser WebSocket API cannot
// set an Authorization header on the handshake request.
func (h *Handlers) ServeSpectatorWs(c *gin.Context) {
	userID := ""
	if token := c.Query("token"); token != "" {
		if claims, err := h.authService.ValidateToken(token); err == nil {
			userID = claims.UserID
		}
	}
	if userID == "" {
		userID = "guest-" + uuid.New().String()[:8]
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &realtime.Client{UserID: userID, Send: make(chan []byte, 256)}
	h.hubFull().Register(client)

	go h.writePump(conn, client)
	h.readPump(conn, client)
}

// hubFull narrows HubInterface back to the concrete *realtime.Hub needed
// for connection registration; ServeSpectatorWs is the one place in this
// package that needs the full hub rather than the broadcast-only subset.
func (h *Handlers) hubFull() *realtime.Hub {
	hub, ok := h.hub.(*realtime.Hub)
	if !ok {
		panic("realtime hub not wired")
	}
	return hub
}

func (h *Handlers) readPump(conn *websocket.Conn, client *realtime.Client) {
	defer func() {
		h.hubFull().Unregister(client)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg realtime.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		h.hubFull().HandleMessage(client, &msg)
	}
}

func (h *Handlers) writePump(conn *websocket.Conn, client *realtime.Client) {
	defer conn.Close()

	for data := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}
