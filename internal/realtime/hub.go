package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/crossplay/banana-engine/internal/db"
	"github.com/crossplay/banana-engine/internal/models"
)

// MessageType defines the type of WebSocket message exchanged over a
// solve session's spectator channel.
type MessageType string

const (
	// Client to Server
	MsgSpectate      MessageType = "spectate"
	MsgLeaveSpectate MessageType = "leave_spectate"

	// Server to Client
	MsgSessionState  MessageType = "session_state"
	MsgSolveStarted  MessageType = "solve_started"
	MsgSolveProgress MessageType = "solve_progress"
	MsgSolveFinished MessageType = "solve_finished"
	MsgSpectatorJoined MessageType = "spectator_joined"
	MsgSpectatorLeft MessageType = "spectator_left"
	MsgError         MessageType = "error"
)

// Message is the envelope for every frame sent over the socket.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Payload types

// SpectatePayload is the client->server request to watch a solve session.
type SpectatePayload struct {
	SessionID string `json:"sessionId"`
}

// SessionStatePayload is sent to a spectator immediately after joining.
type SessionStatePayload struct {
	Session *models.SolveSession   `json:"session"`
	PlaySeq []models.PlacementDTO  `json:"playSeq"`
}

// SolveProgressPayload reports one newly-committed placement mid-search.
type SolveProgressPayload struct {
	Placement models.PlacementDTO `json:"placement"`
}

// SolveFinishedPayload reports the terminal outcome of a solve.
type SolveFinishedPayload struct {
	Outcome   string                 `json:"outcome"`
	PlaySeq   []models.PlacementDTO  `json:"playSeq"`
	ElapsedMs int64                  `json:"elapsedMs"`
}

// SpectatorJoinedPayload / SpectatorLeftPayload announce presence changes.
type SpectatorJoinedPayload struct {
	UserID string `json:"userId"`
}

type SpectatorLeftPayload struct {
	UserID string `json:"userId"`
}

// ErrorPayload carries a human-readable error back to one client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// session tracks the spectators currently attached to one solve run.
type session struct {
	id         string
	spectators map[string]*Client
	playSeq    []models.PlacementDTO
	mutex      sync.RWMutex
}

// Hub fans solve events out to every spectator of a session, the
// Bananagrams-solve analogue of the teacher's multiplayer room hub: one
// host runs PlayFromScratch/PlayFurther, and the hub relays the outcome to
// the others once the solve returns instead of letting them edit the
// board collaboratively.
type Hub struct {
	db         *db.Database
	clients    map[string]*Client // userID -> client
	sessions   map[string]*session
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

func NewHub(database *db.Database) *Hub {
	return &Hub{
		db:         database,
		clients:    make(map[string]*Client),
		sessions:   make(map[string]*session),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client.UserID] = client
			h.mutex.Unlock()
			log.Printf("Client registered: %s", client.UserID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client.UserID]; ok {
				delete(h.clients, client.UserID)
				close(client.Send)
			}
			h.mutex.Unlock()

			if client.SessionID != "" {
				h.removeSpectator(client)
			}
			log.Printf("Client unregistered: %s", client.UserID)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) HandleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case MsgSpectate:
		h.handleSpectate(client, msg.Payload)
	case MsgLeaveSpectate:
		h.handleLeaveSpectate(client)
	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}

func (h *Hub) handleSpectate(client *Client, payload json.RawMessage) {
	var p SpectatePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		h.sendError(client, "invalid payload")
		return
	}

	sess, err := h.db.GetSolveSession(p.SessionID)
	if err != nil || sess == nil {
		h.sendError(client, "session not found")
		return
	}

	h.mutex.Lock()
	hubSession, exists := h.sessions[sess.ID]
	if !exists {
		hubSession = &session{id: sess.ID, spectators: make(map[string]*Client)}
		h.sessions[sess.ID] = hubSession
	}
	h.mutex.Unlock()

	hubSession.mutex.Lock()
	hubSession.spectators[client.UserID] = client
	playSeqSnapshot := append([]models.PlacementDTO(nil), hubSession.playSeq...)
	hubSession.mutex.Unlock()

	client.SessionID = sess.ID
	h.db.SetSpectatorPresence(context.Background(), sess.ID, client.UserID)

	h.sendToClient(client, MsgSessionState, SessionStatePayload{
		Session: sess,
		PlaySeq: playSeqSnapshot,
	})

	h.broadcastToSession(sess.ID, client.UserID, MsgSpectatorJoined, SpectatorJoinedPayload{UserID: client.UserID})
}

func (h *Hub) handleLeaveSpectate(client *Client) {
	if client.SessionID == "" {
		return
	}
	h.removeSpectator(client)
}

// BroadcastProgress records one placement on the session and sends it to
// the session's spectators. The solve handlers do not call it; they only
// post BroadcastFinished after the engine returns.
func (h *Hub) BroadcastProgress(sessionID string, placement models.PlacementDTO) {
	h.mutex.Lock()
	hubSession, exists := h.sessions[sessionID]
	h.mutex.Unlock()
	if !exists {
		return
	}

	hubSession.mutex.Lock()
	hubSession.playSeq = append(hubSession.playSeq, placement)
	hubSession.mutex.Unlock()

	h.broadcastToSession(sessionID, "", MsgSolveProgress, SolveProgressPayload{Placement: placement})
}

// BroadcastFinished announces the terminal outcome and tears down the
// in-memory session bookkeeping; the persisted row survives in Postgres.
func (h *Hub) BroadcastFinished(sessionID, outcome string, playSeq []models.PlacementDTO, elapsedMs int64) {
	h.broadcastToSession(sessionID, "", MsgSolveFinished, SolveFinishedPayload{
		Outcome:   outcome,
		PlaySeq:   playSeq,
		ElapsedMs: elapsedMs,
	})
	h.db.EndSolveSession(sessionID)

	h.mutex.Lock()
	delete(h.sessions, sessionID)
	h.mutex.Unlock()
}

func (h *Hub) removeSpectator(client *Client) {
	h.mutex.RLock()
	hubSession, exists := h.sessions[client.SessionID]
	h.mutex.RUnlock()

	if !exists {
		return
	}

	hubSession.mutex.Lock()
	delete(hubSession.spectators, client.UserID)
	isEmpty := len(hubSession.spectators) == 0
	hubSession.mutex.Unlock()

	h.db.RemoveSpectatorPresence(context.Background(), client.SessionID, client.UserID)
	h.broadcastToSession(client.SessionID, client.UserID, MsgSpectatorLeft, SpectatorLeftPayload{UserID: client.UserID})

	if isEmpty {
		h.mutex.Lock()
		delete(h.sessions, client.SessionID)
		h.mutex.Unlock()
	}

	client.SessionID = ""
}

func (h *Hub) sendToClient(client *Client, msgType MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	msgData, err := json.Marshal(Message{Type: msgType, Payload: data})
	if err != nil {
		return
	}

	select {
	case client.Send <- msgData:
	default:
		// Channel full, skip message
	}
}

func (h *Hub) broadcastToSession(sessionID string, excludeUserID string, msgType MessageType, payload interface{}) {
	h.mutex.RLock()
	hubSession, exists := h.sessions[sessionID]
	h.mutex.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	msgData, err := json.Marshal(Message{Type: msgType, Payload: data})
	if err != nil {
		return
	}

	hubSession.mutex.RLock()
	for userID, client := range hubSession.spectators {
		if userID != excludeUserID {
			select {
			case client.Send <- msgData:
			default:
				// Channel full, skip message
			}
		}
	}
	hubSession.mutex.RUnlock()
}

func (h *Hub) sendError(client *Client, message string) {
	h.sendToClient(client, MsgError, ErrorPayload{Message: message})
}
