package realtime

import (
	"encoding/json"
	"testing"

	"github.com/crossplay/banana-engine/internal/models"
)

func TestMessageTypesAreDistinct(t *testing.T) {
	types := []MessageType{
		MsgSpectate, MsgLeaveSpectate,
		MsgSessionState, MsgSolveStarted, MsgSolveProgress, MsgSolveFinished,
		MsgSpectatorJoined, MsgSpectatorLeft, MsgError,
	}

	seen := make(map[MessageType]bool)
	for _, msgType := range types {
		if seen[msgType] {
			t.Errorf("duplicate message type: %s", msgType)
		}
		seen[msgType] = true
	}
}

func TestMessageSerialization(t *testing.T) {
	msg := Message{
		Type:    MsgSpectate,
		Payload: json.RawMessage(`{"sessionId":"abc123"}`),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if decoded.Type != msg.Type {
		t.Errorf("Type = %s, want %s", decoded.Type, msg.Type)
	}
}

func TestPayloadSerialization(t *testing.T) {
	t.Run("SpectatePayload", func(t *testing.T) {
		payload := SpectatePayload{SessionID: "sess-1"}
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Marshal error: %v", err)
		}

		var decoded SpectatePayload
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal error: %v", err)
		}
		if decoded.SessionID != payload.SessionID {
			t.Errorf("SessionID = %s, want %s", decoded.SessionID, payload.SessionID)
		}
	})

	t.Run("SolveFinishedPayload", func(t *testing.T) {
		payload := SolveFinishedPayload{
			Outcome: "success",
			PlaySeq: []models.PlacementDTO{
				{Word: "BAN", StartRow: 72, StartCol: 70, Direction: "horizontal"},
			},
			ElapsedMs: 42,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Marshal error: %v", err)
		}

		var decoded SolveFinishedPayload
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal error: %v", err)
		}
		if decoded.Outcome != "success" || len(decoded.PlaySeq) != 1 {
			t.Errorf("unexpected decoded payload: %+v", decoded)
		}
	})
}

func TestBroadcastToSessionSkipsUnknownSession(t *testing.T) {
	h := NewHub(nil)
	// No session registered; broadcasting must be a silent no-op, not a panic.
	h.broadcastToSession("missing", "", MsgSolveProgress, SolveProgressPayload{})
}

func TestSendToClientDropsOnFullChannel(t *testing.T) {
	client := &Client{UserID: "u1", Send: make(chan []byte, 1)}
	client.Send <- []byte("already full")

	h := NewHub(nil)
	h.sendToClient(client, MsgError, ErrorPayload{Message: "ignored"})

	if len(client.Send) != 1 {
		t.Errorf("expected the channel to remain at its buffered size of 1, got %d", len(client.Send))
	}
}
