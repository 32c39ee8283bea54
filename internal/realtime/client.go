package realtime

// Client is a single WebSocket connection registered with the Hub. The
// websocket read/write pumps that populate Send and drain incoming frames
// live in internal/api, which owns the gorilla/websocket connection itself.
type Client struct {
	UserID    string
	SessionID string
	Send      chan []byte
}
