package app

import (
	"encoding/json"
	"sync"

	"job_board_service/internal/chat/domain"

	"github.com/gofiber/websocket/v2"
)

// socketWriter is the minimal surface the session needs from a websocket
// connection; tests substitute an in-memory writer.
type socketWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// ClientSession is one live, authenticated websocket connection. Writes are
// serialized through the session: room broadcasts and notification pushes
// run on different goroutines and the underlying conn is not write-safe.
type ClientSession struct {
	PartyID     string
	Kind        domain.SenderKind
	DisplayName string

	mu   sync.Mutex
	conn socketWriter
}

// NewClientSession wraps conn with the identity decoded at the handshake.
func NewClientSession(partyID string, kind domain.SenderKind, displayName string, conn socketWriter) *ClientSession {
	return &ClientSession{
		PartyID:     partyID,
		Kind:        kind,
		DisplayName: displayName,
		conn:        conn,
	}
}

// SendEvent marshals and delivers one outbound event envelope.
func (s *ClientSession) SendEvent(event string, data interface{}) error {
	payload, err := json.Marshal(domain.WSEvent{Event: event, Data: data})
	if err != nil {
		return err
	}
	return s.sendRaw(payload)
}

func (s *ClientSession) sendRaw(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// Ping writes a keepalive frame under the same lock as event writes; the
// ticker goroutine must never touch the conn unserialized.
func (s *ClientSession) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.PingMessage, []byte("ping"))
}
