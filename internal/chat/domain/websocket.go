package domain

import "time"

// Action websocket request action
type Action string

const (
	// JoinRoom websocket action joinRoom
	JoinRoom Action = "joinRoom"
	// SendMessage websocket action sendMessage
	SendMessage Action = "sendMessage"
	// MarkAsRead websocket action markAsRead
	MarkAsRead Action = "markAsRead"
)

// Outbound event names pushed by the gateway.
const (
	// EventReceiveMessage delivered to the other room members on send
	EventReceiveMessage = "receiveMessage"
	// EventNotifications refreshed unread summary for one party
	EventNotifications = "notifications"
)

// WSRequest websocket request envelope. There is no sender field: the
// sender is always the connection's authenticated identity, and any
// senderId a client includes is ignored.
type WSRequest struct {
	Action        string `json:"action"`
	ApplicationID string `json:"applicationId"`
	Text          string `json:"text"`
}

// WSEvent websocket outbound envelope
type WSEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// MessagePayload is the receiveMessage event body.
type MessagePayload struct {
	Sender        ResolvedSender `json:"sender"`
	SenderKind    SenderKind     `json:"senderType"`
	Text          string         `json:"text"`
	Timestamp     time.Time      `json:"timestamp"`
	Read          bool           `json:"read"`
	ApplicationID string         `json:"applicationId"`
}
