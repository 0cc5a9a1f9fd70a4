package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"job_board_service/internal/chat/domain"
	"job_board_service/internal/chat/repository"
	"job_board_service/pkg/logger"
	"job_board_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler is the real-time entry point: it owns one read loop
// per connection and routes inbound events to the usecases. Store and
// lookup failures are logged and swallowed here, never surfaced to the
// caller; a lost chat event must not take the connection down.
type ChatWebsocketHandler struct {
	messageUC      *MessageUseCase
	notificationUC *NotificationUseCase
	registry       *SessionRegistry
	hub            *RoomHub

	limiter    repository.RateLimitRepository
	sendLimit  int
	sendWindow time.Duration
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	messageUC *MessageUseCase,
	notificationUC *NotificationUseCase,
	registry *SessionRegistry,
	hub *RoomHub,
	limiter repository.RateLimitRepository,
	sendLimit int,
	sendWindow time.Duration,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		messageUC:      messageUC,
		notificationUC: notificationUC,
		registry:       registry,
		hub:            hub,
		limiter:        limiter,
		sendLimit:      sendLimit,
		sendWindow:     sendWindow,
	}
}

// HandleConnection is the websocket entry point. The JWT middleware has
// already verified the credential and stashed the identity in Locals
// before the upgrade completed.
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	partyID, _ := conn.Locals(middlewares.TokenPartyID).(string)
	kind, _ := conn.Locals(middlewares.TokenKind).(string)
	displayName, _ := conn.Locals(middlewares.TokenDisplayName).(string)
	if partyID == "" {
		conn.Close()
		return
	}
	logger.Log.Info("websocket connected", zap.String("party", partyID), zap.String("kind", kind))

	session := NewClientSession(partyID, domain.SenderKind(kind), displayName, conn)
	h.registry.Register(partyID, session)

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		cancel()
		h.registry.Unregister(partyID, session)
		h.hub.LeaveAll(session)
		logger.Log.Info("websocket closed", zap.String("party", partyID))
		conn.Close()
	}()

	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("websocket close frame:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// keepalive ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := session.Ping(); err != nil {
					logger.Log.Errorf("ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	// the party sees its current unread summary before any client action
	h.pushNotifications(ctx, session)

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Info("connection closed", zap.String("party", partyID))
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		if mt == websocket.TextMessage {
			h.handleRequest(ctx, session, message)
		}
	}
}

func (h *ChatWebsocketHandler) handleRequest(ctx context.Context, session *ClientSession, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		logger.Log.Warn("malformed websocket request",
			zap.String("party", session.PartyID), zap.Error(err))
		return
	}

	switch req.Action {
	case string(domain.JoinRoom):
		h.joinRoom(ctx, session, req.ApplicationID)

	case string(domain.SendMessage):
		h.sendMessage(ctx, session, req.ApplicationID, req.Text)

	case string(domain.MarkAsRead):
		h.markAsRead(ctx, session, req.ApplicationID)

	default:
		logger.Log.Warn("unknown websocket action",
			zap.String("party", session.PartyID), zap.String("action", req.Action))
	}
}

// joinRoom validates the caller against the application's counterparties;
// an outsider is refused without an error event.
func (h *ChatWebsocketHandler) joinRoom(ctx context.Context, session *ClientSession, applicationID string) {
	if err := h.messageUC.ValidateMembership(ctx, applicationID, session.PartyID); err != nil {
		logger.Log.Warn("room join refused",
			zap.String("party", session.PartyID),
			zap.String("application", applicationID),
			zap.Error(err),
		)
		return
	}
	h.hub.Join(applicationID, session)
	logger.Log.Debug("room joined",
		zap.String("party", session.PartyID), zap.String("application", applicationID))
}

func (h *ChatWebsocketHandler) sendMessage(ctx context.Context, session *ClientSession, applicationID, text string) {
	if h.limiter != nil {
		allowed, _, err := h.limiter.Allow(fmt.Sprintf("send:%s", session.PartyID), h.sendLimit, h.sendWindow)
		if err != nil {
			logger.Log.Warn("send rate check failed", zap.String("party", session.PartyID), zap.Error(err))
		} else if !allowed {
			logger.Log.Warn("send rate exceeded", zap.String("party", session.PartyID))
			return
		}
	}

	sent, err := h.messageUC.Send(ctx, applicationID, session.PartyID, text)
	if err != nil {
		logger.Log.Error("send failed",
			zap.String("party", session.PartyID),
			zap.String("application", applicationID),
			zap.Error(err),
		)
		return
	}

	h.hub.Broadcast(applicationID, session, domain.EventReceiveMessage, domain.MessagePayload{
		Sender: domain.ResolvedSender{
			ID:   session.PartyID,
			Name: session.DisplayName,
		},
		SenderKind:    sent.Message.SenderKind,
		Text:          sent.Message.Text,
		Timestamp:     sent.Message.Timestamp,
		Read:          sent.Message.Read,
		ApplicationID: applicationID,
	})

	if recipient := h.registry.Get(sent.RecipientID); recipient != nil {
		h.pushNotifications(ctx, recipient)
	}
}

func (h *ChatWebsocketHandler) markAsRead(ctx context.Context, session *ClientSession, applicationID string) {
	if err := h.messageUC.MarkRead(ctx, applicationID, session.PartyID); err != nil {
		logger.Log.Error("mark-read failed",
			zap.String("party", session.PartyID),
			zap.String("application", applicationID),
			zap.Error(err),
		)
		return
	}
	// badge counts update immediately for the reader
	h.pushNotifications(ctx, session)
}

func (h *ChatWebsocketHandler) pushNotifications(ctx context.Context, session *ClientSession) {
	notifications, err := h.notificationUC.ForParty(ctx, session.PartyID)
	if err != nil {
		logger.Log.Error("notification aggregation failed",
			zap.String("party", session.PartyID), zap.Error(err))
		return
	}
	if err := session.SendEvent(domain.EventNotifications, notifications); err != nil {
		logger.Log.Warn("notification push failed",
			zap.String("party", session.PartyID), zap.Error(err))
	}
}
