package app

import (
	"encoding/json"
	"sync"

	"job_board_service/internal/chat/domain"
	"job_board_service/pkg/logger"

	"go.uber.org/zap"
)

// RoomHub fans events out to the sessions joined to an application's room.
// Rooms are implicit: they exist while they have members.
type RoomHub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*ClientSession]struct{}
	memberships map[*ClientSession]map[string]struct{}
}

// NewRoomHub create an empty RoomHub
func NewRoomHub() *RoomHub {
	return &RoomHub{
		rooms:       make(map[string]map[*ClientSession]struct{}),
		memberships: make(map[*ClientSession]map[string]struct{}),
	}
}

// Join adds s to the room; joining twice is a no-op.
func (h *RoomHub) Join(roomID string, s *ClientSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*ClientSession]struct{})
	}
	h.rooms[roomID][s] = struct{}{}

	if h.memberships[s] == nil {
		h.memberships[s] = make(map[string]struct{})
	}
	h.memberships[s][roomID] = struct{}{}
}

// Leave removes s from one room.
func (h *RoomHub) Leave(roomID string, s *ClientSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(roomID, s)
}

// LeaveAll removes s from every room it joined; called on disconnect.
func (h *RoomHub) LeaveAll(s *ClientSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for roomID := range h.memberships[s] {
		h.leaveLocked(roomID, s)
	}
	delete(h.memberships, s)
}

func (h *RoomHub) leaveLocked(roomID string, s *ClientSession) {
	room := h.rooms[roomID]
	if room == nil {
		return
	}
	delete(room, s)
	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
	if m := h.memberships[s]; m != nil {
		delete(m, roomID)
		if len(m) == 0 {
			delete(h.memberships, s)
		}
	}
}

// Broadcast delivers one event to every room member except `except`.
// Delivery is best effort: a failed write is logged and skipped, the
// transport close path cleans the member up.
func (h *RoomHub) Broadcast(roomID string, except *ClientSession, event string, data interface{}) {
	payload, err := json.Marshal(domain.WSEvent{Event: event, Data: data})
	if err != nil {
		logger.Log.Error("broadcast marshal failed", zap.String("room", roomID), zap.Error(err))
		return
	}

	h.mu.RLock()
	members := make([]*ClientSession, 0, len(h.rooms[roomID]))
	for s := range h.rooms[roomID] {
		if s != except {
			members = append(members, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range members {
		if err := s.sendRaw(payload); err != nil {
			logger.Log.Warn("broadcast write failed",
				zap.String("room", roomID),
				zap.String("party", s.PartyID),
				zap.Error(err),
			)
		}
	}
}
