package app

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"job_board_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

// overlapSocket fails when two writers are inside WriteMessage at once,
// the way the real connection panics on concurrent writes.
type overlapSocket struct {
	active int32
	failed int32
}

func (o *overlapSocket) WriteMessage(messageType int, data []byte) error {
	if atomic.AddInt32(&o.active, 1) > 1 {
		atomic.StoreInt32(&o.failed, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&o.active, -1)
	if atomic.LoadInt32(&o.failed) == 1 {
		return fmt.Errorf("concurrent write to websocket connection")
	}
	return nil
}

func TestClientSession_SendEvent(t *testing.T) {
	sock := &fakeSocket{}
	s := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada Lovelace", sock)

	err := s.SendEvent(domain.EventNotifications, []domain.Notification{})
	assert.NoError(t, err)

	events := sock.events()
	assert.Len(t, events, 1)
	assert.Equal(t, domain.EventNotifications, events[0].Event)
}

func TestClientSession_PingSerializedWithEventWrites(t *testing.T) {
	sock := &overlapSocket{}
	s := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada Lovelace", sock)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Ping())
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, s.SendEvent(domain.EventNotifications, []domain.Notification{}))
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&sock.failed))
}

func TestSessionRegistry_RegisterDisplacesPrior(t *testing.T) {
	registry := NewSessionRegistry()

	first := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", &fakeSocket{})
	second := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", &fakeSocket{})

	registry.Register("seeker-1", first)
	registry.Register("seeker-1", second)

	assert.Same(t, second, registry.Get("seeker-1"))
}

func TestSessionRegistry_StaleUnregisterKeepsNewerSession(t *testing.T) {
	registry := NewSessionRegistry()

	first := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", &fakeSocket{})
	second := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", &fakeSocket{})

	registry.Register("seeker-1", first)
	registry.Register("seeker-1", second)

	// the displaced connection disconnects after the new login
	registry.Unregister("seeker-1", first)
	assert.Same(t, second, registry.Get("seeker-1"))

	registry.Unregister("seeker-1", second)
	assert.Nil(t, registry.Get("seeker-1"))
}

func TestRoomHub_BroadcastSkipsSender(t *testing.T) {
	hub := NewRoomHub()

	senderSock := &fakeSocket{}
	otherSock := &fakeSocket{}
	sender := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", senderSock)
	other := NewClientSession("employer-1", domain.SenderEmployer, "Acme", otherSock)

	hub.Join("app-1", sender)
	hub.Join("app-1", other)

	hub.Broadcast("app-1", sender, domain.EventReceiveMessage, domain.MessagePayload{Text: "hello"})

	assert.Empty(t, senderSock.events())
	events := otherSock.events()
	assert.Len(t, events, 1)
	assert.Equal(t, domain.EventReceiveMessage, events[0].Event)
}

func TestRoomHub_BroadcastScopedToRoom(t *testing.T) {
	hub := NewRoomHub()

	aSock := &fakeSocket{}
	bSock := &fakeSocket{}
	a := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", aSock)
	b := NewClientSession("seeker-2", domain.SenderJobSeeker, "Grace", bSock)

	hub.Join("app-1", a)
	hub.Join("app-2", b)

	hub.Broadcast("app-1", nil, domain.EventReceiveMessage, domain.MessagePayload{Text: "hello"})

	assert.Len(t, aSock.events(), 1)
	assert.Empty(t, bSock.events())
}

func TestRoomHub_JoinTwiceDeliversOnce(t *testing.T) {
	hub := NewRoomHub()

	sock := &fakeSocket{}
	s := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", sock)

	hub.Join("app-1", s)
	hub.Join("app-1", s)

	hub.Broadcast("app-1", nil, domain.EventReceiveMessage, domain.MessagePayload{Text: "hello"})
	assert.Len(t, sock.events(), 1)
}

func TestRoomHub_LeaveAll(t *testing.T) {
	hub := NewRoomHub()

	sock := &fakeSocket{}
	s := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", sock)

	hub.Join("app-1", s)
	hub.Join("app-2", s)
	hub.LeaveAll(s)

	hub.Broadcast("app-1", nil, domain.EventReceiveMessage, domain.MessagePayload{Text: "hello"})
	hub.Broadcast("app-2", nil, domain.EventReceiveMessage, domain.MessagePayload{Text: "hello"})
	assert.Empty(t, sock.events())
}

func TestRoomHub_FailedWriteDoesNotBlockOthers(t *testing.T) {
	hub := NewRoomHub()

	brokenSock := &fakeSocket{err: assert.AnError}
	okSock := &fakeSocket{}
	broken := NewClientSession("seeker-1", domain.SenderJobSeeker, "Ada", brokenSock)
	ok := NewClientSession("employer-1", domain.SenderEmployer, "Acme", okSock)

	hub.Join("app-1", broken)
	hub.Join("app-1", ok)

	hub.Broadcast("app-1", nil, domain.EventReceiveMessage, domain.MessagePayload{Text: "hello"})
	assert.Len(t, okSock.events(), 1)
}
