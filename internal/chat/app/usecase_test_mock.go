package app

import (
	"context"
	"encoding/json"
	"sync"

	"job_board_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockConversationRepository Mock ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

// AppendMessage mock append msg
func (m *MockConversationRepository) AppendMessage(ctx context.Context, applicationID, jobID string, participants []string, msg domain.ChatMessage) error {
	args := m.Called(ctx, applicationID, jobID, participants, msg)
	return args.Error(0)
}

// FindByApplication mock find conversation by application id
func (m *MockConversationRepository) FindByApplication(ctx context.Context, applicationID string) (*domain.Conversation, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead mock mark read
func (m *MockConversationRepository) MarkRead(ctx context.Context, applicationID, readerID string) error {
	args := m.Called(ctx, applicationID, readerID)
	return args.Error(0)
}

// Delete mock delete conversation
func (m *MockConversationRepository) Delete(ctx context.Context, applicationID string) error {
	args := m.Called(ctx, applicationID)
	return args.Error(0)
}

// UnreadGroups mock unread aggregation
func (m *MockConversationRepository) UnreadGroups(ctx context.Context, recipientID string) ([]domain.UnreadGroup, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.UnreadGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockDirectoryRepository Mock DirectoryRepository
type MockDirectoryRepository struct {
	mock.Mock
}

// FindJobSeeker mock find job seeker by id
func (m *MockDirectoryRepository) FindJobSeeker(ctx context.Context, id string) (*domain.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Party), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindEmployer mock find employer by id
func (m *MockDirectoryRepository) FindEmployer(ctx context.Context, id string) (*domain.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Party), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCatalogRepository Mock CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

// AutoMigrate mock migrate
func (m *MockCatalogRepository) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

// FindApplication mock find application by id
func (m *MockCatalogRepository) FindApplication(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindJob mock find job by id
func (m *MockCatalogRepository) FindJob(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventPublisher Mock EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// MessageSent mock publish message event
func (m *MockEventPublisher) MessageSent(ctx context.Context, applicationID string, msg domain.ChatMessage) error {
	args := m.Called(ctx, applicationID, msg)
	return args.Error(0)
}

// fakeSocket collects everything written through a session so tests can
// decode the outbound event envelopes.
type fakeSocket struct {
	mu     sync.Mutex
	frames [][]byte
	err    error
}

func (f *fakeSocket) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.frames = append(f.frames, cp)
	return nil
}

func (f *fakeSocket) events() []domain.WSEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.WSEvent, 0, len(f.frames))
	for _, frame := range f.frames {
		var ev domain.WSEvent
		if err := json.Unmarshal(frame, &ev); err == nil {
			out = append(out, ev)
		}
	}
	return out
}
