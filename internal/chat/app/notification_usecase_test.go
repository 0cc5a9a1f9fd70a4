package app

import (
	"context"
	"errors"
	"testing"

	"job_board_service/internal/chat/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationUseCase_ForParty(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockDirectory := new(MockDirectoryRepository)
	mockCatalog := new(MockCatalogRepository)

	mockConvRepo.On("UnreadGroups", ctx, recipientID).Return([]domain.UnreadGroup{
		{SenderID: "seeker-1", JobID: "job-1", ApplicationID: "app-1", Count: 3, LastMessage: "any update?"},
		{SenderID: "employer-1", JobID: "job-2", ApplicationID: "app-2", Count: 1, LastMessage: "offer attached"},
	}, nil)

	mockDirectory.On("FindJobSeeker", ctx, "seeker-1").Return(&domain.Party{ID: "seeker-1", DisplayName: "Ada Lovelace"}, nil)
	mockDirectory.On("FindJobSeeker", ctx, "employer-1").Return(nil, nil)
	mockDirectory.On("FindEmployer", ctx, "employer-1").Return(&domain.Party{ID: "employer-1", DisplayName: "Acme Corp"}, nil)

	mockCatalog.On("FindJob", ctx, "job-1").Return(&domain.Job{ID: "job-1", Title: "Backend Engineer"}, nil)
	mockCatalog.On("FindJob", ctx, "job-2").Return(&domain.Job{ID: "job-2", Title: "Data Analyst"}, nil)

	uc := NewNotificationUseCase(mockConvRepo, mockDirectory, mockCatalog)
	notifications, err := uc.ForParty(ctx, recipientID)

	assert.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Equal(t, "Ada Lovelace", notifications[0].SenderName)
	assert.Equal(t, "Backend Engineer", notifications[0].JobTitle)
	assert.Equal(t, 3, notifications[0].Count)
	assert.Equal(t, "offer attached", notifications[1].LastMessage)

	mockConvRepo.AssertExpectations(t)
	mockDirectory.AssertExpectations(t)
	mockCatalog.AssertExpectations(t)
}

func TestNotificationUseCase_ForParty_UnresolvedSenderDiscarded(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockDirectory := new(MockDirectoryRepository)
	mockCatalog := new(MockCatalogRepository)

	mockConvRepo.On("UnreadGroups", ctx, recipientID).Return([]domain.UnreadGroup{
		{SenderID: "ghost", JobID: "job-1", ApplicationID: "app-1", Count: 2, LastMessage: "boo"},
		{SenderID: "seeker-1", JobID: "job-1", ApplicationID: "app-2", Count: 1, LastMessage: "hi"},
	}, nil)

	mockDirectory.On("FindJobSeeker", ctx, "ghost").Return(nil, nil)
	mockDirectory.On("FindEmployer", ctx, "ghost").Return(nil, nil)
	mockDirectory.On("FindJobSeeker", ctx, "seeker-1").Return(&domain.Party{ID: "seeker-1", DisplayName: "Ada Lovelace"}, nil)

	mockCatalog.On("FindJob", ctx, "job-1").Return(&domain.Job{ID: "job-1", Title: "Backend Engineer"}, nil)

	uc := NewNotificationUseCase(mockConvRepo, mockDirectory, mockCatalog)
	notifications, err := uc.ForParty(ctx, recipientID)

	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "seeker-1", notifications[0].SenderID)
}

func TestNotificationUseCase_ForParty_MissingJobKeepsGroup(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockDirectory := new(MockDirectoryRepository)
	mockCatalog := new(MockCatalogRepository)

	mockConvRepo.On("UnreadGroups", ctx, recipientID).Return([]domain.UnreadGroup{
		{SenderID: "seeker-1", JobID: "job-gone", ApplicationID: "app-1", Count: 1, LastMessage: "hello?"},
	}, nil)
	mockDirectory.On("FindJobSeeker", ctx, "seeker-1").Return(&domain.Party{ID: "seeker-1", DisplayName: "Ada Lovelace"}, nil)
	mockCatalog.On("FindJob", ctx, "job-gone").Return(nil, nil)

	uc := NewNotificationUseCase(mockConvRepo, mockDirectory, mockCatalog)
	notifications, err := uc.ForParty(ctx, recipientID)

	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	assert.Empty(t, notifications[0].JobTitle)
	assert.Equal(t, "hello?", notifications[0].LastMessage)
}

func TestNotificationUseCase_ForParty_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockConvRepo.On("UnreadGroups", ctx, recipientID).Return([]domain.UnreadGroup{}, nil)

	uc := NewNotificationUseCase(mockConvRepo, nil, nil)
	notifications, err := uc.ForParty(ctx, recipientID)

	assert.NoError(t, err)
	assert.NotNil(t, notifications)
	assert.Empty(t, notifications)
}

func TestNotificationUseCase_ForParty_DirectoryError(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New().String()

	mockConvRepo := new(MockConversationRepository)
	mockDirectory := new(MockDirectoryRepository)

	mockConvRepo.On("UnreadGroups", ctx, recipientID).Return([]domain.UnreadGroup{
		{SenderID: "seeker-1", JobID: "job-1", ApplicationID: "app-1", Count: 1},
	}, nil)
	mockDirectory.On("FindJobSeeker", ctx, "seeker-1").Return(nil, errors.New("directory down"))

	uc := NewNotificationUseCase(mockConvRepo, mockDirectory, nil)
	_, err := uc.ForParty(ctx, recipientID)

	assert.Error(t, err)
}
