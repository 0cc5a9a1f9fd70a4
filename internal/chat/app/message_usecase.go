package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"job_board_service/internal/chat/domain"
	"job_board_service/internal/chat/repository"
	"job_board_service/pkg"
	"job_board_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrEmptyMessage sendMessage with blank text
	ErrEmptyMessage = errors.New("message text is empty")
	// ErrApplicationNotFound the application id resolves to nothing
	ErrApplicationNotFound = errors.New("application not found")
	// ErrNotParticipant the party is not a counterparty of the application
	ErrNotParticipant = errors.New("party is not a participant of the application")
)

// SentMessage is the outcome of a successful send: the persisted message
// and the counterparty it must be delivered to.
type SentMessage struct {
	Message     domain.ChatMessage
	JobID       string
	RecipientID string
}

// MessageUseCase handles the conversation lifecycle: send, history,
// mark-read and delete.
type MessageUseCase struct {
	convRepo  repository.ConversationRepository
	directory repository.DirectoryRepository
	catalog   repository.CatalogRepository
	events    repository.EventPublisher
}

// NewMessageUseCase init create message use case
func NewMessageUseCase(
	convRepo repository.ConversationRepository,
	directory repository.DirectoryRepository,
	catalog repository.CatalogRepository,
	events repository.EventPublisher,
) *MessageUseCase {
	return &MessageUseCase{
		convRepo:  convRepo,
		directory: directory,
		catalog:   catalog,
		events:    events,
	}
}

// Send resolves the application, appends the message (creating the
// conversation on first send) and reports the recipient. The recipient is
// whichever counterparty is not the sender, decided by comparing the
// sender to the applicant id.
func (uc *MessageUseCase) Send(ctx context.Context, applicationID, senderID, text string) (*SentMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	application, err := uc.catalog.FindApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	senderKind := domain.SenderEmployer
	recipientID := application.JobSeekerID
	if senderID == application.JobSeekerID {
		senderKind = domain.SenderJobSeeker
		recipientID = application.EmployerID
	}

	msg := domain.ChatMessage{
		ID:         uuid.New().String(),
		Sender:     senderID,
		SenderKind: senderKind,
		Text:       text,
		Timestamp:  time.Now(),
		Read:       false,
	}

	participants := []string{application.JobSeekerID, application.EmployerID}
	if err := uc.convRepo.AppendMessage(ctx, applicationID, application.JobID, participants, msg); err != nil {
		return nil, err
	}

	if uc.events != nil {
		if err := uc.events.MessageSent(ctx, applicationID, msg); err != nil {
			logger.Log.Warn("message event publish failed",
				zap.String("application", applicationID), zap.Error(err))
		}
	}

	return &SentMessage{
		Message:     msg,
		JobID:       application.JobID,
		RecipientID: recipientID,
	}, nil
}

// ValidateMembership checks the party against the application's two
// counterparties; used at room join.
func (uc *MessageUseCase) ValidateMembership(ctx context.Context, applicationID, partyID string) error {
	application, err := uc.catalog.FindApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if application == nil {
		return ErrApplicationNotFound
	}
	if !pkg.Contains([]string{application.JobSeekerID, application.EmployerID}, partyID) {
		return ErrNotParticipant
	}
	return nil
}

// History returns the conversation in append order with senders
// batch-resolved: distinct ids collected first, each resolved exactly once
// in the job seeker space then the employer space.
func (uc *MessageUseCase) History(ctx context.Context, applicationID string) ([]domain.ResolvedMessage, error) {
	conv, err := uc.convRepo.FindByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return []domain.ResolvedMessage{}, nil
	}

	senders := make(map[string]domain.ResolvedSender)
	for _, msg := range conv.Messages {
		if _, ok := senders[msg.Sender]; ok {
			continue
		}
		party, err := resolveParty(ctx, uc.directory, msg.Sender)
		if err != nil {
			return nil, err
		}
		resolved := domain.ResolvedSender{ID: msg.Sender}
		if party != nil {
			resolved.Name = party.DisplayName
		}
		senders[msg.Sender] = resolved
	}

	history := make([]domain.ResolvedMessage, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		history = append(history, domain.ResolvedMessage{
			Sender:     senders[msg.Sender],
			SenderKind: msg.SenderKind,
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
			Read:       msg.Read,
		})
	}
	return history, nil
}

// MarkRead flips every unread message not sent by readerID; no-op when the
// conversation does not exist.
func (uc *MessageUseCase) MarkRead(ctx context.Context, applicationID, readerID string) error {
	return uc.convRepo.MarkRead(ctx, applicationID, readerID)
}

// DeleteHistory removes the conversation permanently.
func (uc *MessageUseCase) DeleteHistory(ctx context.Context, applicationID string) error {
	return uc.convRepo.Delete(ctx, applicationID)
}

// resolveParty tries the job seeker directory first, then employers;
// (nil, nil) when the id exists in neither space.
func resolveParty(ctx context.Context, directory repository.DirectoryRepository, id string) (*domain.Party, error) {
	party, err := directory.FindJobSeeker(ctx, id)
	if err != nil {
		return nil, err
	}
	if party != nil {
		return party, nil
	}
	return directory.FindEmployer(ctx, id)
}
