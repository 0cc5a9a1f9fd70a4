package app

import (
	"context"

	"job_board_service/internal/chat/domain"
	"job_board_service/internal/chat/repository"
	"job_board_service/pkg/logger"

	"go.uber.org/zap"
)

// NotificationUseCase derives one recipient's unread summary from the
// conversation store. There is no cached counter: the full scan is the
// source of truth, re-run after every send and mark-read.
type NotificationUseCase struct {
	convRepo  repository.ConversationRepository
	directory repository.DirectoryRepository
	catalog   repository.CatalogRepository
}

// NewNotificationUseCase init create notification use case
func NewNotificationUseCase(
	convRepo repository.ConversationRepository,
	directory repository.DirectoryRepository,
	catalog repository.CatalogRepository,
) *NotificationUseCase {
	return &NotificationUseCase{
		convRepo:  convRepo,
		directory: directory,
		catalog:   catalog,
	}
}

// ForParty groups the recipient's unread messages per
// (sender, job, application) and resolves each group against the
// directory. The sender is looked up in both identity spaces because kind
// is not part of the group key; a group whose sender resolves in neither
// is discarded. The job title is best effort, a missing job keeps the
// group with an empty title.
func (uc *NotificationUseCase) ForParty(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	groups, err := uc.convRepo.UnreadGroups(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, 0, len(groups))
	for _, group := range groups {
		sender, err := resolveParty(ctx, uc.directory, group.SenderID)
		if err != nil {
			return nil, err
		}
		if sender == nil {
			continue
		}

		title := ""
		job, err := uc.catalog.FindJob(ctx, group.JobID)
		if err != nil {
			logger.Log.Warn("job lookup failed during aggregation",
				zap.String("job", group.JobID), zap.Error(err))
		} else if job != nil {
			title = job.Title
		}

		notifications = append(notifications, domain.Notification{
			SenderID:      group.SenderID,
			SenderName:    sender.DisplayName,
			JobID:         group.JobID,
			JobTitle:      title,
			ApplicationID: group.ApplicationID,
			Count:         group.Count,
			LastMessage:   group.LastMessage,
		})
	}

	return notifications, nil
}
