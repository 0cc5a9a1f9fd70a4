package app

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"job_board_service/internal/chat/domain"

	"github.com/cucumber/godog"
)

// In-memory fakes backing the feature suite; they implement the same
// repository contracts as the Mongo and Postgres implementations.

type memoryConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*domain.Conversation
}

func newMemoryConversationRepo() *memoryConversationRepo {
	return &memoryConversationRepo{conversations: make(map[string]*domain.Conversation)}
}

func (r *memoryConversationRepo) AppendMessage(ctx context.Context, applicationID, jobID string, participants []string, msg domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[applicationID]
	if !ok {
		conv = &domain.Conversation{
			ApplicationID: applicationID,
			JobID:         jobID,
			Participants:  participants,
		}
		r.conversations[applicationID] = conv
	}
	conv.Messages = append(conv.Messages, msg)
	return nil
}

func (r *memoryConversationRepo) FindByApplication(ctx context.Context, applicationID string) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[applicationID]
	if !ok {
		return nil, nil
	}
	cp := *conv
	cp.Messages = append([]domain.ChatMessage(nil), conv.Messages...)
	return &cp, nil
}

func (r *memoryConversationRepo) MarkRead(ctx context.Context, applicationID, readerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.conversations[applicationID]
	if !ok {
		return nil
	}
	for i := range conv.Messages {
		if conv.Messages[i].Sender != readerID {
			conv.Messages[i].Read = true
		}
	}
	return nil
}

func (r *memoryConversationRepo) Delete(ctx context.Context, applicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, applicationID)
	return nil
}

func (r *memoryConversationRepo) UnreadGroups(ctx context.Context, recipientID string) ([]domain.UnreadGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var groups []domain.UnreadGroup
	index := make(map[string]int)
	for _, conv := range r.conversations {
		participant := false
		for _, p := range conv.Participants {
			if p == recipientID {
				participant = true
				break
			}
		}
		if !participant {
			continue
		}
		for _, msg := range conv.Messages {
			if msg.Read || msg.Sender == recipientID {
				continue
			}
			key := msg.Sender + "|" + conv.JobID + "|" + conv.ApplicationID
			i, ok := index[key]
			if !ok {
				i = len(groups)
				index[key] = i
				groups = append(groups, domain.UnreadGroup{
					SenderID:      msg.Sender,
					JobID:         conv.JobID,
					ApplicationID: conv.ApplicationID,
				})
			}
			groups[i].Count++
			groups[i].LastMessage = msg.Text
		}
	}
	return groups, nil
}

type memoryDirectory struct {
	jobSeekers map[string]string
	employers  map[string]string
}

func (d *memoryDirectory) FindJobSeeker(ctx context.Context, id string) (*domain.Party, error) {
	name, ok := d.jobSeekers[id]
	if !ok {
		return nil, nil
	}
	return &domain.Party{ID: id, DisplayName: name}, nil
}

func (d *memoryDirectory) FindEmployer(ctx context.Context, id string) (*domain.Party, error) {
	name, ok := d.employers[id]
	if !ok {
		return nil, nil
	}
	return &domain.Party{ID: id, DisplayName: name}, nil
}

type memoryCatalog struct {
	applications map[string]*domain.Application
	jobs         map[string]*domain.Job
}

func (c *memoryCatalog) AutoMigrate() error { return nil }

func (c *memoryCatalog) FindApplication(ctx context.Context, id string) (*domain.Application, error) {
	app, ok := c.applications[id]
	if !ok {
		return nil, nil
	}
	cp := *app
	return &cp, nil
}

func (c *memoryCatalog) FindJob(ctx context.Context, id string) (*domain.Job, error) {
	job, ok := c.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

type messagingWorld struct {
	convRepo  *memoryConversationRepo
	directory *memoryDirectory
	catalog   *memoryCatalog

	messageUC      *MessageUseCase
	notificationUC *NotificationUseCase

	lastGroups       []domain.Notification
	lastConversation *domain.Conversation
}

func newMessagingWorld() *messagingWorld {
	w := &messagingWorld{
		convRepo: newMemoryConversationRepo(),
		directory: &memoryDirectory{
			jobSeekers: make(map[string]string),
			employers:  make(map[string]string),
		},
		catalog: &memoryCatalog{
			applications: make(map[string]*domain.Application),
			jobs:         make(map[string]*domain.Job),
		},
	}
	w.messageUC = NewMessageUseCase(w.convRepo, w.directory, w.catalog, nil)
	w.notificationUC = NewNotificationUseCase(w.convRepo, w.directory, w.catalog)
	return w
}

func (w *messagingWorld) partyApplied(seeker, jobID, employer, applicationID string) error {
	w.directory.jobSeekers[seeker] = seeker
	w.directory.employers[employer] = employer
	w.catalog.jobs[jobID] = &domain.Job{ID: jobID, EmployerID: employer, Title: jobID}
	w.catalog.applications[applicationID] = &domain.Application{
		ID:          applicationID,
		JobID:       jobID,
		JobSeekerID: seeker,
		EmployerID:  employer,
	}
	return nil
}

func (w *messagingWorld) partySends(sender, text, applicationID string) error {
	_, err := w.messageUC.Send(context.Background(), applicationID, sender, text)
	return err
}

func (w *messagingWorld) conversationHasMessages(applicationID string, count int) error {
	conv, err := w.convRepo.FindByApplication(context.Background(), applicationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return fmt.Errorf("conversation %s does not exist", applicationID)
	}
	if len(conv.Messages) != count {
		return fmt.Errorf("expected %d messages, got %d", count, len(conv.Messages))
	}
	w.lastConversation = conv
	return nil
}

func (w *messagingWorld) theMessageIsUnread() error {
	if w.lastConversation == nil || len(w.lastConversation.Messages) == 0 {
		return fmt.Errorf("no conversation loaded")
	}
	if w.lastConversation.Messages[0].Read {
		return fmt.Errorf("expected the message to be unread")
	}
	return nil
}

func (w *messagingWorld) partyHasGroups(party string, count int) error {
	groups, err := w.notificationUC.ForParty(context.Background(), party)
	if err != nil {
		return err
	}
	if len(groups) != count {
		return fmt.Errorf("expected %d notification groups for %s, got %d", count, party, len(groups))
	}
	w.lastGroups = groups
	return nil
}

func (w *messagingWorld) groupCounts(count int, lastMessage string) error {
	if len(w.lastGroups) != 1 {
		return fmt.Errorf("expected exactly one group, got %d", len(w.lastGroups))
	}
	g := w.lastGroups[0]
	if g.Count != count {
		return fmt.Errorf("expected count %d, got %d", count, g.Count)
	}
	if g.LastMessage != lastMessage {
		return fmt.Errorf("expected last message %q, got %q", lastMessage, g.LastMessage)
	}
	return nil
}

func (w *messagingWorld) partyMarksRead(party, applicationID string) error {
	return w.messageUC.MarkRead(context.Background(), applicationID, party)
}

func (w *messagingWorld) partyRefusedToJoin(party, applicationID string) error {
	err := w.messageUC.ValidateMembership(context.Background(), applicationID, party)
	if err == nil {
		return fmt.Errorf("expected %s to be refused", party)
	}
	return nil
}

func (w *messagingWorld) conversationDeleted(applicationID string) error {
	return w.messageUC.DeleteHistory(context.Background(), applicationID)
}

func (w *messagingWorld) historyIsEmpty(applicationID string) error {
	history, err := w.messageUC.History(context.Background(), applicationID)
	if err != nil {
		return err
	}
	if len(history) != 0 {
		return fmt.Errorf("expected empty history, got %d messages", len(history))
	}
	return nil
}

// InitializeMessagingScenario binds the messaging feature steps.
func InitializeMessagingScenario(ctx *godog.ScenarioContext) {
	var w *messagingWorld

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		w = newMessagingWorld()
		return c, nil
	})

	ctx.Step(`^job seeker "([^"]*)" applied to job "([^"]*)" of employer "([^"]*)" as application "([^"]*)"$`,
		func(seeker, job, employer, application string) error {
			return w.partyApplied(seeker, job, employer, application)
		})
	ctx.Step(`^"([^"]*)" sends "([^"]*)" on application "([^"]*)"$`,
		func(sender, text, application string) error { return w.partySends(sender, text, application) })
	ctx.Step(`^the conversation of application "([^"]*)" has (\d+) message(?:s)?$`,
		func(application string, count int) error { return w.conversationHasMessages(application, count) })
	ctx.Step(`^the message is unread$`, func() error { return w.theMessageIsUnread() })
	ctx.Step(`^"([^"]*)" has (\d+) notification group(?:s)?$`,
		func(party string, count int) error { return w.partyHasGroups(party, count) })
	ctx.Step(`^the group counts (\d+) unread messages with last message "([^"]*)"$`,
		func(count int, last string) error { return w.groupCounts(count, last) })
	ctx.Step(`^"([^"]*)" marks application "([^"]*)" as read$`,
		func(party, application string) error { return w.partyMarksRead(party, application) })
	ctx.Step(`^"([^"]*)" is refused to join the room of application "([^"]*)"$`,
		func(party, application string) error { return w.partyRefusedToJoin(party, application) })
	ctx.Step(`^the conversation of application "([^"]*)" is deleted$`,
		func(application string) error { return w.conversationDeleted(application) })
	ctx.Step(`^the history of application "([^"]*)" is empty$`,
		func(application string) error { return w.historyIsEmpty(application) })
}

func TestMessagingFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeMessagingScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
