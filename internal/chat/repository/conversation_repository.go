package repository

import (
	"context"
	"fmt"
	"time"

	"job_board_service/internal/chat/domain"
	errprocess "job_board_service/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository definition durable conversation operations
type ConversationRepository interface {
	// AppendMessage pushes msg onto the conversation for applicationID,
	// creating the conversation seeded with jobID and participants when it
	// does not exist yet.
	AppendMessage(ctx context.Context, applicationID, jobID string, participants []string, msg domain.ChatMessage) error
	// FindByApplication returns (nil, nil) when no conversation exists.
	FindByApplication(ctx context.Context, applicationID string) (*domain.Conversation, error)
	// MarkRead flips read=true on every message not sent by readerID.
	MarkRead(ctx context.Context, applicationID, readerID string) error
	// Delete removes the conversation entirely; absent is not an error.
	Delete(ctx context.Context, applicationID string) error
	// UnreadGroups groups recipientID's unread messages by
	// (sender, job, application) with a count and the latest text.
	UnreadGroups(ctx context.Context, recipientID string) ([]domain.UnreadGroup, error)
}

type conversationRepository struct {
	coll *mongo.Collection
}

// NewMongoConversationRepository create a ConversationRepository
func NewMongoConversationRepository(db *mongo.Database) ConversationRepository {
	return &conversationRepository{
		coll: db.Collection("conversations"),
	}
}

// EnsureConversationIndexes creates the unique application_id index backing
// the one-conversation-per-application invariant.
func EnsureConversationIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("conversations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "application_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// AppendMessage is a single upsert: the document write both creates the
// conversation lazily and serializes concurrent appends on it.
func (r *conversationRepository) AppendMessage(ctx context.Context, applicationID, jobID string, participants []string, msg domain.ChatMessage) error {
	now := time.Now()
	filter := bson.M{"application_id": applicationID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"application_id": applicationID,
			"job_id":         jobID,
			"participants":   participants,
			"created_at":     now,
		},
		"$set":  bson.M{"updated_at": now},
		"$push": bson.M{"messages": msg},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *conversationRepository) FindByApplication(ctx context.Context, applicationID string) (*domain.Conversation, error) {
	filter := bson.M{"application_id": applicationID}
	var conv domain.Conversation
	err := r.coll.FindOne(ctx, filter).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// MarkRead uses an array filter so only foreign unread entries flip; a
// reader never touches its own messages and read never goes back to false.
func (r *conversationRepository) MarkRead(ctx context.Context, applicationID, readerID string) error {
	filter := bson.M{"application_id": applicationID}
	update := bson.M{"$set": bson.M{"messages.$[m].read": true}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"m.sender": bson.M{"$ne": readerID}, "m.read": false},
		},
	})
	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *conversationRepository) Delete(ctx context.Context, applicationID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"application_id": applicationID})
	return err
}

func (r *conversationRepository) UnreadGroups(ctx context.Context, recipientID string) ([]domain.UnreadGroup, error) {
	pipeline := mongo.Pipeline{
		// 1. conversations the recipient takes part in
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "participants", Value: recipientID},
		}}},
		// 2. flatten to individual messages
		bson.D{{Key: "$unwind", Value: "$messages"}},
		// 3. unread and not sent by the recipient
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "messages.read", Value: false},
			{Key: "messages.sender", Value: bson.D{{Key: "$ne", Value: recipientID}}},
		}}},
		// 4. group per (sender, job, application)
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "sender", Value: "$messages.sender"},
				{Key: "job_id", Value: "$job_id"},
				{Key: "application_id", Value: "$application_id"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "last_message", Value: bson.D{{Key: "$last", Value: "$messages.text"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "sender_id", Value: "$_id.sender"},
			{Key: "job_id", Value: "$_id.job_id"},
			{Key: "application_id", Value: "$_id.application_id"},
			{Key: "count", Value: 1},
			{Key: "last_message", Value: 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("unread aggregate error: %v", err))
	}

	var groups []domain.UnreadGroup
	if err := cur.All(ctx, &groups); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("unread cursor error: %v", err))
	}

	return groups, nil
}
