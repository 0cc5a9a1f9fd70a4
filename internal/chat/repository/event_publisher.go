package repository

import (
	"context"
	"encoding/json"
	"time"

	"job_board_service/internal/chat/domain"

	"github.com/segmentio/kafka-go"
)

// EventPublisher emits chat activity events for downstream consumers
// (analytics). Delivery is best effort; the gateway never blocks on it.
type EventPublisher interface {
	MessageSent(ctx context.Context, applicationID string, msg domain.ChatMessage) error
}

// MessageSentEvent is the chat.message.sent payload.
type MessageSentEvent struct {
	ApplicationID string            `json:"application_id"`
	MessageID     string            `json:"message_id"`
	Sender        string            `json:"sender"`
	SenderKind    domain.SenderKind `json:"sender_kind"`
	Timestamp     time.Time         `json:"timestamp"`
}

type kafkaEventPublisher struct {
	writer *kafka.Writer
}

// NewKafkaEventPublisher create an EventPublisher over a kafka writer
func NewKafkaEventPublisher(writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) MessageSent(ctx context.Context, applicationID string, msg domain.ChatMessage) error {
	event := MessageSentEvent{
		ApplicationID: applicationID,
		MessageID:     msg.ID,
		Sender:        msg.Sender,
		SenderKind:    msg.SenderKind,
		Timestamp:     msg.Timestamp,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(applicationID),
		Value: data,
	})
}
