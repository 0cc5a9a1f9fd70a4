package domain

import "time"

// SenderKind tags which identity space a message sender belongs to.
type SenderKind string

const (
	// SenderJobSeeker message sent by the applicant
	SenderJobSeeker SenderKind = "jobSeeker"
	// SenderEmployer message sent by the employer
	SenderEmployer SenderKind = "employer"
)

// ChatMessage is one entry of a conversation's message array.
// Only the Read flag ever mutates after the append, and only false -> true.
type ChatMessage struct {
	ID         string     `bson:"id" json:"id"`
	Sender     string     `bson:"sender" json:"sender"`
	SenderKind SenderKind `bson:"sender_kind" json:"senderType"`
	Text       string     `bson:"text" json:"text"`
	Timestamp  time.Time  `bson:"timestamp" json:"timestamp"`
	Read       bool       `bson:"read" json:"read"`
}

// Conversation is the persisted message history for one application.
// Exactly one conversation exists per application id; participants are
// the applicant and the employer and never change after creation.
type Conversation struct {
	ApplicationID string        `bson:"application_id" json:"application_id"`
	JobID         string        `bson:"job_id" json:"job_id"`
	Participants  []string      `bson:"participants" json:"participants"`
	Messages      []ChatMessage `bson:"messages" json:"messages"`
	CreatedAt     time.Time     `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at,omitempty" json:"updated_at"`
}

// ResolvedSender is a sender id paired with its directory display name.
type ResolvedSender struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ResolvedMessage is a ChatMessage with the sender rehydrated for the
// history endpoint.
type ResolvedMessage struct {
	Sender     ResolvedSender `json:"sender"`
	SenderKind SenderKind     `json:"senderType"`
	Text       string         `json:"text"`
	Timestamp  time.Time      `json:"timestamp"`
	Read       bool           `json:"read"`
}

// UnreadGroup is one row of the store-side unread aggregation: all unread
// messages of one sender on one (job, application), before directory
// resolution.
type UnreadGroup struct {
	SenderID      string `bson:"sender_id"`
	JobID         string `bson:"job_id"`
	ApplicationID string `bson:"application_id"`
	Count         int    `bson:"count"`
	LastMessage   string `bson:"last_message"`
}

// Notification is one aggregated unread summary entry pushed to a
// recipient: who wrote, on which job and application, how many unread
// messages and the latest text.
type Notification struct {
	SenderID      string `json:"senderId"`
	SenderName    string `json:"senderName"`
	JobID         string `json:"jobId"`
	JobTitle      string `json:"jobTitle"`
	ApplicationID string `json:"applicationId"`
	Count         int    `json:"count"`
	LastMessage   string `json:"lastMessage"`
}
