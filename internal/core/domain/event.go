package domain

import (
	"encoding/json"
	"time"
)

const (
	EventMessageSent           = "message.sent"
	EventAnnouncementPublished = "announcement.published"
)

// OutboxEvent is a domain event persisted alongside the write that caused it
// and forwarded to the broker by the relay.
type OutboxEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

type MessageSentPayload struct {
	MessageID  string `json:"messageId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
}

type AnnouncementPublishedPayload struct {
	AnnouncementID string `json:"announcementId"`
	Title          string `json:"title"`
}
