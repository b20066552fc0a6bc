package domain

import "time"

type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

func (d Direction) Valid() bool {
	return d == DirectionIncoming || d == DirectionOutgoing
}

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Participant is the embedded identity of a message counterpart.
type Participant struct {
	Email string `json:"email"`
}

// MessageView is a message as seen by one participant. Direction is
// computed by the store relative to the caller.
type MessageView struct {
	Message
	Sender    Participant `json:"sender"`
	Receiver  Participant `json:"receiver"`
	Direction Direction   `json:"direction"`
}
