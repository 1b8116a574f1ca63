// File: internal/domain/topic.go
package domain

import "time"

// Status is the lifecycle state of a topic. StatusClosed is terminal:
// closed topics are excluded from every listing but stay retrievable by ID.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSolved     Status = "SOLVED"
	StatusClosed     Status = "CLOSED"
)

var statuses = map[Status]struct{}{
	StatusOpen:       {},
	StatusInProgress: {},
	StatusSolved:     {},
	StatusClosed:     {},
}

// ParseStatus matches a status label case-insensitively.
func ParseStatus(name string) (Status, bool) {
	s := Status(normalizeToken(name))
	_, ok := statuses[s]
	return s, ok
}

// Topic is a forum discussion thread. It owns its ordered message
// collection; messages are kept in insertion order (ascending ID).
type Topic struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"titulo" gorm:"not null"`
	Body      string    `json:"mensaje" gorm:"not null"`
	Status    Status    `json:"status" gorm:"not null"`
	Course    Course    `json:"curso" gorm:"not null"`
	Author    string    `json:"autor" gorm:"not null"`
	CreatedAt time.Time `json:"fecha"`
	UpdatedAt time.Time `json:"-"`
	Messages  []Message `json:"mensajes"`
}

// IsActive reports whether the topic should appear in listings.
func (t *Topic) IsActive() bool {
	return t.Status != StatusClosed
}

// Close transitions the topic to its terminal state. Closing an already
// closed topic is a no-op.
func (t *Topic) Close() {
	t.Status = StatusClosed
}

// LastMessage returns the tail of the message collection by insertion
// order, or nil when the topic has no messages.
func (t *Topic) LastMessage() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return &t.Messages[len(t.Messages)-1]
}
