// File: internal/dtos/topic.go
package dtos

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/forohub/go-foro-api/internal/domain"
)

// RegisterTopicRequest is the topic creation payload. The body text doubles
// as the content side of the duplicate-submission guard.
type RegisterTopicRequest struct {
	Title  string `json:"titulo"`
	Body   string `json:"mensaje"`
	Course string `json:"curso"`
	Author string `json:"autor"`
}

func (r RegisterTopicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Body, validation.Required, validation.Length(1, 10000)),
		validation.Field(&r.Course, validation.Required),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 100)),
	)
}

// UpdateTopicRequest carries a partial update: only non-nil fields
// overwrite the stored topic.
type UpdateTopicRequest struct {
	Title  *string `json:"titulo"`
	Body   *string `json:"mensaje"`
	Status *string `json:"status"`
	Course *string `json:"curso"`
}

func (r UpdateTopicRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Body, validation.NilOrNotEmpty, validation.Length(1, 10000)),
		validation.Field(&r.Status, validation.NilOrNotEmpty),
		validation.Field(&r.Course, validation.NilOrNotEmpty),
	)
}

// TopicSummary is the listing projection: summary fields only, no message
// bodies.
type TopicSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"titulo"`
	Status    string    `json:"status"`
	Course    string    `json:"curso"`
	Author    string    `json:"autor"`
	CreatedAt time.Time `json:"fecha"`
}

func NewTopicSummary(t *domain.Topic) TopicSummary {
	return TopicSummary{
		ID:        t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		Course:    string(t.Course),
		Author:    t.Author,
		CreatedAt: t.CreatedAt,
	}
}

// TopicDetail is the full topic view, including the rendered body and the
// ordered message collection.
type TopicDetail struct {
	ID        uint          `json:"id"`
	Title     string        `json:"titulo"`
	Body      string        `json:"mensaje"`
	BodyHTML  string        `json:"mensajeHtml,omitempty"`
	Status    string        `json:"status"`
	Course    string        `json:"curso"`
	Author    string        `json:"autor"`
	CreatedAt time.Time     `json:"fecha"`
	Messages  []MessageView `json:"mensajes"`
}

func NewTopicDetail(t *domain.Topic, bodyHTML string) TopicDetail {
	messages := make([]MessageView, 0, len(t.Messages))
	for i := range t.Messages {
		messages = append(messages, NewMessageView(&t.Messages[i]))
	}
	return TopicDetail{
		ID:        t.ID,
		Title:     t.Title,
		Body:      t.Body,
		BodyHTML:  bodyHTML,
		Status:    string(t.Status),
		Course:    string(t.Course),
		Author:    t.Author,
		CreatedAt: t.CreatedAt,
		Messages:  messages,
	}
}
