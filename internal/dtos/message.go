// File: internal/dtos/message.go
package dtos

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/forohub/go-foro-api/internal/domain"
)

// NewMessageRequest is the payload for appending a reply to a topic.
type NewMessageRequest struct {
	Content string `json:"contenido"`
	Author  string `json:"autor"`
}

func (r NewMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 10000)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 100)),
	)
}

// MessageView is the reply projection returned to callers.
type MessageView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"contenido"`
	CreatedAt time.Time `json:"fecha"`
	Author    string    `json:"autor"`
}

func NewMessageView(m *domain.Message) MessageView {
	return MessageView{
		ID:        m.ID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Author:    m.Author,
	}
}
