// File: internal/domain/message.go
package domain

import "time"

// Message is a single reply inside a topic. IDs are unique across the
// whole system, not just within the owning topic.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	TopicID   uint      `json:"topic_id" gorm:"not null;index"`
	Content   string    `json:"contenido" gorm:"not null"`
	Author    string    `json:"autor" gorm:"not null"`
	CreatedAt time.Time `json:"fecha"`
}
