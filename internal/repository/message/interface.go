package message

import (
	"context"

	"github.com/forohub/go-foro-api/internal/domain"
)

// MessageRepository handles message data operations.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	DeleteByID(ctx context.Context, id uint) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
	CountByTopicID(ctx context.Context, topicID uint) (int64, error)
}
