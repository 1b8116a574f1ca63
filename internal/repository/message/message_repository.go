package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/forohub/go-foro-api/internal/domain"
)

var ErrMessageNotFound = errors.New("message not found")

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create persists a new message at the tail of its topic's collection and
// returns it with its generated ID.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(message); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).Create(message).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error during message creation for topic ID %d: %v", message.TopicID, err)
		return nil, errors.New("database error creating message")
	}

	log.Printf("[MessageRepository] Message created successfully with ID: %d for topic: %d", message.ID, message.TopicID)
	return message, nil
}

// DeleteByID permanently erases the message record. A single DELETE keeps
// the collection removal and the record erase in one commit.
func (r *gormMessageRepository) DeleteByID(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("invalid message ID")
	}

	result := r.db.WithContext(ctx).Delete(&domain.Message{}, id)
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error deleting message ID %d: %v", id, result.Error)
		return errors.New("database error deleting message")
	}

	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	log.Printf("[MessageRepository] Message deleted successfully: ID %d", id)
	return nil
}

// ExistsByID - check existence without loading the record.
func (r *gormMessageRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, errors.New("invalid message ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error checking message existence for ID %d: %v", id, err)
		return false, errors.New("database error checking message existence")
	}

	return count > 0, nil
}

// CountByTopicID - efficient message counting per topic.
func (r *gormMessageRepository) CountByTopicID(ctx context.Context, topicID uint) (int64, error) {
	if topicID == 0 {
		return 0, errors.New("invalid topic ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("topic_id = ?", topicID).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for topic ID %d: %v", topicID, err)
		return 0, errors.New("database error counting topic messages")
	}

	return count, nil
}

// validateMessageInput - basic input validation before touching the store.
func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.TopicID == 0 {
		return errors.New("topic ID is required")
	}
	if strings.TrimSpace(message.Content) == "" {
		return errors.New("message content cannot be empty")
	}
	if len(message.Content) > 10000 {
		return errors.New("message content too long (max 10000 characters)")
	}
	return nil
}
