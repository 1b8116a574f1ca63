package topic

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/forohub/go-foro-api/internal/domain"
)

var ErrTopicNotFound = errors.New("topic not found")

// sortColumns whitelists the caller-facing sort tokens. Anything outside
// the whitelist falls back to the default ordering.
var sortColumns = map[string]string{
	"fecha":  "created_at",
	"titulo": "title",
	"curso":  "course",
	"status": "status",
	"id":     "id",
}

const defaultSortColumn = "created_at"

type gormTopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &gormTopicRepository{db: db}
}

// Create persists a new topic and returns it with its generated ID.
func (r *gormTopicRepository) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	if err := r.validateTopicInput(topic); err != nil {
		log.Printf("[TopicRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).Create(topic).Error
	if err != nil {
		log.Printf("[TopicRepository] Database error during topic creation: %v", err)
		return nil, errors.New("database error creating topic")
	}

	log.Printf("[TopicRepository] Topic created successfully with ID: %d", topic.ID)
	return topic, nil
}

// Save persists the topic's own fields. Associations are omitted: the
// message collection is managed through the message repository.
func (r *gormTopicRepository) Save(ctx context.Context, topic *domain.Topic) error {
	if topic.ID == 0 {
		return errors.New("invalid topic ID")
	}
	if err := r.validateTopicInput(topic); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(topic)
	if result.Error != nil {
		log.Printf("[TopicRepository] Database error updating topic ID %d: %v", topic.ID, result.Error)
		return errors.New("database error updating topic")
	}
	return nil
}

// FindByID loads the full topic including its messages in insertion order.
func (r *gormTopicRepository) FindByID(ctx context.Context, id uint) (*domain.Topic, error) {
	if id == 0 {
		return nil, errors.New("invalid topic ID")
	}

	var topic domain.Topic
	err := r.db.WithContext(ctx).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("messages.id ASC")
		}).
		First(&topic, id).Error
	return r.handleFindError(err, &topic, "FindByID")
}

// FindAllActive returns one page of topics whose status is not CLOSED.
func (r *gormTopicRepository) FindAllActive(ctx context.Context, q PageQuery) ([]domain.Topic, int64, error) {
	return r.findActive(ctx, nil, q)
}

// FindByCourseActive returns one page of active topics for the course.
func (r *gormTopicRepository) FindByCourseActive(ctx context.Context, course domain.Course, q PageQuery) ([]domain.Topic, int64, error) {
	return r.findActive(ctx, &course, q)
}

func (r *gormTopicRepository) findActive(ctx context.Context, course *domain.Course, q PageQuery) ([]domain.Topic, int64, error) {
	if q.Size <= 0 || q.Size > 1000 {
		return nil, 0, errors.New("invalid page size: must be between 1 and 1000")
	}
	if q.Page < 0 {
		return nil, 0, errors.New("invalid page number: must be >= 0")
	}

	// Conditions are rebuilt per query: gorm statements are not reusable.
	active := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Where("status <> ?", domain.StatusClosed)
		if course != nil {
			tx = tx.Where("course = ?", *course)
		}
		return tx
	}

	var total int64
	if err := active().Model(&domain.Topic{}).Count(&total).Error; err != nil {
		log.Printf("[TopicRepository] Database error counting topics: %v", err)
		return nil, 0, errors.New("database error counting topics")
	}

	var topics []domain.Topic
	err := active().
		Order(orderClause(q)).
		Limit(q.Size).
		Offset(q.Page * q.Size).
		Find(&topics).Error
	if err != nil {
		log.Printf("[TopicRepository] Database error in paginated query: %v", err)
		return nil, 0, errors.New("database error retrieving paginated topics")
	}

	return topics, total, nil
}

// ExistsDuplicate reports whether the title matches any existing topic AND
// the content matches any existing message. The two sides are checked
// independently: the matching message does not have to belong to the
// matching topic.
func (r *gormTopicRepository) ExistsDuplicate(ctx context.Context, title, content string) (bool, error) {
	var titleCount int64
	if err := r.db.WithContext(ctx).Model(&domain.Topic{}).Where("title = ?", title).Count(&titleCount).Error; err != nil {
		log.Printf("[TopicRepository] Database error checking duplicate title: %v", err)
		return false, errors.New("database error checking duplicate topic")
	}
	if titleCount == 0 {
		return false, nil
	}

	var contentCount int64
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("content = ?", content).Count(&contentCount).Error; err != nil {
		log.Printf("[TopicRepository] Database error checking duplicate content: %v", err)
		return false, errors.New("database error checking duplicate topic")
	}

	return contentCount > 0, nil
}

// TouchUpdatedAt bumps the topic's updated_at without loading it.
func (r *gormTopicRepository) TouchUpdatedAt(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("invalid topic ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Topic{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))

	if result.Error != nil {
		log.Printf("[TopicRepository] Database error updating timestamp for topic ID %d: %v", id, result.Error)
		return errors.New("database error updating topic timestamp")
	}

	if result.RowsAffected == 0 {
		return ErrTopicNotFound
	}

	return nil
}

func orderClause(q PageQuery) string {
	column, ok := sortColumns[strings.ToLower(q.Sort)]
	if !ok {
		column = defaultSortColumn
	}
	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction)
}

// validateTopicInput - basic input validation before touching the store.
func (r *gormTopicRepository) validateTopicInput(topic *domain.Topic) error {
	if topic == nil {
		return errors.New("topic cannot be nil")
	}
	if strings.TrimSpace(topic.Title) == "" {
		return errors.New("topic title cannot be empty")
	}
	if len(topic.Title) > 200 {
		return errors.New("topic title must be 200 characters or less")
	}
	return nil
}

// handleFindError - map gorm's not-found onto the repository sentinel.
func (r *gormTopicRepository) handleFindError(err error, topic *domain.Topic, operation string) (*domain.Topic, error) {
	if err == nil {
		return topic, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTopicNotFound
	}

	log.Printf("[TopicRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
