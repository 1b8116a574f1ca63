// File: internal/services/topic_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/forohub/go-foro-api/internal/domain"
	"github.com/forohub/go-foro-api/internal/dtos"
	messagerepo "github.com/forohub/go-foro-api/internal/repository/message"
	topicrepo "github.com/forohub/go-foro-api/internal/repository/topic"
	topicservice "github.com/forohub/go-foro-api/internal/services/topic"
)

// TopicService owns the forum's business rules: the duplicate-submission
// guard, course validation, the soft-close lifecycle and the message
// append/remove operations.
type TopicService struct {
	topicRepo   topicrepo.TopicRepository
	messageRepo messagerepo.MessageRepository
	logger      Logger
}

func NewTopicService(
	topicRepo topicrepo.TopicRepository,
	messageRepo messagerepo.MessageRepository,
	logger Logger,
) (*TopicService, error) {
	if topicRepo == nil {
		return nil, topicservice.NewValidationError("constructor", "topic repository is required")
	}
	if messageRepo == nil {
		return nil, topicservice.NewValidationError("constructor", "message repository is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &TopicService{
		topicRepo:   topicRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}, nil
}

// RegisterTopic creates a new topic with status OPEN. The duplicate guard
// is deliberately cross-entity: it rejects the submission when the title
// matches ANY existing topic and the body matches ANY existing message,
// even if the two belong to different topics.
func (s *TopicService) RegisterTopic(ctx context.Context, title, body, author, courseName string) (*domain.Topic, error) {
	if strings.TrimSpace(title) == "" {
		return nil, topicservice.NewValidationError("register_topic", "title cannot be empty")
	}

	course, ok := domain.ParseCourse(courseName)
	if !ok {
		return nil, topicservice.NewInvalidCourseError(courseName)
	}

	duplicate, err := s.topicRepo.ExistsDuplicate(ctx, title, body)
	if err != nil {
		return nil, topicservice.NewStorageError("register_topic", "could not check for duplicates", err)
	}
	if duplicate {
		s.logger.Warn("duplicate topic rejected", "title", title)
		return nil, topicservice.NewDuplicateError(title)
	}

	topic := &domain.Topic{
		Title:  title,
		Body:   body,
		Author: author,
		Course: course,
		Status: domain.StatusOpen,
	}

	created, err := s.topicRepo.Create(ctx, topic)
	if err != nil {
		return nil, topicservice.NewStorageError("register_topic", "could not create topic", err)
	}

	s.logger.Info("topic registered", "id", created.ID, "course", string(course))
	return created, nil
}

// ListActiveTopics returns one page of summaries for topics whose status
// is not CLOSED.
func (s *TopicService) ListActiveTopics(ctx context.Context, q topicrepo.PageQuery) ([]dtos.TopicSummary, int64, error) {
	topics, total, err := s.topicRepo.FindAllActive(ctx, q)
	if err != nil {
		return nil, 0, topicservice.NewStorageError("list_topics", "could not list topics", err)
	}
	return toSummaries(topics), total, nil
}

// FindTopicsByCourse filters active topics to a single course. The course
// token is matched case-insensitively against the known set.
func (s *TopicService) FindTopicsByCourse(ctx context.Context, courseName string, q topicrepo.PageQuery) ([]dtos.TopicSummary, int64, error) {
	course, ok := domain.ParseCourse(courseName)
	if !ok {
		return nil, 0, topicservice.NewInvalidCourseError(courseName)
	}

	topics, total, err := s.topicRepo.FindByCourseActive(ctx, course, q)
	if err != nil {
		return nil, 0, topicservice.NewStorageError("find_by_course", "could not list topics", err)
	}
	return toSummaries(topics), total, nil
}

// GetTopicByID returns the full topic including its messages. Closed
// topics stay individually retrievable.
func (s *TopicService) GetTopicByID(ctx context.Context, id uint) (*domain.Topic, error) {
	topic, err := s.topicRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, topicrepo.ErrTopicNotFound) {
			return nil, topicservice.NewNotFoundError("get_topic", "topic")
		}
		return nil, topicservice.NewStorageError("get_topic", "could not load topic", err)
	}
	return topic, nil
}

// UpdateTopic applies a partial update (only non-nil fields overwrite) and
// then returns a view of the topic's most recent message. The two concerns
// are not atomic together: the field update commits even when the topic
// turns out to have no messages and the call fails with NO_MESSAGES.
func (s *TopicService) UpdateTopic(ctx context.Context, id uint, upd dtos.UpdateTopicRequest) (*dtos.MessageView, error) {
	topic, err := s.GetTopicByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		topic.Title = *upd.Title
	}
	if upd.Body != nil {
		topic.Body = *upd.Body
	}
	if upd.Status != nil {
		status, ok := domain.ParseStatus(*upd.Status)
		if !ok {
			return nil, topicservice.NewValidationError("update_topic", "unknown status "+*upd.Status)
		}
		topic.Status = status
	}
	if upd.Course != nil {
		course, ok := domain.ParseCourse(*upd.Course)
		if !ok {
			return nil, topicservice.NewInvalidCourseError(*upd.Course)
		}
		topic.Course = course
	}

	if err := s.topicRepo.Save(ctx, topic); err != nil {
		return nil, topicservice.NewStorageError("update_topic", "could not save topic", err)
	}
	s.logger.Info("topic updated", "id", topic.ID)

	last := topic.LastMessage()
	if last == nil {
		return nil, topicservice.NewNoMessagesError(topic.ID)
	}

	view := dtos.NewMessageView(last)
	return &view, nil
}

// AppendMessage adds a reply at the tail of the topic's message
// collection and returns its projection.
func (s *TopicService) AppendMessage(ctx context.Context, topicID uint, content, author string) (*dtos.MessageView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, topicservice.NewValidationError("append_message", "message content cannot be empty")
	}

	topic, err := s.GetTopicByID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	message := &domain.Message{
		TopicID: topic.ID,
		Content: content,
		Author:  author,
	}

	created, err := s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, topicservice.NewStorageError("append_message", "could not save message", err)
	}

	if err := s.topicRepo.TouchUpdatedAt(ctx, topic.ID); err != nil {
		// The reply is already stored; a stale updated_at is acceptable.
		s.logger.Warn("could not touch topic timestamp", "id", topic.ID, "error", err)
	}

	s.logger.Info("message appended", "topic_id", topic.ID, "message_id", created.ID)
	view := dtos.NewMessageView(created)
	return &view, nil
}

// CloseTopic transitions the topic to CLOSED. Closing an already closed
// topic succeeds without effect.
func (s *TopicService) CloseTopic(ctx context.Context, id uint) error {
	topic, err := s.GetTopicByID(ctx, id)
	if err != nil {
		return err
	}

	topic.Close()

	if err := s.topicRepo.Save(ctx, topic); err != nil {
		return topicservice.NewStorageError("close_topic", "could not save topic", err)
	}

	s.logger.Info("topic closed", "id", topic.ID)
	return nil
}

// DeleteMessage permanently erases a message after checking it belongs to
// the topic's collection. Removal and record deletion are a single DELETE,
// so there is no window where the message is detached but still stored.
func (s *TopicService) DeleteMessage(ctx context.Context, topicID, messageID uint) error {
	topic, err := s.GetTopicByID(ctx, topicID)
	if err != nil {
		return err
	}

	var target *domain.Message
	for i := range topic.Messages {
		if topic.Messages[i].ID == messageID {
			target = &topic.Messages[i]
			break
		}
	}
	if target == nil {
		return topicservice.NewNotFoundError("delete_message", "message")
	}

	if err := s.messageRepo.DeleteByID(ctx, messageID); err != nil {
		if errors.Is(err, messagerepo.ErrMessageNotFound) {
			return topicservice.NewNotFoundError("delete_message", "message")
		}
		return topicservice.NewStorageError("delete_message", "could not delete message", err)
	}

	if err := s.topicRepo.TouchUpdatedAt(ctx, topic.ID); err != nil {
		s.logger.Warn("could not touch topic timestamp", "id", topic.ID, "error", err)
	}

	s.logger.Info("message deleted", "topic_id", topic.ID, "message_id", messageID)
	return nil
}

func toSummaries(topics []domain.Topic) []dtos.TopicSummary {
	summaries := make([]dtos.TopicSummary, 0, len(topics))
	for i := range topics {
		summaries = append(summaries, dtos.NewTopicSummary(&topics[i]))
	}
	return summaries
}
