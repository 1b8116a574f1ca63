package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forohub/go-foro-api/internal/domain"
	"github.com/forohub/go-foro-api/internal/dtos"
	messagerepo "github.com/forohub/go-foro-api/internal/repository/message"
	topicrepo "github.com/forohub/go-foro-api/internal/repository/topic"
	topicservice "github.com/forohub/go-foro-api/internal/services/topic"
)

func newTestService(t *testing.T) *TopicService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Topic{}, &domain.Message{}))

	svc, err := NewTopicService(
		topicrepo.NewTopicRepository(db),
		messagerepo.NewMessageRepository(db),
		&NoOpLogger{},
	)
	require.NoError(t, err)
	return svc
}

func assertErrType(t *testing.T, err error, want topicservice.ErrorType) {
	t.Helper()
	var se *topicservice.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, want, se.Type)
}

func defaultPage() topicrepo.PageQuery {
	return topicrepo.PageQuery{Page: 0, Size: 10, Sort: "fecha"}
}

func TestRegisterTopic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	topic, err := svc.RegisterTopic(ctx, "Generics in Go", "How do type parameters work?", "ana", "go")
	require.NoError(t, err)
	assert.NotZero(t, topic.ID)
	assert.Equal(t, domain.StatusOpen, topic.Status)
	assert.Equal(t, domain.CourseGo, topic.Course)
	assert.False(t, topic.CreatedAt.IsZero())
}

func TestRegisterTopic_InvalidCourse(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RegisterTopic(context.Background(), "title", "body", "ana", "underwater basket weaving")
	assertErrType(t, err, topicservice.ErrTypeInvalidCourse)
}

func TestRegisterTopic_DuplicateIsCrossEntity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// topic "T" and content "B" end up on DIFFERENT topics
	_, err := svc.RegisterTopic(ctx, "T", "some body", "ana", "java")
	require.NoError(t, err)
	other, err := svc.RegisterTopic(ctx, "another topic", "other body", "ana", "go")
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, other.ID, "B", "bo")
	require.NoError(t, err)

	_, err = svc.RegisterTopic(ctx, "T", "B", "cy", "python")
	assertErrType(t, err, topicservice.ErrTypeDuplicate)

	// either side alone is not a duplicate
	_, err = svc.RegisterTopic(ctx, "T", "fresh body", "cy", "python")
	require.NoError(t, err)
	_, err = svc.RegisterTopic(ctx, "fresh title", "B", "cy", "python")
	require.NoError(t, err)
}

func TestListActiveTopics_NeverIncludesClosed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	open, err := svc.RegisterTopic(ctx, "stays open", "body one", "ana", "java")
	require.NoError(t, err)
	closed, err := svc.RegisterTopic(ctx, "gets closed", "body two", "ana", "java")
	require.NoError(t, err)
	require.NoError(t, svc.CloseTopic(ctx, closed.ID))

	summaries, total, err := svc.ListActiveTopics(ctx, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, summaries, 1)
	assert.Equal(t, open.ID, summaries[0].ID)
}

func TestFindTopicsByCourse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.RegisterTopic(ctx, "go topic", "go body", "ana", "go")
	require.NoError(t, err)
	_, err = svc.RegisterTopic(ctx, "java topic", "java body", "ana", "java")
	require.NoError(t, err)

	// matching is case-insensitive
	summaries, total, err := svc.FindTopicsByCourse(ctx, "Go", defaultPage())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, summaries, 1)
	assert.Equal(t, "go topic", summaries[0].Title)

	_, _, err = svc.FindTopicsByCourse(ctx, "not_a_real_course", defaultPage())
	assertErrType(t, err, topicservice.ErrTypeInvalidCourse)
}

func TestGetTopicByID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.RegisterTopic(ctx, "findable", "body", "ana", "sql")
	require.NoError(t, err)

	found, err := svc.GetTopicByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "findable", found.Title)

	_, err = svc.GetTopicByID(ctx, 9999)
	assertErrType(t, err, topicservice.ErrTypeNotFound)
}

func TestCloseTopic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	topic, err := svc.RegisterTopic(ctx, "to close", "body", "ana", "go")
	require.NoError(t, err)

	require.NoError(t, svc.CloseTopic(ctx, topic.ID))

	// closed topics stay retrievable by ID
	found, err := svc.GetTopicByID(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, found.Status)

	// re-close is allowed
	require.NoError(t, svc.CloseTopic(ctx, topic.ID))

	err = svc.CloseTopic(ctx, 9999)
	assertErrType(t, err, topicservice.ErrTypeNotFound)
}

func TestAppendMessage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	topic, err := svc.RegisterTopic(ctx, "with replies", "body", "ana", "go")
	require.NoError(t, err)

	_, err = svc.AppendMessage(ctx, topic.ID, "first reply", "bo")
	require.NoError(t, err)
	view, err := svc.AppendMessage(ctx, topic.ID, "hello", "cy")
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Equal(t, "hello", view.Content)

	// the new message is the tail of the collection
	found, err := svc.GetTopicByID(ctx, topic.ID)
	require.NoError(t, err)
	require.Len(t, found.Messages, 2)
	assert.Equal(t, "hello", found.Messages[1].Content)

	_, err = svc.AppendMessage(ctx, 9999, "orphan", "bo")
	assertErrType(t, err, topicservice.ErrTypeNotFound)
}

func TestUpdateTopic_ReturnsLastMessage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	topic, err := svc.RegisterTopic(ctx, "to update", "body", "ana", "go")
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, topic.ID, "older", "bo")
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, topic.ID, "hello", "cy")
	require.NoError(t, err)

	newTitle := "updated title"
	newStatus := "solved"
	view, err := svc.UpdateTopic(ctx, topic.ID, dtos.UpdateTopicRequest{Title: &newTitle, Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, "hello", view.Content)

	found, err := svc.GetTopicByID(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated title", found.Title)
	assert.Equal(t, domain.StatusSolved, found.Status)
	// untouched fields keep their values
	assert.Equal(t, "body", found.Body)
}

func TestUpdateTopic_NoMessagesStillPersistsUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	topic, err := svc.RegisterTopic(ctx, "empty topic", "body", "ana", "go")
	require.NoError(t, err)

	newTitle := "renamed anyway"
	_, err = svc.UpdateTopic(ctx, topic.ID, dtos.UpdateTopicRequest{Title: &newTitle})
	assertErrType(t, err, topicservice.ErrTypeNoMessages)

	// the field update committed before the failing last-message read
	found, err := svc.GetTopicByID(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed anyway", found.Title)
}

func TestUpdateTopic_RejectsUnknownStatusAndCourse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	topic, err := svc.RegisterTopic(ctx, "strict", "body", "ana", "go")
	require.NoError(t, err)

	bad := "ARCHIVED"
	_, err = svc.UpdateTopic(ctx, topic.ID, dtos.UpdateTopicRequest{Status: &bad})
	assertErrType(t, err, topicservice.ErrTypeValidation)

	badCourse := "knitting"
	_, err = svc.UpdateTopic(ctx, topic.ID, dtos.UpdateTopicRequest{Course: &badCourse})
	assertErrType(t, err, topicservice.ErrTypeInvalidCourse)
}

func TestDeleteMessage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	topic, err := svc.RegisterTopic(ctx, "pruned", "body", "ana", "go")
	require.NoError(t, err)
	keep, err := svc.AppendMessage(ctx, topic.ID, "keep me", "bo")
	require.NoError(t, err)
	drop, err := svc.AppendMessage(ctx, topic.ID, "drop me", "cy")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMessage(ctx, topic.ID, drop.ID))

	found, err := svc.GetTopicByID(ctx, topic.ID)
	require.NoError(t, err)
	require.Len(t, found.Messages, 1)
	assert.Equal(t, keep.ID, found.Messages[0].ID)
}

func TestDeleteMessage_NotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	topic, err := svc.RegisterTopic(ctx, "guarded", "body", "ana", "go")
	require.NoError(t, err)
	other, err := svc.RegisterTopic(ctx, "other", "other body", "ana", "java")
	require.NoError(t, err)
	foreign, err := svc.AppendMessage(ctx, other.ID, "belongs elsewhere", "bo")
	require.NoError(t, err)

	// absent topic
	err = svc.DeleteMessage(ctx, 9999, foreign.ID)
	assertErrType(t, err, topicservice.ErrTypeNotFound)

	// absent message
	err = svc.DeleteMessage(ctx, topic.ID, 9999)
	assertErrType(t, err, topicservice.ErrTypeNotFound)

	// message exists but belongs to a different topic
	err = svc.DeleteMessage(ctx, topic.ID, foreign.ID)
	assertErrType(t, err, topicservice.ErrTypeNotFound)

	// the foreign message survives the failed attempts
	stillThere, err := svc.GetTopicByID(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, stillThere.Messages, 1)
}

func TestNewTopicService_RequiresRepositories(t *testing.T) {
	_, err := NewTopicService(nil, nil, &NoOpLogger{})
	assertErrType(t, err, topicservice.ErrTypeValidation)
}
