package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopic_Close(t *testing.T) {
	topic := &Topic{Status: StatusOpen}
	assert.True(t, topic.IsActive())

	topic.Close()
	assert.Equal(t, StatusClosed, topic.Status)
	assert.False(t, topic.IsActive())

	// re-close is a no-op
	topic.Close()
	assert.Equal(t, StatusClosed, topic.Status)
}

func TestTopic_LastMessage(t *testing.T) {
	topic := &Topic{}
	assert.Nil(t, topic.LastMessage())

	topic.Messages = []Message{
		{ID: 1, Content: "first"},
		{ID: 2, Content: "second"},
	}
	last := topic.LastMessage()
	assert.NotNil(t, last)
	assert.Equal(t, "second", last.Content)
}
