package dtos

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterTopicRequest_Validate(t *testing.T) {
	valid := RegisterTopicRequest{
		Title:  "How do channels close?",
		Body:   "Details about close semantics",
		Course: "go",
		Author: "ana",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*RegisterTopicRequest)
	}{
		{"missing title", func(r *RegisterTopicRequest) { r.Title = "" }},
		{"missing body", func(r *RegisterTopicRequest) { r.Body = "" }},
		{"missing course", func(r *RegisterTopicRequest) { r.Course = "" }},
		{"missing author", func(r *RegisterTopicRequest) { r.Author = "" }},
		{"title too long", func(r *RegisterTopicRequest) { r.Title = strings.Repeat("x", 201) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateTopicRequest_Validate(t *testing.T) {
	// all-nil means "change nothing" and is valid
	assert.NoError(t, UpdateTopicRequest{}.Validate())

	title := "new title"
	assert.NoError(t, UpdateTopicRequest{Title: &title}.Validate())

	// present-but-empty fields are rejected
	empty := ""
	assert.Error(t, UpdateTopicRequest{Title: &empty}.Validate())
	assert.Error(t, UpdateTopicRequest{Status: &empty}.Validate())
}
