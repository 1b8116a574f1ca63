// File: internal/handlers/topic_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/forohub/go-foro-api/internal/dtos"
	"github.com/forohub/go-foro-api/internal/markdown"
	topicrepo "github.com/forohub/go-foro-api/internal/repository/topic"
	"github.com/forohub/go-foro-api/internal/services"
	topicservice "github.com/forohub/go-foro-api/internal/services/topic"
)

type TopicHandler struct {
	TopicService *services.TopicService
	Renderer     *markdown.Renderer
}

func NewTopicHandler(ts *services.TopicService, renderer *markdown.Renderer) *TopicHandler {
	return &TopicHandler{
		TopicService: ts,
		Renderer:     renderer,
	}
}

// RegisterTopic handles POST /topicos. On success it answers 201 with the
// new resource in the Location header and echoes the accepted payload.
func (h *TopicHandler) RegisterTopic(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	topic, err := h.TopicService.RegisterTopic(r.Context(), req.Title, req.Body, req.Author, req.Course)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/topicos/%d", topic.ID))
	writeJSON(w, http.StatusCreated, req)
}

// ListTopics handles GET /topicos: one page of active topic summaries with
// navigation links.
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	pageReq := dtos.ParsePageRequest(r)

	summaries, total, err := h.TopicService.ListActiveTopics(r.Context(), toPageQuery(pageReq))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.NewPagedModel(summaries, pageReq, total, r.URL))
}

// SearchByCourse handles GET /topicos/buscar?curso=X.
func (h *TopicHandler) SearchByCourse(w http.ResponseWriter, r *http.Request) {
	courseName := r.URL.Query().Get("curso")
	if courseName == "" {
		writeError(w, "Query parameter 'curso' is required", http.StatusBadRequest)
		return
	}

	pageReq := dtos.ParsePageRequest(r)

	summaries, total, err := h.TopicService.FindTopicsByCourse(r.Context(), courseName, toPageQuery(pageReq))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.NewPagedModel(summaries, pageReq, total, r.URL))
}

// GetTopic handles GET /topicos/{id}: the full detail, messages included,
// regardless of status.
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	topic, err := h.TopicService.GetTopicByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dtos.NewTopicDetail(topic, h.Renderer.Render(topic.Body)))
}

// UpdateTopic handles PUT /topicos/{id}: partial field update, answered
// with a view of the topic's most recent message.
func (h *TopicHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.TopicService.UpdateTopic(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddMessage handles POST /topicos/{id}/mensajes.
func (h *TopicHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.NewMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.TopicService.AppendMessage(r.Context(), id, req.Content, req.Author)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// CloseTopic handles DELETE /topicos/{id}: a soft close, never a physical
// delete.
func (h *TopicHandler) CloseTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.TopicService.CloseTopic(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Topic closed successfully"})
}

// DeleteMessage handles DELETE /topicos/{idTopico}/mensajes/{idMensaje}.
func (h *TopicHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	topicID, ok := pathID(w, r, "idTopico")
	if !ok {
		return
	}
	messageID, ok := pathID(w, r, "idMensaje")
	if !ok {
		return
	}

	if err := h.TopicService.DeleteMessage(r.Context(), topicID, messageID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted successfully"})
}

func toPageQuery(req dtos.PageRequest) topicrepo.PageQuery {
	return topicrepo.PageQuery{
		Page: req.Page,
		Size: req.Size,
		Sort: req.Sort,
		Desc: req.Desc,
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		writeError(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var se *topicservice.ServiceError
	if !errors.As(err, &se) {
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch se.Type {
	case topicservice.ErrTypeValidation, topicservice.ErrTypeDuplicate, topicservice.ErrTypeInvalidCourse:
		writeError(w, se.Message, http.StatusBadRequest)
	case topicservice.ErrTypeNotFound, topicservice.ErrTypeNoMessages:
		writeError(w, se.Message, http.StatusNotFound)
	default:
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
