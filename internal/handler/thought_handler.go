package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"thoughts-api/internal/domain"
	"thoughts-api/internal/service"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps the size of a create request body
const maxBodyBytes = 1 << 20

// ThoughtService is the subset of service.ThoughtService used by the handlers
type ThoughtService interface {
	List(ctx context.Context, in service.ListThoughtsInput) ([]*domain.Thought, error)
	Create(ctx context.Context, in service.CreateThoughtInput) (*domain.Thought, error)
	Like(ctx context.Context, id string) (*domain.Thought, error)
}

// ThoughtHandler handles the /thoughts endpoints
type ThoughtHandler struct {
	thoughts ThoughtService
}

// NewThoughtHandler creates a new thought handler
func NewThoughtHandler(thoughts ThoughtService) *ThoughtHandler {
	return &ThoughtHandler{thoughts: thoughts}
}

// List returns the recency feed, or a page when ?page is set
func (h *ThoughtHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	in, err := service.ParseListQuery(query.Get("page"), query.Get("perPage"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	thoughts, err := h.thoughts.List(r.Context(), in)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	if thoughts == nil {
		thoughts = []*domain.Thought{}
	}
	writeSuccess(w, http.StatusOK, thoughts)
}

// Create stores a new thought
func (h *ThoughtHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req service.CreateThoughtInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	thought, err := h.thoughts.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	writeSuccess(w, http.StatusCreated, thought)
}

// Like adds one heart to the thought named in the path
func (h *ThoughtHandler) Like(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	thought, err := h.thoughts.Like(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err)
		return
	}

	writeSuccess(w, http.StatusOK, fmt.Sprintf("Thought %s has been liked (%d hearts)", thought.ID, thought.Hearts))
}
