package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"thoughts-api/internal/domain"
)

// Counter for generating unique fixture values
var idCounter atomic.Int64

// ThoughtOptions allows customizing thought fixture creation
type ThoughtOptions struct {
	ID        string
	Message   string
	Hearts    int
	CreatedAt time.Time
}

// NewTestThought creates a test thought with sensible defaults
// Pass options to override specific fields
func NewTestThought(opts ...func(*ThoughtOptions)) *domain.Thought {
	n := idCounter.Add(1)
	o := &ThoughtOptions{
		ID:        fmt.Sprintf("fixture-%04d", n),
		Message:   fmt.Sprintf("Happy thought number %d", n),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	for _, opt := range opts {
		opt(o)
	}

	return &domain.Thought{
		ID:        o.ID,
		Message:   o.Message,
		Hearts:    o.Hearts,
		CreatedAt: o.CreatedAt,
	}
}

// NewTestThoughtFeed creates n thoughts one minute apart; the last one is the newest
func NewTestThoughtFeed(n int, newest time.Time) []*domain.Thought {
	thoughts := make([]*domain.Thought, 0, n)
	for i := 0; i < n; i++ {
		createdAt := newest.Add(-time.Duration(n-1-i) * time.Minute)
		thoughts = append(thoughts, NewTestThought(
			WithMessage(fmt.Sprintf("Feed thought %02d", i+1)),
			WithCreatedAt(createdAt),
		))
	}
	return thoughts
}

// Thought option functions

// WithThoughtID sets the thought ID
func WithThoughtID(id string) func(*ThoughtOptions) {
	return func(o *ThoughtOptions) {
		o.ID = id
	}
}

// WithMessage sets the message
func WithMessage(message string) func(*ThoughtOptions) {
	return func(o *ThoughtOptions) {
		o.Message = message
	}
}

// WithHearts sets the heart count
func WithHearts(hearts int) func(*ThoughtOptions) {
	return func(o *ThoughtOptions) {
		o.Hearts = hearts
	}
}

// WithCreatedAt sets the creation time
func WithCreatedAt(t time.Time) func(*ThoughtOptions) {
	return func(o *ThoughtOptions) {
		o.CreatedAt = t
	}
}
