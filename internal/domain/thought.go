package domain

import (
	"context"
	"errors"
	"time"
)

const (
	MessageMinLength = 5
	MessageMaxLength = 140

	// FeedSize is the number of thoughts returned when no page is requested
	FeedSize = 20
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrThoughtNotFound  = errors.New("thought not found")
	ErrInvalidID        = errors.New("invalid thought id")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Thought is a short message with a like counter
type Thought struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Hearts    int       `json:"hearts"`
	CreatedAt time.Time `json:"createdAt"`
}

// ThoughtRepository defines the interface for thought data access.
// Both listings are ordered by CreatedAt, newest first.
type ThoughtRepository interface {
	Create(ctx context.Context, thought *Thought) error
	ListRecent(ctx context.Context, limit int) ([]*Thought, error)
	ListPage(ctx context.Context, skip, limit int) ([]*Thought, error)
	// IncrementHearts adds one heart and returns the updated thought
	IncrementHearts(ctx context.Context, id string) (*Thought, error)
	Ping(ctx context.Context) error
}
