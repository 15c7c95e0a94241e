package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"thoughts-api/internal/domain"
	"thoughts-api/internal/observability"

	"github.com/go-playground/validator/v10"
)

const defaultStoreTimeout = 5 * time.Second

// CreateThoughtInput is the typed body of a create request
type CreateThoughtInput struct {
	Message string `json:"message" validate:"required,min=5,max=140"`
}

// ListThoughtsInput selects between the recency feed (Page == 0) and offset pagination
type ListThoughtsInput struct {
	Page    int `validate:"gte=0"`
	PerPage int `validate:"required_unless=Page 0,gte=0"`
}

// Paginated reports whether an explicit page was requested
func (in ListThoughtsInput) Paginated() bool {
	return in.Page > 0
}

// offset returns how many thoughts precede the page, false when that does not fit in an int
func (in ListThoughtsInput) offset() (int, bool) {
	if in.PerPage < 1 || in.Page-1 > math.MaxInt/in.PerPage {
		return 0, false
	}
	return (in.Page - 1) * in.PerPage, true
}

var errPageOutOfRange = fmt.Errorf("%w: page is out of range for perPage", domain.ErrValidation)

// ParseListQuery builds a ListThoughtsInput from raw query values.
// perPage is only read when page is present.
func ParseListQuery(page, perPage string) (ListThoughtsInput, error) {
	if page == "" {
		return ListThoughtsInput{}, nil
	}

	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		return ListThoughtsInput{}, fmt.Errorf("%w: page must be a positive integer", domain.ErrValidation)
	}

	if perPage == "" {
		return ListThoughtsInput{}, fmt.Errorf("%w: perPage is required when page is set", domain.ErrValidation)
	}
	pp, err := strconv.Atoi(perPage)
	if err != nil || pp < 1 {
		return ListThoughtsInput{}, fmt.Errorf("%w: perPage must be a positive integer", domain.ErrValidation)
	}

	in := ListThoughtsInput{Page: p, PerPage: pp}
	if _, ok := in.offset(); !ok {
		return ListThoughtsInput{}, errPageOutOfRange
	}
	return in, nil
}

// ThoughtService implements list, create and like over a ThoughtRepository
type ThoughtService struct {
	repo     domain.ThoughtRepository
	validate *validator.Validate
	timeout  time.Duration
	now      func() time.Time
}

// Option customizes a ThoughtService
type Option func(*ThoughtService)

// WithTimeout bounds every store call made by the service
func WithTimeout(d time.Duration) Option {
	return func(s *ThoughtService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *ThoughtService) {
		s.now = now
	}
}

func NewThoughtService(repo domain.ThoughtRepository, opts ...Option) *ThoughtService {
	s := &ThoughtService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		timeout:  defaultStoreTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the recency feed, or one page ordered newest first
func (s *ThoughtService) List(ctx context.Context, in ListThoughtsInput) ([]*domain.Thought, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	if !in.Paginated() {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.repo.ListRecent(ctx, domain.FeedSize)
	}

	skip, ok := in.offset()
	if !ok {
		return nil, errPageOutOfRange
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.ListPage(ctx, skip, in.PerPage)
}

// Create trims and validates the message, then stores a new thought with no hearts
func (s *ThoughtService) Create(ctx context.Context, in CreateThoughtInput) (*domain.Thought, error) {
	in.Message = strings.TrimSpace(in.Message)
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	thought := &domain.Thought{
		Message:   in.Message,
		Hearts:    0,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond), // BSON dates only hold milliseconds
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Create(ctx, thought); err != nil {
		return nil, err
	}

	observability.ThoughtsCreatedTotal.Inc()
	observability.FromContext(ctx).Info("thought created", "thought_id", thought.ID)
	return thought, nil
}

// Like adds one heart and returns the thought as it is after the increment
func (s *ThoughtService) Like(ctx context.Context, id string) (*domain.Thought, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	thought, err := s.repo.IncrementHearts(ctx, id)
	if err != nil {
		return nil, err
	}

	observability.ThoughtLikesTotal.Inc()
	return thought, nil
}

// Ping reports whether the backing store is reachable
func (s *ThoughtService) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.Ping(ctx)
}

// validationError turns validator output into a domain.ErrValidation with a readable message
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	case "required_unless":
		return fmt.Errorf("%w: %s is required when page is set", domain.ErrValidation, field)
	case "min", "max":
		if field == "message" {
			return fmt.Errorf("%w: message must be between %d and %d characters",
				domain.ErrValidation, domain.MessageMinLength, domain.MessageMaxLength)
		}
		return fmt.Errorf("%w: %s must be %s %s", domain.ErrValidation, field, fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("%w: %s failed %s", domain.ErrValidation, field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
