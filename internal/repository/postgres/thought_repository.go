package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"thoughts-api/internal/domain"
	"thoughts-api/internal/observability"

	"github.com/google/uuid"
)

const driverName = "postgres"

const (
	createThoughtsTable = `
		CREATE TABLE IF NOT EXISTS thoughts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			message VARCHAR(140) NOT NULL CONSTRAINT thoughts_message_length CHECK (char_length(message) BETWEEN 5 AND 140),
			hearts INTEGER NOT NULL DEFAULT 0 CHECK (hearts >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	createThoughtsIndex = `
		CREATE INDEX IF NOT EXISTS idx_thoughts_created_at_id ON thoughts (created_at DESC, id DESC)
	`

	insertThought = `
		INSERT INTO thoughts (message, hearts, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	selectRecentThoughts = `
		SELECT id, message, hearts, created_at
		FROM thoughts
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	selectThoughtPage = `
		SELECT id, message, hearts, created_at
		FROM thoughts
		ORDER BY created_at DESC, id DESC
		OFFSET $1
		LIMIT $2
	`
	incrementThoughtHearts = `
		UPDATE thoughts
		SET hearts = hearts + 1
		WHERE id = $1
		RETURNING id, message, hearts, created_at
	`
)

// ThoughtRepository implements domain.ThoughtRepository for PostgreSQL
type ThoughtRepository struct {
	db *sql.DB
}

// NewThoughtRepository creates a new PostgreSQL thought repository
func NewThoughtRepository(db *sql.DB) *ThoughtRepository {
	return &ThoughtRepository{db: db}
}

// EnsureSchema creates the thoughts table and its index if they do not exist
func (r *ThoughtRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createThoughtsTable, createThoughtsIndex} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return wrapError("create thoughts schema", err)
		}
	}
	return nil
}

// Create inserts a new thought; the database assigns its ID
func (r *ThoughtRepository) Create(ctx context.Context, thought *domain.Thought) (err error) {
	defer func(start time.Time) {
		observability.ObserveStoreOperation("create", driverName, start, err)
	}(time.Now())

	err = r.db.QueryRowContext(ctx, insertThought,
		thought.Message,
		thought.Hearts,
		thought.CreatedAt,
	).Scan(&thought.ID)
	if err != nil {
		return wrapError("create thought", err)
	}
	return nil
}

// ListRecent returns the newest thoughts
func (r *ThoughtRepository) ListRecent(ctx context.Context, limit int) (thoughts []*domain.Thought, err error) {
	defer func(start time.Time) {
		observability.ObserveStoreOperation("list_recent", driverName, start, err)
	}(time.Now())

	rows, err := r.db.QueryContext(ctx, selectRecentThoughts, limit)
	if err != nil {
		return nil, wrapError("list thoughts", err)
	}
	return scanThoughts(rows)
}

// ListPage returns one page of thoughts
func (r *ThoughtRepository) ListPage(ctx context.Context, skip, limit int) (thoughts []*domain.Thought, err error) {
	defer func(start time.Time) {
		observability.ObserveStoreOperation("list_page", driverName, start, err)
	}(time.Now())

	rows, err := r.db.QueryContext(ctx, selectThoughtPage, skip, limit)
	if err != nil {
		return nil, wrapError("page thoughts", err)
	}
	return scanThoughts(rows)
}

// IncrementHearts atomically adds one heart and returns the updated row
func (r *ThoughtRepository) IncrementHearts(ctx context.Context, id string) (thought *domain.Thought, err error) {
	defer func(start time.Time) {
		observability.ObserveStoreOperation("like", driverName, start, err)
	}(time.Now())

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	thought = &domain.Thought{}
	err = r.db.QueryRowContext(ctx, incrementThoughtHearts, parsed.String()).Scan(
		&thought.ID,
		&thought.Message,
		&thought.Hearts,
		&thought.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrThoughtNotFound
	}
	if err != nil {
		return nil, wrapError("like thought", err)
	}
	return thought, nil
}

// Ping checks database connectivity
func (r *ThoughtRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return wrapError("ping postgres", err)
	}
	return nil
}

func scanThoughts(rows *sql.Rows) ([]*domain.Thought, error) {
	defer rows.Close()

	thoughts := make([]*domain.Thought, 0)
	for rows.Next() {
		thought := &domain.Thought{}
		if err := rows.Scan(
			&thought.ID,
			&thought.Message,
			&thought.Hearts,
			&thought.CreatedAt,
		); err != nil {
			return nil, wrapError("scan thought", err)
		}
		thoughts = append(thoughts, thought)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate thoughts", err)
	}
	return thoughts, nil
}
