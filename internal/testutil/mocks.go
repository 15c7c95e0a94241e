// Package testutil provides shared test utilities, mocks, and fixtures
// for testing the thoughts API.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"thoughts-api/internal/domain"
)

// MockThoughtRepository implements domain.ThoughtRepository in memory
type MockThoughtRepository struct {
	mu sync.RWMutex

	// Function overrides - set these to customize behavior
	CreateFunc          func(ctx context.Context, thought *domain.Thought) error
	ListRecentFunc      func(ctx context.Context, limit int) ([]*domain.Thought, error)
	ListPageFunc        func(ctx context.Context, skip, limit int) ([]*domain.Thought, error)
	IncrementHeartsFunc func(ctx context.Context, id string) (*domain.Thought, error)
	PingFunc            func(ctx context.Context) error

	// In-memory storage for simple tests
	Thoughts map[string]*domain.Thought

	nextID int
}

// NewMockThoughtRepository creates a new MockThoughtRepository with initialized maps
func NewMockThoughtRepository() *MockThoughtRepository {
	return &MockThoughtRepository{
		Thoughts: make(map[string]*domain.Thought),
	}
}

// Seed stores thoughts as-is, keeping any ID already set
func (m *MockThoughtRepository) Seed(thoughts ...*domain.Thought) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range thoughts {
		if t.ID == "" {
			t.ID = m.newID()
		}
		copied := *t
		m.Thoughts[t.ID] = &copied
	}
}

// Get returns a copy of the stored thought
func (m *MockThoughtRepository) Get(id string) (*domain.Thought, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.Thoughts[id]
	if !ok {
		return nil, false
	}
	copied := *t
	return &copied, true
}

// Count returns the number of stored thoughts
func (m *MockThoughtRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Thoughts)
}

func (m *MockThoughtRepository) Create(ctx context.Context, thought *domain.Thought) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, thought)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	thought.ID = m.newID()
	copied := *thought
	m.Thoughts[thought.ID] = &copied
	return nil
}

func (m *MockThoughtRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Thought, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return m.page(0, limit), nil
}

func (m *MockThoughtRepository) ListPage(ctx context.Context, skip, limit int) ([]*domain.Thought, error) {
	if m.ListPageFunc != nil {
		return m.ListPageFunc(ctx, skip, limit)
	}
	return m.page(skip, limit), nil
}

func (m *MockThoughtRepository) IncrementHearts(ctx context.Context, id string) (*domain.Thought, error) {
	if m.IncrementHeartsFunc != nil {
		return m.IncrementHeartsFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Thoughts[id]
	if !ok {
		return nil, domain.ErrThoughtNotFound
	}
	t.Hearts++
	copied := *t
	return &copied, nil
}

func (m *MockThoughtRepository) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// page returns copies ordered by CreatedAt descending, ties broken by ID
func (m *MockThoughtRepository) page(skip, limit int) []*domain.Thought {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*domain.Thought, 0, len(m.Thoughts))
	for _, t := range m.Thoughts {
		copied := *t
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if skip >= len(all) {
		return []*domain.Thought{}
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

// newID must be called with mu held
func (m *MockThoughtRepository) newID() string {
	m.nextID++
	return fmt.Sprintf("thought-%04d", m.nextID)
}
