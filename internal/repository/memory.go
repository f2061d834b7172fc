package repository

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/model"
)

// Memory is an in-memory store for development and tests. State is
// scoped to the instance, so independent stores can be constructed for
// isolated tests. Each collection is guarded by a single mutex.
type Memory struct {
	links *memoryLinks
	users *memoryUsers
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		links: &memoryLinks{},
		users: &memoryUsers{},
	}
}

// Links returns the in-memory links repository.
func (m *Memory) Links() Links { return m.links }

// Users returns the in-memory users repository.
func (m *Memory) Users() Users { return m.users }

// Ping always succeeds; the store has no external dependency.
func (m *Memory) Ping(ctx context.Context) error { return nil }

type memoryLinks struct {
	mu    sync.Mutex
	items []*model.LinkItem
}

func (r *memoryLinks) Find(ctx context.Context, query model.LinkQuery) ([]*model.LinkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*model.LinkItem, 0, len(r.items))
	for _, item := range r.items {
		if query.Matches(item) {
			clone := *item
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (r *memoryLinks) Get(ctx context.Context, query model.LinkQuery) (*model.LinkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ID == query.ID {
			clone := *item
			return &clone, nil
		}
	}
	return nil, apperr.LinkNotFoundError{ID: query.ID}
}

func (r *memoryLinks) Create(ctx context.Context, item *model.LinkItem) (*model.LinkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *item
	created.ID = ulid.Make().String()
	r.items = append(r.items, &created)

	clone := created
	return &clone, nil
}

func (r *memoryLinks) Update(ctx context.Context, query model.LinkQuery, item *model.LinkItem) (*model.LinkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == query.ID {
			updated := *item
			updated.ID = query.ID
			r.items[i] = &updated

			clone := updated
			return &clone, nil
		}
	}
	return nil, apperr.LinkNotFoundError{ID: query.ID}
}

func (r *memoryLinks) Delete(ctx context.Context, query model.LinkQuery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.ID == query.ID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperr.LinkNotFoundError{ID: query.ID}
}

type memoryUsers struct {
	mu    sync.Mutex
	users []*model.UserInfo
}

func (r *memoryUsers) Get(ctx context.Context, query model.UserQuery) (*model.UserInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, info := range r.users {
		if info.Email == query.Email {
			clone := *info
			return &clone, nil
		}
	}
	return nil, apperr.UserNotFoundError{Email: query.Email}
}

func (r *memoryUsers) Create(ctx context.Context, info *model.UserInfo) (*model.UserInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == info.Email {
			return nil, apperr.UserAlreadyExistsError{Email: info.Email}
		}
	}

	created := *info
	created.ID = ulid.Make().String()
	r.users = append(r.users, &created)

	clone := created
	return &clone, nil
}
