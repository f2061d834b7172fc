// Package repository provides the persistence contracts consumed by
// the services, with interchangeable postgres and in-memory backends.
package repository

import (
	"context"

	"github.com/linkstash/linkstash/internal/model"
)

// Links is the persistence contract for saved links.
// Implementations map their engine-specific failures to the error
// kinds in internal/apperr; a missing record is always
// apperr.LinkNotFoundError, never an engine error.
type Links interface {
	// Find returns all links matching the query filters. An empty
	// result is not an error.
	Find(ctx context.Context, query model.LinkQuery) ([]*model.LinkItem, error)

	// Get returns the single link matching the query id.
	Get(ctx context.Context, query model.LinkQuery) (*model.LinkItem, error)

	// Create persists a new link and returns it with its assigned id.
	Create(ctx context.Context, item *model.LinkItem) (*model.LinkItem, error)

	// Update replaces the link identified by the query id.
	Update(ctx context.Context, query model.LinkQuery, item *model.LinkItem) (*model.LinkItem, error)

	// Delete removes the link identified by the query id.
	Delete(ctx context.Context, query model.LinkQuery) error
}

// Users is the persistence contract for registered users.
type Users interface {
	// Get returns the user with the query email, or
	// apperr.UserNotFoundError.
	Get(ctx context.Context, query model.UserQuery) (*model.UserInfo, error)

	// Create persists a new user and returns it with its assigned id.
	// A duplicate email yields apperr.UserAlreadyExistsError.
	Create(ctx context.Context, info *model.UserInfo) (*model.UserInfo, error)
}
