package repository

import (
	"context"
	"errors"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// ErrNotFound is returned by Update and Remove when the property does not exist.
var ErrNotFound = errors.New("property not found")

// UpdateFunc changes a property in place. Returning an error aborts the update and
// the error is passed back to the caller unchanged.
type UpdateFunc func(p *models.Property) error

// PropertyRepository defines the interface for property data access operations.
// Implementations return copies; mutating a returned property never changes stored state.
type PropertyRepository interface {
	// List returns every property ordered by id.
	List(ctx context.Context) ([]*models.Property, error)

	// Get returns the property with the given id.
	// Returns nil, nil if no property is found (not an error).
	Get(ctx context.Context, id int64) (*models.Property, error)

	// Add stores a new property, assigns its id and returns the stored copy.
	Add(ctx context.Context, p *models.Property) (*models.Property, error)

	// Update loads the property, applies fn and stores the result. Updates of the same
	// property are serialized, so concurrent edits never overwrite each other.
	// Returns ErrNotFound if it does not exist.
	Update(ctx context.Context, id int64, fn UpdateFunc) (*models.Property, error)

	// Remove deletes the property. Returns ErrNotFound if it does not exist.
	Remove(ctx context.Context, id int64) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
