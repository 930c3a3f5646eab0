package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// memoryRepository keeps properties in a map guarded by a RWMutex.
type memoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]*models.Property
	nextID int64
}

// NewMemoryRepository creates an in-memory PropertyRepository holding copies of seed.
// Ids of seeded properties are kept; new ids continue after the highest one.
func NewMemoryRepository(seed []*models.Property) PropertyRepository {
	r := &memoryRepository{
		items:  make(map[int64]*models.Property, len(seed)),
		nextID: 1,
	}
	for _, p := range seed {
		r.items[p.ID] = p.Clone()
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *memoryRepository) List(ctx context.Context) ([]*models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Property, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Property) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *memoryRepository) Get(ctx context.Context, id int64) (*models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *memoryRepository) Add(ctx context.Context, p *models.Property) (*models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("cannot add nil property")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := p.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.items[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *memoryRepository) Update(ctx context.Context, id int64, fn UpdateFunc) (*models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("update property %d: %w", id, ErrNotFound)
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = id
	r.items[id] = next
	return next.Clone(), nil
}

func (r *memoryRepository) Remove(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("remove property %d: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
