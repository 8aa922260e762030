package repository

import (
	"context"
	"sync"

	"carwash-tracker/internal/domain/entity"
	domainRepo "carwash-tracker/internal/domain/repository"
)

// MutateFunc takes the freshly loaded collection and returns the mutated
// collection plus whether anything changed. A false changed flag skips
// the save. The input slice must not be retained after the call.
type MutateFunc func(bookings []entity.Booking) ([]entity.Booking, bool, error)

// Collection serializes load-mutate-save cycles over a BookingStore.
// The store has no per-record versioning, so every mutation is a
// critical section; the mutex is shared by request handling and the
// background pruner alike.
type Collection struct {
	mu    sync.Mutex
	store domainRepo.BookingStore
}

func NewCollection(store domainRepo.BookingStore) *Collection {
	return &Collection{store: store}
}

// Mutate runs one full load-mutate-save cycle under the collection lock
// and returns the resulting collection. When fn reports no change or
// fails, nothing is persisted.
func (c *Collection) Mutate(ctx context.Context, fn MutateFunc) ([]entity.Booking, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bookings, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	mutated, changed, err := fn(bookings)
	if err != nil {
		return nil, err
	}

	if changed {
		if err := c.store.SaveAll(ctx, mutated); err != nil {
			return nil, err
		}
	}
	return mutated, nil
}
