package repository

import (
	"context"

	"carwash-tracker/internal/domain/entity"
)

// BookingStore is the persistence contract for the booking collection.
// Both calls operate on the whole collection and are atomic: a reader
// never observes a partially written document.
type BookingStore interface {
	LoadAll(ctx context.Context) ([]entity.Booking, error)
	SaveAll(ctx context.Context, bookings []entity.Booking) error
}
