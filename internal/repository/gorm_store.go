package repository

import (
	"context"
	"fmt"

	"carwash-tracker/internal/domain/entity"
	domainRepo "carwash-tracker/internal/domain/repository"

	"gorm.io/gorm"
)

// gormBookingStore keeps the collection in a single Postgres table while
// preserving whole-collection semantics: SaveAll rewrites the table in
// one transaction, so readers see either the old or the new collection.
type gormBookingStore struct {
	db *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) domainRepo.BookingStore {
	return &gormBookingStore{db: db}
}

func (s *gormBookingStore) LoadAll(ctx context.Context) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := s.db.WithContext(ctx).Order("id").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	if bookings == nil {
		bookings = []entity.Booking{}
	}
	return bookings, nil
}

func (s *gormBookingStore) SaveAll(ctx context.Context, bookings []entity.Booking) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.Booking{}).Error; err != nil {
			return err
		}
		if len(bookings) == 0 {
			return nil
		}
		return tx.Create(&bookings).Error
	})
	if err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	return nil
}
