package service

import (
	"context"
	"io"
	"testing"
	"time"

	"carwash-tracker/internal/domain/entity"
	"carwash-tracker/internal/repository"

	"github.com/sirupsen/logrus"
)

type stubStore struct {
	bookings []entity.Booking
	saves    int
}

func (s *stubStore) LoadAll(ctx context.Context) ([]entity.Booking, error) {
	out := make([]entity.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

func (s *stubStore) SaveAll(ctx context.Context, bookings []entity.Booking) error {
	s.bookings = make([]entity.Booking, len(bookings))
	copy(s.bookings, bookings)
	s.saves++
	return nil
}

func TestPrunerJobRunOnce(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := &stubStore{bookings: []entity.Booking{
		{ID: 1, Status: entity.BookingStatusCancelled},
		{ID: 2, Status: entity.BookingStatusActive, ScheduledAt: now, FinishAt: now.Add(time.Hour)},
	}}

	log := logrus.New()
	log.SetOutput(io.Discard)

	job := NewPrunerJob(repository.NewCollection(store), log, time.Minute, time.Hour)
	job.now = func() time.Time { return now }

	job.RunOnce(context.Background())

	if len(store.bookings) != 1 || store.bookings[0].ID != 2 {
		t.Fatalf("bookings after pass = %+v, want only booking 2", store.bookings)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}

	// Nothing left to prune: the second pass must not write.
	job.RunOnce(context.Background())
	if store.saves != 1 {
		t.Errorf("saves after clean pass = %d, want still 1", store.saves)
	}
}

func TestPrunerJobStartStop(t *testing.T) {
	store := &stubStore{}
	log := logrus.New()
	log.SetOutput(io.Discard)

	job := NewPrunerJob(repository.NewCollection(store), log, time.Hour, time.Hour)
	job.Start()
	job.Stop()
	// Stop twice must not panic or hang.
	job.Stop()
}
