package service

import (
	"testing"
	"time"

	"carwash-tracker/internal/domain/entity"
)

func TestPrune(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	retention := time.Hour

	bookings := []entity.Booking{
		{ID: 1, Status: entity.BookingStatusActive, ScheduledAt: now.Add(-2 * time.Hour), FinishAt: now.Add(-61 * time.Minute)},
		{ID: 2, Status: entity.BookingStatusActive, ScheduledAt: now.Add(-2 * time.Hour), FinishAt: now.Add(-59 * time.Minute)},
		{ID: 3, Status: entity.BookingStatusCancelled, ScheduledAt: now, FinishAt: now.Add(time.Hour)},
		{ID: 4, Status: entity.BookingStatusActive, ScheduledAt: now, FinishAt: now.Add(time.Hour)},
	}

	pruned, changed := Prune(bookings, now, retention)
	if !changed {
		t.Fatal("Prune() reported no change")
	}

	var ids []int64
	for _, b := range pruned {
		ids = append(ids, b.ID)
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 4 {
		t.Fatalf("Prune() kept %v, want [2 4]", ids)
	}
}

func TestPruneIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	retention := time.Hour

	bookings := []entity.Booking{
		{ID: 1, Status: entity.BookingStatusCancelled},
		{ID: 2, Status: entity.BookingStatusActive, FinishAt: now.Add(-2 * time.Hour)},
		{ID: 3, Status: entity.BookingStatusActive, ScheduledAt: now, FinishAt: now.Add(time.Hour)},
	}

	once, changed := Prune(bookings, now, retention)
	if !changed {
		t.Fatal("first Prune() reported no change")
	}

	twice, changed := Prune(once, now, retention)
	if changed {
		t.Error("second Prune() with the same instant reported a change")
	}
	if len(twice) != len(once) {
		t.Errorf("second Prune() kept %d bookings, want %d", len(twice), len(once))
	}
}

func TestPruneNoChange(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	bookings := []entity.Booking{
		{ID: 1, Status: entity.BookingStatusActive, ScheduledAt: now, FinishAt: now.Add(time.Hour)},
	}

	if _, changed := Prune(bookings, now, time.Hour); changed {
		t.Error("Prune() on a fresh collection reported a change")
	}
}
