package usecase

import (
	"context"
	"testing"
	"time"

	"carwash-tracker/internal/delivery/dto"
	"carwash-tracker/internal/domain/entity"
	"carwash-tracker/internal/repository"
)

func newTestWebhookUsecase(store *memoryStore, now time.Time) *webhookUsecase {
	u := NewWebhookUsecase(repository.NewCollection(store), quietLogger()).(*webhookUsecase)
	u.now = func() time.Time { return now }
	return u
}

func activeBooking(id int64, serviceID, hashID string, now time.Time) entity.Booking {
	return entity.Booking{
		ID:          id,
		ServiceID:   serviceID,
		HashID:      hashID,
		Status:      entity.BookingStatusActive,
		ScheduledAt: now,
		FinishAt:    now.Add(time.Hour),
	}
}

func TestWebhookUpsertCreatesThenReplaces(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	store := &memoryStore{}
	u := newTestWebhookUsecase(store, now)

	event := &dto.WebhookEvent{
		ServiceID:  "svc-1",
		Plate:      "ABC-123",
		Brand:      "Honda",
		ETAMinutes: intPtr(20),
	}

	first, err := u.ProcessEvent(context.Background(), event)
	if err != nil {
		t.Fatalf("ProcessEvent() error: %v", err)
	}
	if first.Booking == nil {
		t.Fatal("upsert returned no booking")
	}
	if len(store.bookings) != 1 {
		t.Fatalf("store holds %d bookings, want 1", len(store.bookings))
	}

	// Same event again: still exactly one record, replaced wholesale
	// with a fresh id.
	event.Notes = "second delivery"
	second, err := u.ProcessEvent(context.Background(), event)
	if err != nil {
		t.Fatalf("ProcessEvent() error: %v", err)
	}
	if len(store.bookings) != 1 {
		t.Fatalf("store holds %d bookings after replay, want 1", len(store.bookings))
	}
	if second.Booking.ID <= first.Booking.ID {
		t.Errorf("replacement id %d not past original %d", second.Booking.ID, first.Booking.ID)
	}
	if store.bookings[0].Notes != "second delivery" {
		t.Errorf("Notes = %q, want replaced wholesale", store.bookings[0].Notes)
	}
}

func TestWebhookUpsertWithoutServiceIDAppends(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	store := &memoryStore{}
	u := newTestWebhookUsecase(store, now)

	event := &dto.WebhookEvent{Plate: "NO-KEY"}
	for i := 0; i < 2; i++ {
		if _, err := u.ProcessEvent(context.Background(), event); err != nil {
			t.Fatalf("ProcessEvent() error: %v", err)
		}
	}
	if len(store.bookings) != 2 {
		t.Errorf("store holds %d bookings, want 2 (no correlation key, no dedupe)", len(store.bookings))
	}
}

func TestWebhookBulkCancelByHashID(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	store := &memoryStore{bookings: []entity.Booking{
		activeBooking(1, "svc-1", "H1", now),
		activeBooking(2, "svc-2", "H1", now),
		activeBooking(3, "svc-3", "H1", now),
		activeBooking(4, "svc-4", "H2", now),
	}}
	u := newTestWebhookUsecase(store, now)

	result, err := u.ProcessEvent(context.Background(), &dto.WebhookEvent{
		Status: string(entity.BookingStatusCancelled),
		HashID: "H1",
	})
	if err != nil {
		t.Fatalf("ProcessEvent() error: %v", err)
	}
	if result.Removed != 3 {
		t.Errorf("Removed = %d, want 3", result.Removed)
	}
	if len(store.bookings) != 1 || store.bookings[0].HashID != "H2" {
		t.Errorf("remaining bookings = %+v, want only the H2 booking", store.bookings)
	}
}

func TestWebhookCancelNoMatchIsNotAnError(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	store := &memoryStore{bookings: []entity.Booking{
		activeBooking(1, "svc-1", "H2", now),
	}}
	u := newTestWebhookUsecase(store, now)

	result, err := u.ProcessEvent(context.Background(), &dto.WebhookEvent{
		Status: string(entity.BookingStatusCancelled),
		HashID: "H1",
	})
	if err != nil {
		t.Fatalf("ProcessEvent() error = %v, want nil for no-match cancel", err)
	}
	if result.Removed != 0 || result.Message == "" {
		t.Errorf("result = %+v, want zero removals and an explanatory message", result)
	}
	if store.saves != 0 {
		t.Error("no-match cancellation persisted the collection")
	}
}

func TestWebhookCancelledWithoutHashIDFallsThroughToUpsert(t *testing.T) {
	now := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	store := &memoryStore{bookings: []entity.Booking{
		activeBooking(1, "svc-1", "", now),
	}}
	u := newTestWebhookUsecase(store, now)

	// The hash id drives bulk cancel; without one, a cancelled status
	// does not reach the cancellation branch. The keys are not
	// interchangeable.
	result, err := u.ProcessEvent(context.Background(), &dto.WebhookEvent{
		Status:    string(entity.BookingStatusCancelled),
		ServiceID: "svc-1",
	})
	if err != nil {
		t.Fatalf("ProcessEvent() error: %v", err)
	}
	if result.Booking == nil {
		t.Fatal("expected the upsert branch to handle the event")
	}
	if len(store.bookings) != 1 {
		t.Fatalf("store holds %d bookings, want 1 (replacement, not removal)", len(store.bookings))
	}
	// The replacement keeps the cancelled status and stays transient
	// until the next prune pass removes it.
	if store.bookings[0].Status != entity.BookingStatusCancelled {
		t.Errorf("Status = %s, want cancelled", store.bookings[0].Status)
	}
}
