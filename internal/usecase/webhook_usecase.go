package usecase

import (
	"context"
	"time"

	"carwash-tracker/internal/converter"
	"carwash-tracker/internal/delivery/dto"
	"carwash-tracker/internal/domain/entity"
	"carwash-tracker/internal/repository"
	"carwash-tracker/internal/service"

	"github.com/sirupsen/logrus"
)

type WebhookUsecase interface {
	ProcessEvent(ctx context.Context, event *dto.WebhookEvent) (*dto.WebhookResult, error)
}

type webhookUsecase struct {
	collection *repository.Collection
	log        *logrus.Logger
	now        func() time.Time
}

func NewWebhookUsecase(collection *repository.Collection, log *logrus.Logger) WebhookUsecase {
	return &webhookUsecase{
		collection: collection,
		log:        log,
		now:        time.Now,
	}
}

// ProcessEvent applies an external booking event. The two correlation
// keys drive two deliberately separate paths:
//
//   - A cancelled event with a hash id removes every booking sharing
//     that hash id. Matching nothing is a normal outcome.
//   - Any other event with a service id replaces the booking holding
//     that service id wholesale, new id included; no field merge. With
//     no existing match, or no service id at all, the event becomes a
//     new booking.
//
// The keys are not interchangeable; do not unify the branches.
func (u *webhookUsecase) ProcessEvent(ctx context.Context, event *dto.WebhookEvent) (*dto.WebhookResult, error) {
	if event.Status == string(entity.BookingStatusCancelled) && event.HashID != "" {
		return u.cancelByHashID(ctx, event.HashID)
	}
	return u.upsertByServiceID(ctx, event)
}

func (u *webhookUsecase) cancelByHashID(ctx context.Context, hashID string) (*dto.WebhookResult, error) {
	var removed int
	_, err := u.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		kept := bookings[:0]
		for _, b := range bookings {
			if b.HashID == hashID {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		return kept, removed > 0, nil
	})
	if err != nil {
		u.log.Warnf("Failed webhook cancellation for hash %s: %+v", hashID, err)
		return nil, err
	}

	if removed == 0 {
		u.log.Infof("Webhook cancellation matched nothing: hash=%s", hashID)
		return &dto.WebhookResult{Message: "no bookings matched the cancellation"}, nil
	}

	u.log.Infof("Webhook cancelled %d bookings: hash=%s", removed, hashID)
	return &dto.WebhookResult{Removed: removed, Message: "bookings cancelled"}, nil
}

func (u *webhookUsecase) upsertByServiceID(ctx context.Context, event *dto.WebhookEvent) (*dto.WebhookResult, error) {
	now := u.now()

	times := service.ResolveTimes(service.TimeInput{
		ScheduledAt:      event.ScheduledAt,
		FinishAt:         event.FinishAt,
		ETAMinutes:       event.ETAMinutes,
		CountdownSeconds: event.CountdownSeconds,
	}, now)
	if times.FinishAt.Before(times.ScheduledAt) {
		return nil, ErrInvalidTimeRange
	}

	status := entity.BookingStatusActive
	if event.Status != "" {
		status = entity.BookingStatus(event.Status)
	}

	var stored entity.Booking
	var replaced bool
	_, err := u.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		stored = entity.Booking{
			ID:               nextBookingID(bookings, now),
			ServiceID:        event.ServiceID,
			HashID:           event.HashID,
			Status:           status,
			Plate:            event.Plate,
			Brand:            event.Brand,
			VehicleType:      event.VehicleType,
			Color:            event.Color,
			Year:             event.Year,
			Notes:            event.Notes,
			ScheduledAt:      times.ScheduledAt,
			FinishAt:         times.FinishAt,
			TotalSeconds:     times.TotalSeconds,
			RemainingSeconds: times.RemainingSeconds,
		}

		if event.ServiceID != "" {
			for i := range bookings {
				if bookings[i].ServiceID == event.ServiceID {
					bookings[i] = stored
					replaced = true
					return bookings, true, nil
				}
			}
		}
		return append(bookings, stored), true, nil
	})
	if err != nil {
		u.log.Warnf("Failed webhook upsert for service %s: %+v", event.ServiceID, err)
		return nil, err
	}

	if replaced {
		u.log.Infof("Webhook replaced booking: service=%s, id=%d", event.ServiceID, stored.ID)
	} else {
		u.log.Infof("Webhook created booking: service=%s, id=%d", event.ServiceID, stored.ID)
	}
	return &dto.WebhookResult{Booking: converter.BookingToResponse(&stored, now)}, nil
}
