package usecase

import (
	"context"
	"errors"
	"time"

	"carwash-tracker/internal/converter"
	"carwash-tracker/internal/delivery/dto"
	"carwash-tracker/internal/domain/entity"
	"carwash-tracker/internal/repository"
	"carwash-tracker/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidTimeRange = errors.New("finish time is before scheduled time")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateBooking(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*dto.UpdateBookingResult, error)
	DeleteBooking(ctx context.Context, id int64) error
	ListBookings(ctx context.Context) (*dto.BookingListResponse, error)
	ClearBookings(ctx context.Context) error
}

type bookingUsecase struct {
	collection *repository.Collection
	log        *logrus.Logger
	retention  time.Duration
	now        func() time.Time
}

func NewBookingUsecase(collection *repository.Collection, log *logrus.Logger, retention time.Duration) BookingUsecase {
	return &bookingUsecase{
		collection: collection,
		log:        log,
		retention:  retention,
		now:        time.Now,
	}
}

// CreateBooking resolves the timing triple from whatever the caller
// supplied, allocates an id and appends the booking.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	now := u.now()

	times := service.ResolveTimes(service.TimeInput{
		ScheduledAt:      req.ScheduledAt,
		FinishAt:         req.FinishAt,
		ETAMinutes:       req.ETAMinutes,
		CountdownSeconds: req.CountdownSeconds,
	}, now)
	if times.FinishAt.Before(times.ScheduledAt) {
		return nil, ErrInvalidTimeRange
	}

	var created entity.Booking
	_, err := u.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		created = entity.Booking{
			ID:               nextBookingID(bookings, now),
			Status:           entity.BookingStatusActive,
			Plate:            req.Plate,
			Brand:            req.Brand,
			VehicleType:      req.VehicleType,
			Color:            req.Color,
			Year:             req.Year,
			Notes:            req.Notes,
			ScheduledAt:      times.ScheduledAt,
			FinishAt:         times.FinishAt,
			TotalSeconds:     times.TotalSeconds,
			RemainingSeconds: times.RemainingSeconds,
		}
		return append(bookings, created), true, nil
	})
	if err != nil {
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	u.log.Infof("Booking created: id=%d, plate=%s, scheduled=%s", created.ID, created.Plate, created.ScheduledAt.Format(time.RFC3339))
	return converter.BookingToResponse(&created, now), nil
}

// UpdateBooking merges the patch over the stored booking. Touching any
// timing field re-resolves the whole triple from the merged values.
// Setting status to cancelled removes the booking immediately instead
// of storing the cancelled state; that removal is deliberate policy,
// the record does not linger for a grace period.
func (u *bookingUsecase) UpdateBooking(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*dto.UpdateBookingResult, error) {
	now := u.now()

	var updated entity.Booking
	var removed bool
	_, err := u.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		index := -1
		for i := range bookings {
			if bookings[i].ID == id {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, false, ErrBookingNotFound
		}

		booking := bookings[index]

		if req.HasTiming() {
			times := service.ResolveTimes(mergeTimeInput(req, &booking), now)
			if times.FinishAt.Before(times.ScheduledAt) {
				return nil, false, ErrInvalidTimeRange
			}
			booking.ScheduledAt = times.ScheduledAt
			booking.FinishAt = times.FinishAt
			booking.TotalSeconds = times.TotalSeconds
			booking.RemainingSeconds = times.RemainingSeconds
		}

		applyPatch(&booking, req)

		if booking.IsCancelled() {
			removed = true
			return append(bookings[:index], bookings[index+1:]...), true, nil
		}

		bookings[index] = booking
		updated = booking
		return bookings, true, nil
	})
	if err != nil {
		if !errors.Is(err, ErrBookingNotFound) && !errors.Is(err, ErrInvalidTimeRange) {
			u.log.Warnf("Failed to update booking %d: %+v", id, err)
		}
		return nil, err
	}

	if removed {
		u.log.Infof("Booking cancelled and removed: id=%d", id)
		return &dto.UpdateBookingResult{Removed: true}, nil
	}

	u.log.Infof("Booking updated: id=%d", id)
	return &dto.UpdateBookingResult{
		Booking: converter.BookingToResponse(&updated, now),
	}, nil
}

// DeleteBooking removes a booking by id.
func (u *bookingUsecase) DeleteBooking(ctx context.Context, id int64) error {
	_, err := u.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		for i := range bookings {
			if bookings[i].ID == id {
				return append(bookings[:i], bookings[i+1:]...), true, nil
			}
		}
		return nil, false, ErrBookingNotFound
	})
	if err != nil {
		if !errors.Is(err, ErrBookingNotFound) {
			u.log.Warnf("Failed to delete booking %d: %+v", id, err)
		}
		return err
	}

	u.log.Infof("Booking deleted: id=%d", id)
	return nil
}

// ListBookings prunes the collection first, persisting only when the
// prune actually removed something, then returns the survivors with
// phase and progress derived against a single instant.
func (u *bookingUsecase) ListBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	now := u.now()

	bookings, err := u.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		pruned, changed := service.Prune(bookings, now, u.retention)
		return pruned, changed, nil
	})
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings, now),
		Total:    len(bookings),
	}, nil
}

// ClearBookings empties the collection (the dashboard's clear-all).
func (u *bookingUsecase) ClearBookings(ctx context.Context) error {
	var cleared int
	_, err := u.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		cleared = len(bookings)
		return []entity.Booking{}, cleared > 0, nil
	})
	if err != nil {
		u.log.Warnf("Failed to clear bookings: %+v", err)
		return err
	}

	u.log.Infof("Cleared %d bookings", cleared)
	return nil
}

// nextBookingID allocates a millisecond-timestamp id, bumped past the
// collection's current maximum so ids stay strictly increasing in
// creation order. Display tie-breaking depends on that ordering.
func nextBookingID(bookings []entity.Booking, now time.Time) int64 {
	id := now.UnixMilli()
	for i := range bookings {
		if bookings[i].ID >= id {
			id = bookings[i].ID + 1
		}
	}
	return id
}

// mergeTimeInput builds the resolver input from the patch merged over
// the stored booking. A finish time is only inherited when the patch
// carries no ETA, so an ETA-only edit recomputes the finish time from
// the scheduled instant the way the dashboard's edit form expects.
func mergeTimeInput(req *dto.UpdateBookingRequest, booking *entity.Booking) service.TimeInput {
	in := service.TimeInput{
		ETAMinutes:       req.ETAMinutes,
		CountdownSeconds: req.CountdownSeconds,
	}

	if req.ScheduledAt != nil {
		in.ScheduledAt = req.ScheduledAt
	} else if !booking.ScheduledAt.IsZero() {
		scheduled := booking.ScheduledAt
		in.ScheduledAt = &scheduled
	}

	if req.FinishAt != nil {
		in.FinishAt = req.FinishAt
	} else if req.ETAMinutes == nil && !booking.FinishAt.IsZero() {
		finish := booking.FinishAt
		in.FinishAt = &finish
	}

	return in
}

// applyPatch merges the non-timing fields shallowly; nil fields were
// not supplied and leave the stored value alone.
func applyPatch(booking *entity.Booking, req *dto.UpdateBookingRequest) {
	if req.Plate != nil {
		booking.Plate = *req.Plate
	}
	if req.Brand != nil {
		booking.Brand = *req.Brand
	}
	if req.VehicleType != nil {
		booking.VehicleType = *req.VehicleType
	}
	if req.Color != nil {
		booking.Color = *req.Color
	}
	if req.Year != nil {
		booking.Year = *req.Year
	}
	if req.Notes != nil {
		booking.Notes = *req.Notes
	}
	if req.Status != nil {
		booking.Status = entity.BookingStatus(*req.Status)
	}
}
