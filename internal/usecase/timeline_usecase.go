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

type TimelineUsecase interface {
	Layout(ctx context.Context, day time.Time) (*dto.TimelineResponse, error)
}

type timelineUsecase struct {
	collection *repository.Collection
	log        *logrus.Logger
	window     service.BusinessWindow
	width      float64
	retention  time.Duration
	now        func() time.Time
}

func NewTimelineUsecase(collection *repository.Collection, log *logrus.Logger, window service.BusinessWindow, width float64, retention time.Duration) TimelineUsecase {
	return &timelineUsecase{
		collection: collection,
		log:        log,
		window:     window,
		width:      width,
		retention:  retention,
		now:        time.Now,
	}
}

// Layout prunes like every other read, then computes the timeline
// placements for bookings scheduled on the given day.
func (u *timelineUsecase) Layout(ctx context.Context, day time.Time) (*dto.TimelineResponse, error) {
	now := u.now()

	bookings, err := u.collection.Mutate(ctx, func(bookings []entity.Booking) ([]entity.Booking, bool, error) {
		pruned, changed := service.Prune(bookings, now, u.retention)
		return pruned, changed, nil
	})
	if err != nil {
		u.log.Warnf("Failed to load bookings for timeline: %+v", err)
		return nil, err
	}

	placements := service.Layout(bookings, day, u.window, u.width)
	return converter.PlacementsToResponse(day, placements), nil
}
