package service

import (
	"time"

	"carwash-tracker/internal/domain/entity"
)

// BusinessWindow is the portion of a calendar day the timeline covers,
// in minutes since midnight.
type BusinessWindow struct {
	StartMinutes int
	EndMinutes   int
}

func (w BusinessWindow) totalMinutes() int {
	return w.EndMinutes - w.StartMinutes
}

// Placement positions one booking block on the dashboard timeline:
// horizontal offset and width in the caller's pixel scale, and the
// vertical stack slot among overlapping bookings.
type Placement struct {
	Offset     float64 `json:"offset"`
	Width      float64 `json:"width"`
	StackIndex int     `json:"stackIndex"`
}

// Layout maps each booking scheduled on the target day to a timeline
// placement. It is a pure function of its inputs: no layout state is
// carried between calls.
//
// The stack index of a booking counts the overlapping same-day
// bookings with a smaller id, so concurrent washes stack in creation
// order and never share a slot. Overlap uses the half-open window
// [scheduledAt, finishAt). Bookings without a committed window get a
// degenerate zero placement rather than being dropped; clamping tiny
// widths up to something clickable is the presentation layer's job.
func Layout(bookings []entity.Booking, day time.Time, window BusinessWindow, width float64) map[int64]Placement {
	placements := make(map[int64]Placement, len(bookings))
	total := window.totalMinutes()

	var sameDay []entity.Booking
	for _, b := range bookings {
		if !b.HasWindow() {
			placements[b.ID] = Placement{}
			continue
		}
		if !sameCalendarDay(b.ScheduledAt, day) {
			continue
		}
		sameDay = append(sameDay, b)
	}

	for _, b := range sameDay {
		scheduledMin := minutesOfDay(b.ScheduledAt, day.Location())
		finishMin := minutesOfDay(b.FinishAt, day.Location())

		offset := scheduledMin - window.StartMinutes
		if offset < 0 {
			offset = 0
		}
		duration := finishMin - scheduledMin
		if duration < 0 {
			duration = 0
		}

		placement := Placement{}
		if total > 0 {
			placement.Offset = float64(offset) / float64(total) * width
			placement.Width = float64(duration) / float64(total) * width
		}

		for _, other := range sameDay {
			if other.ID >= b.ID {
				continue
			}
			if other.ScheduledAt.Before(b.FinishAt) && b.ScheduledAt.Before(other.FinishAt) {
				placement.StackIndex++
			}
		}

		placements[b.ID] = placement
	}

	return placements
}

func sameCalendarDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func minutesOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}
