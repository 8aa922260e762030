package entity

import "time"

// BookingStatus represents the stored status of a booking. The display
// phase (scheduled/in progress/finished) is derived, never stored.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Phase is the derived lifecycle phase of a booking at a point in time.
type Phase string

const (
	PhaseScheduled  Phase = "scheduled"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// Booking represents one wash job with a committed time window.
//
// ServiceID and HashID are correlation keys supplied by webhook callers:
// ServiceID matches a single booking for upsert, HashID matches a group
// of bookings for bulk cancellation. Empty means no correlation key.
//
// TotalSeconds and RemainingSeconds exist for legacy countdown clients.
// They are set consistently with the timestamp pair at write time and
// never advanced by the server; ticking them down is a display concern.
type Booking struct {
	ID        int64         `gorm:"primaryKey" json:"id"`
	ServiceID string        `gorm:"type:varchar(100);index" json:"serviceId,omitempty"`
	HashID    string        `gorm:"type:varchar(100);index" json:"hashId,omitempty"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	Plate       string `gorm:"type:varchar(20)" json:"plate"`
	Brand       string `gorm:"type:varchar(50)" json:"brand"`
	VehicleType string `gorm:"type:varchar(50)" json:"type"`
	Color       string `gorm:"type:varchar(30)" json:"color"`
	Year        string `gorm:"type:varchar(10)" json:"year"`
	Notes       string `gorm:"type:text" json:"notes"`

	ScheduledAt time.Time `json:"scheduledTime"`
	FinishAt    time.Time `json:"finishTime"`

	TotalSeconds     int64 `json:"totalTime"`
	RemainingSeconds int64 `json:"countdown"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsActive checks if the booking has not been cancelled
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

// IsCancelled checks if the booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// HasWindow reports whether the booking carries a committed time window.
// Legacy records written by countdown-only clients have neither timestamp.
func (b *Booking) HasWindow() bool {
	return !b.ScheduledAt.IsZero() && !b.FinishAt.IsZero()
}

// PhaseAt derives the lifecycle phase at the given instant. It never
// mutates the booking, so it is safe to call on every list render.
// Legacy records without timestamps fall back to the stored countdown.
func (b *Booking) PhaseAt(now time.Time) Phase {
	if !b.HasWindow() {
		if b.RemainingSeconds > 0 {
			return PhaseInProgress
		}
		return PhaseFinished
	}
	if now.Before(b.ScheduledAt) {
		return PhaseScheduled
	}
	if now.Before(b.FinishAt) {
		return PhaseInProgress
	}
	return PhaseFinished
}

// ProgressAt returns the wash progress fraction in [0, 1] at the given
// instant: 0 before the scheduled time, 1 once finished.
func (b *Booking) ProgressAt(now time.Time) float64 {
	if !b.HasWindow() {
		if b.TotalSeconds <= 0 {
			return 0
		}
		progress := float64(b.TotalSeconds-b.RemainingSeconds) / float64(b.TotalSeconds)
		return clamp01(progress)
	}
	total := b.FinishAt.Sub(b.ScheduledAt)
	if total <= 0 {
		if now.Before(b.ScheduledAt) {
			return 0
		}
		return 1
	}
	return clamp01(float64(now.Sub(b.ScheduledAt)) / float64(total))
}

// RemainingAt returns the live seconds left until the finish time, for
// display. The stored RemainingSeconds field is left untouched.
func (b *Booking) RemainingAt(now time.Time) int64 {
	if !b.HasWindow() {
		return b.RemainingSeconds
	}
	remaining := int64(b.FinishAt.Sub(now) / time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ExpiredAt reports whether the booking finished more than retention ago.
// Legacy records without a finish time never expire by age.
func (b *Booking) ExpiredAt(now time.Time, retention time.Duration) bool {
	if b.FinishAt.IsZero() {
		return false
	}
	return now.Sub(b.FinishAt) > retention
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
