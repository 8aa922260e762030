package dto

import "time"

// Request DTOs
//
// Patch-style requests use pointer fields throughout: nil means the
// caller did not supply the field, which is different from setting it
// to its zero value. Timestamps are RFC 3339 strings on the wire.

type CreateBookingRequest struct {
	Plate       string `json:"plate" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
	VehicleType string `json:"type" validate:"required"`
	Color       string `json:"color" validate:"required"`
	Year        string `json:"year" validate:"required"`
	Notes       string `json:"notes"`

	ScheduledAt      *time.Time `json:"scheduledTime,omitempty"`
	FinishAt         *time.Time `json:"finishTime,omitempty"`
	ETAMinutes       *int       `json:"eta,omitempty" validate:"omitempty,gte=0"`
	CountdownSeconds *int64     `json:"countdown,omitempty" validate:"omitempty,gte=0"`
}

type UpdateBookingRequest struct {
	Plate       *string `json:"plate,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	VehicleType *string `json:"type,omitempty"`
	Color       *string `json:"color,omitempty"`
	Year        *string `json:"year,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active cancelled"`

	ScheduledAt      *time.Time `json:"scheduledTime,omitempty"`
	FinishAt         *time.Time `json:"finishTime,omitempty"`
	ETAMinutes       *int       `json:"eta,omitempty" validate:"omitempty,gte=0"`
	CountdownSeconds *int64     `json:"countdown,omitempty" validate:"omitempty,gte=0"`
}

// HasTiming reports whether the patch touches any timing field, which
// forces the whole timing triple to be re-resolved.
func (r *UpdateBookingRequest) HasTiming() bool {
	return r.ScheduledAt != nil || r.FinishAt != nil || r.ETAMinutes != nil || r.CountdownSeconds != nil
}

// WebhookEvent is the payload an external booking system posts. The
// two correlation keys serve different purposes and are not
// interchangeable: hashId matches a group of bookings for bulk
// cancellation, serviceId matches a single booking for upsert.
type WebhookEvent struct {
	ServiceID string `json:"serviceId"`
	HashID    string `json:"hashId"`
	Status    string `json:"status" validate:"omitempty,oneof=active cancelled"`

	Plate       string `json:"plate"`
	Brand       string `json:"brand"`
	VehicleType string `json:"type"`
	Color       string `json:"color"`
	Year        string `json:"year"`
	Notes       string `json:"notes"`

	ScheduledAt      *time.Time `json:"scheduledTime,omitempty"`
	FinishAt         *time.Time `json:"finishTime,omitempty"`
	ETAMinutes       *int       `json:"eta,omitempty" validate:"omitempty,gte=0"`
	CountdownSeconds *int64     `json:"countdown,omitempty" validate:"omitempty,gte=0"`
}

// Response DTOs

type BookingResponse struct {
	ID        int64  `json:"id"`
	ServiceID string `json:"serviceId,omitempty"`
	HashID    string `json:"hashId,omitempty"`
	Status    string `json:"status"`

	Plate       string `json:"plate"`
	Brand       string `json:"brand"`
	VehicleType string `json:"type"`
	Color       string `json:"color"`
	Year        string `json:"year"`
	Notes       string `json:"notes"`

	ScheduledAt time.Time `json:"scheduledTime"`
	FinishAt    time.Time `json:"finishTime"`

	TotalSeconds     int64 `json:"totalTime"`
	RemainingSeconds int64 `json:"countdown"`

	// Derived per read, never stored.
	Phase    string  `json:"phase"`
	Progress float64 `json:"progress"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// UpdateBookingResult distinguishes a normal update from a
// cancellation-by-update, which removes the booking outright.
type UpdateBookingResult struct {
	Removed bool             `json:"removed"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

// WebhookResult reports what a webhook event did. Removed carries the
// bulk-cancellation count; a cancellation that matched nothing is a
// normal outcome with an explanatory message, not an error.
type WebhookResult struct {
	Booking *BookingResponse `json:"booking,omitempty"`
	Removed int              `json:"removed,omitempty"`
	Message string           `json:"message,omitempty"`
}
