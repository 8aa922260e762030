package converter

import (
	"time"

	"carwash-tracker/internal/delivery/dto"
	"carwash-tracker/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to a BookingResponse DTO,
// deriving the display phase, progress and live countdown at the given
// instant. The entity itself is never mutated.
func BookingToResponse(booking *entity.Booking, now time.Time) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:               booking.ID,
		ServiceID:        booking.ServiceID,
		HashID:           booking.HashID,
		Status:           string(booking.Status),
		Plate:            booking.Plate,
		Brand:            booking.Brand,
		VehicleType:      booking.VehicleType,
		Color:            booking.Color,
		Year:             booking.Year,
		Notes:            booking.Notes,
		ScheduledAt:      booking.ScheduledAt,
		FinishAt:         booking.FinishAt,
		TotalSeconds:     booking.TotalSeconds,
		RemainingSeconds: booking.RemainingAt(now),
		Phase:            string(booking.PhaseAt(now)),
		Progress:         booking.ProgressAt(now),
	}
}

// BookingsToResponses converts a slice of Booking entities to response
// DTOs, deriving display fields against one shared instant.
func BookingsToResponses(bookings []entity.Booking, now time.Time) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking, now)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
