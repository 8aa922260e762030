package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"carwash-tracker/internal/delivery/dto"
	"carwash-tracker/internal/usecase"
	"carwash-tracker/pkg/response"
	"carwash-tracker/pkg/validator"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.ListBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			response.Error(w, http.StatusBadRequest, "Finish time must not be before scheduled time", nil)
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

// UpdateBooking also serves the dashboard's +5/-5 adjustments, which
// arrive as a countdown-only patch.
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.bookingUsecase.UpdateBooking(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			response.Error(w, http.StatusBadRequest, "Finish time must not be before scheduled time", nil)
		default:
			response.InternalServerError(w, "Failed to update booking")
		}
		return
	}

	if result.Removed {
		response.Success(w, http.StatusOK, "Booking cancelled and removed", result)
		return
	}
	response.Success(w, http.StatusOK, "Booking updated successfully", result)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	if err := h.bookingUsecase.DeleteBooking(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		default:
			response.InternalServerError(w, "Failed to delete booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}

func (h *BookingHandler) ClearBookings(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingUsecase.ClearBookings(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to clear bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings cleared successfully", nil)
}

func bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return 0, false
	}
	return id, true
}
