package http

import (
	"net/http"

	"carwash-tracker/internal/delivery/http/handler"
	"carwash-tracker/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	bookingHandler    *handler.BookingHandler
	webhookHandler    *handler.WebhookHandler
	timelineHandler   *handler.TimelineHandler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	bookingHandler *handler.BookingHandler,
	webhookHandler *handler.WebhookHandler,
	timelineHandler *handler.TimelineHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		bookingHandler:    bookingHandler,
		webhookHandler:    webhookHandler,
		timelineHandler:   timelineHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Booking routes. Time adjustments (+5/-5 on the dashboard) go
	// through the same PUT as any other patch.
	api.HandleFunc("/bookings", r.bookingHandler.GetBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings", r.bookingHandler.ClearBookings).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/timeline", r.timelineHandler.GetTimeline).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", r.bookingHandler.UpdateBooking).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{id}", r.bookingHandler.DeleteBooking).Methods(http.MethodDelete)

	// External booking systems post events here.
	r.router.HandleFunc("/webhook", r.webhookHandler.HandleEvent).Methods(http.MethodPost)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
