package handler

import (
	"net/http"
	"time"

	"carwash-tracker/internal/usecase"
	"carwash-tracker/pkg/response"
)

type TimelineHandler struct {
	timelineUsecase usecase.TimelineUsecase
}

func NewTimelineHandler(timelineUsecase usecase.TimelineUsecase) *TimelineHandler {
	return &TimelineHandler{timelineUsecase: timelineUsecase}
}

// GetTimeline returns the layout for one calendar day; the date query
// parameter defaults to today.
func (h *TimelineHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		day = parsed
	}

	timeline, err := h.timelineUsecase.Layout(r.Context(), day)
	if err != nil {
		response.InternalServerError(w, "Failed to compute timeline")
		return
	}

	response.Success(w, http.StatusOK, "Timeline computed successfully", timeline)
}
