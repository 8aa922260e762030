package converter

import (
	"time"

	"carwash-tracker/internal/delivery/dto"
	"carwash-tracker/internal/service"
)

// PlacementsToResponse converts a layout map to its response DTO.
func PlacementsToResponse(day time.Time, placements map[int64]service.Placement) *dto.TimelineResponse {
	response := &dto.TimelineResponse{
		Date:       day.Format("2006-01-02"),
		Placements: make(map[int64]dto.TimelinePlacement, len(placements)),
	}
	for id, p := range placements {
		response.Placements[id] = dto.TimelinePlacement{
			Offset:     p.Offset,
			Width:      p.Width,
			StackIndex: p.StackIndex,
		}
	}
	return response
}
