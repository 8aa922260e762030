package dto

// TimelinePlacement positions one booking block on the dashboard
// timeline, in the configured pixel scale.
type TimelinePlacement struct {
	Offset     float64 `json:"offset"`
	Width      float64 `json:"width"`
	StackIndex int     `json:"stackIndex"`
}

type TimelineResponse struct {
	Date       string                      `json:"date"`
	Placements map[int64]TimelinePlacement `json:"placements"`
}
