package models

// Sensory flags attached to a route
const (
	FlagHeavyTraffic = "heavy-traffic"
	FlagComplexTurns = "complex-turns"
	FlagHighway      = "highway"
	FlagBusyArea     = "busy-area"
)

// Route is one candidate route of a planning session. Routes are not persisted.
type Route struct {
	RouteID      string              `json:"routeId"`
	Summary      string              `json:"summary"`
	TravelMode   string              `json:"travelMode"`
	DistanceText string              `json:"distanceText"`
	DurationText string              `json:"durationText"`
	Path         []LatLng            `json:"path"`
	Segments     []SegmentAttributes `json:"segments,omitempty"`

	SensoryScore float64  `json:"sensoryScore"`
	StressLabel  string   `json:"stressLabel"`
	SensoryFlags []string `json:"sensoryFlags"`
}
