package models

// RoadType is the coarse road classification of a segment
type RoadType string

// Known road types. Anything else scores with the default road weight.
const (
	RoadHighway     RoadType = "highway"
	RoadArterial    RoadType = "arterial"
	RoadResidential RoadType = "residential"
	RoadUnknown     RoadType = "unknown"
)

// SegmentAttributes holds the sensory-relevant inputs of one road/path segment
type SegmentAttributes struct {
	// Normalized inputs, expected in [0,1]
	Traffic    float64  `json:"traffic"`
	POIDensity float64  `json:"poiDensity"`
	Turns      float64  `json:"turns"`
	RoadType   RoadType `json:"roadType"`

	// Optional geometry, only used by distance-weighted aggregation
	DistanceMeters float64  `json:"distanceMeters,omitempty"`
	Path           []LatLng `json:"path,omitempty"`
}

// LatLng is a geographic point in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
