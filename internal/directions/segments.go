package directions

import (
	"math"
	"regexp"
	"strings"

	"github.com/jengzang/neuronav-backend-go/internal/models"
)

// TrafficFromDurations turns the delay ratio of a leg into a congestion
// level: no delay is 0, double the free-flow time or worse is 1. A zero
// in-traffic duration means the provider reported none.
func TrafficFromDurations(freeFlowSeconds, inTrafficSeconds float64) float64 {
	if inTrafficSeconds <= 0 || freeFlowSeconds <= 0 {
		return 0
	}
	return clamp01(inTrafficSeconds/freeFlowSeconds - 1)
}

// TurnComplexity maps a provider maneuver to a normalized turn complexity
func TurnComplexity(maneuver string) float64 {
	switch {
	case maneuver == "":
		return 0
	case strings.HasPrefix(maneuver, "uturn"), strings.HasPrefix(maneuver, "turn-sharp"):
		return 1.0
	case maneuver == "turn-left", maneuver == "turn-right":
		return 0.7
	case strings.HasPrefix(maneuver, "turn-slight"),
		strings.HasPrefix(maneuver, "ramp"),
		strings.HasPrefix(maneuver, "fork"),
		strings.HasPrefix(maneuver, "roundabout"),
		maneuver == "merge":
		return 0.4
	default:
		return 0
	}
}

// CurveComplexity scores a winding step without a maneuver: a full
// reversal of heading counts as a u-turn.
func CurveComplexity(headingChangeDegrees float64) float64 {
	return clamp01(headingChangeDegrees / 180)
}

// DensityFromStepLength approximates crowding: short steps mean a dense street
// grid. 1km or longer counts as open road.
func DensityFromStepLength(meters float64) float64 {
	if meters <= 0 {
		return 0
	}
	return clamp01(1 - meters/1000)
}

var (
	tagPattern         = regexp.MustCompile(`<[^>]*>`)
	highwayPattern     = regexp.MustCompile(`(?i)\b(freeway|fwy|highway|hwy|motorway|expressway|expy|interstate|i-\d+|[am]\d+)\b`)
	arterialPattern    = regexp.MustCompile(`(?i)\b(avenue|ave|boulevard|blvd|road|rd|parkway|pkwy)\b`)
	residentialPattern = regexp.MustCompile(`(?i)\b(street|st|lane|ln|drive|dr|court|ct|way|place|pl|close|crescent)\b`)
)

// ClassifyRoad guesses the road class from a step instruction
func ClassifyRoad(instruction string) models.RoadType {
	text := tagPattern.ReplaceAllString(instruction, " ")
	// the road being travelled comes before "toward"
	if i := strings.Index(strings.ToLower(text), " toward "); i >= 0 {
		text = text[:i]
	}
	switch {
	case highwayPattern.MatchString(text):
		return models.RoadHighway
	case arterialPattern.MatchString(text):
		return models.RoadArterial
	case residentialPattern.MatchString(text):
		return models.RoadResidential
	default:
		return models.RoadUnknown
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
