package directions

import (
	"testing"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTrafficFromDurations(t *testing.T) {
	assert.Equal(t, 0.0, TrafficFromDurations(600, 0))
	assert.Equal(t, 0.0, TrafficFromDurations(0, 600))
	assert.Equal(t, 0.0, TrafficFromDurations(600, 500))
	assert.InDelta(t, 0.5, TrafficFromDurations(600, 900), 1e-12)
	assert.Equal(t, 1.0, TrafficFromDurations(600, 3000))
}

func TestTurnComplexity(t *testing.T) {
	tests := map[string]float64{
		"":                  0,
		"straight":          0,
		"keep-left":         0,
		"turn-left":         0.7,
		"turn-right":        0.7,
		"turn-sharp-left":   1,
		"uturn-right":       1,
		"turn-slight-right": 0.4,
		"ramp-left":         0.4,
		"fork-right":        0.4,
		"roundabout-left":   0.4,
		"merge":             0.4,
	}
	for maneuver, want := range tests {
		assert.Equal(t, want, TurnComplexity(maneuver), maneuver)
	}
}

func TestDensityFromStepLength(t *testing.T) {
	assert.Equal(t, 0.0, DensityFromStepLength(0))
	assert.InDelta(t, 0.8, DensityFromStepLength(200), 1e-12)
	assert.Equal(t, 0.0, DensityFromStepLength(1000))
	assert.Equal(t, 0.0, DensityFromStepLength(25000))
}

func TestCurveComplexity(t *testing.T) {
	assert.Equal(t, 0.0, CurveComplexity(0))
	assert.Equal(t, 0.5, CurveComplexity(90))
	assert.Equal(t, 1.0, CurveComplexity(180))
	assert.Equal(t, 1.0, CurveComplexity(400))
}

func TestClassifyRoad(t *testing.T) {
	tests := []struct {
		instruction string
		want        models.RoadType
	}{
		{"Merge onto <b>I-280 S</b>", models.RoadHighway},
		{"Take the exit onto <b>Bayshore Fwy</b>", models.RoadHighway},
		{"Continue onto the <b>M25</b>", models.RoadHighway},
		{"Turn left onto <b>Mission Blvd</b>", models.RoadArterial},
		{"Head north on <b>Oak Street</b> toward <b>Park Ave</b>", models.RoadResidential},
		{"Turn right onto <b>Elm Ln</b>", models.RoadResidential},
		{"Walk through the plaza", models.RoadUnknown},
		{"", models.RoadUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRoad(tt.instruction), tt.instruction)
	}
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode(ModeDriving))
	assert.True(t, ValidMode(ModeBicycling))
	assert.False(t, ValidMode("teleport"))
}
