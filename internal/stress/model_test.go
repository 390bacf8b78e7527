package stress

import (
	"math"
	"testing"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSegmentStressReferenceValues(t *testing.T) {
	busiest := models.SegmentAttributes{Traffic: 1, POIDensity: 1, Turns: 1, RoadType: models.RoadHighway}
	assert.Equal(t, 1.0, SegmentStress(busiest))

	quietest := models.SegmentAttributes{RoadType: models.RoadResidential}
	assert.Equal(t, 0.045, SegmentStress(quietest))
}

func TestSegmentStressRoadTypes(t *testing.T) {
	tests := []struct {
		road models.RoadType
		want float64
	}{
		{models.RoadHighway, 0.15},
		{models.RoadArterial, 0.15 * 0.6},
		{models.RoadResidential, 0.15 * 0.3},
		{models.RoadUnknown, 0.15 * 0.5},
		{"cobblestone", 0.15 * 0.5},
		{"", 0.15 * 0.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.road), func(t *testing.T) {
			got := SegmentStress(models.SegmentAttributes{RoadType: tt.road})
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestSegmentStressStaysInUnitInterval(t *testing.T) {
	roads := []models.RoadType{models.RoadHighway, models.RoadArterial, models.RoadResidential, "gravel"}
	for i := 0; i <= 10; i++ {
		for j := 0; j <= 10; j++ {
			for k := 0; k <= 10; k++ {
				for _, road := range roads {
					seg := models.SegmentAttributes{
						Traffic:    float64(i) / 10,
						POIDensity: float64(j) / 10,
						Turns:      float64(k) / 10,
						RoadType:   road,
					}
					s := SegmentStress(seg)
					if s < 0 || s > 1 {
						t.Fatalf("stress %v out of [0,1] for %+v", s, seg)
					}
				}
			}
		}
	}
}

func TestSegmentStressClampsOutOfRange(t *testing.T) {
	over := models.SegmentAttributes{Traffic: 7, POIDensity: 1.5, Turns: 2, RoadType: models.RoadHighway}
	assert.Equal(t, 1.0, SegmentStress(over))

	under := models.SegmentAttributes{Traffic: -3, POIDensity: math.NaN(), Turns: -0.1, RoadType: models.RoadResidential}
	assert.Equal(t, 0.045, SegmentStress(under))
}

func TestSegmentStressIsDeterministic(t *testing.T) {
	seg := models.SegmentAttributes{Traffic: 0.8, POIDensity: 0.5, Turns: 0.2, RoadType: models.RoadArterial}
	first := SegmentStress(seg)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, SegmentStress(seg))
	}
	assert.InDelta(t, 0.56, first, 1e-12)
}

func TestCustomModel(t *testing.T) {
	m := NewModel(Weights{Traffic: 1}, map[models.RoadType]float64{"ferry": 0.9}, 0.1)
	assert.Equal(t, 0.9, m.RoadTypeWeight("ferry"))
	assert.Equal(t, 0.1, m.RoadTypeWeight(models.RoadHighway))
	assert.Equal(t, 0.25, m.SegmentStress(models.SegmentAttributes{Traffic: 0.25, POIDensity: 1}))
}

func TestNewModelCopiesRoadTable(t *testing.T) {
	table := map[models.RoadType]float64{models.RoadHighway: 0.8}
	m := NewModel(DefaultWeights, table, DefaultRoadTypeWeight)
	table[models.RoadHighway] = 0
	assert.Equal(t, 0.8, m.RoadTypeWeight(models.RoadHighway))
}
