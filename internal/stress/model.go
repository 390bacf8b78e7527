// Package stress scores the expected sensory load of route segments and
// routes, labels the scores and advises on rerouting.
package stress

import (
	"math"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/jengzang/neuronav-backend-go/internal/stats"
)

// Weights are the coefficients of the linear segment model
type Weights struct {
	Traffic    float64 `yaml:"traffic" json:"traffic"`
	POIDensity float64 `yaml:"poi_density" json:"poiDensity"`
	Turns      float64 `yaml:"turns" json:"turns"`
	RoadType   float64 `yaml:"road_type" json:"roadType"`
}

// Reference coefficients. Traffic and crowding dominate.
var DefaultWeights = Weights{
	Traffic:    0.35,
	POIDensity: 0.30,
	Turns:      0.20,
	RoadType:   0.15,
}

// DefaultRoadTypeWeight applies to road types missing from the table
const DefaultRoadTypeWeight = 0.5

// DefaultRoadTypeWeights returns a fresh copy of the reference road table
func DefaultRoadTypeWeights() map[models.RoadType]float64 {
	return map[models.RoadType]float64{
		models.RoadHighway:     1.0,
		models.RoadArterial:    0.6,
		models.RoadResidential: 0.3,
	}
}

// Model is the segment stress model. The zero value is not usable; use
// NewModel or DefaultModel.
type Model struct {
	weights     Weights
	roadWeights map[models.RoadType]float64
	roadDefault float64
}

// NewModel creates a model with custom coefficients. A nil road table uses the
// reference table.
func NewModel(w Weights, roadWeights map[models.RoadType]float64, roadDefault float64) *Model {
	table := DefaultRoadTypeWeights()
	if roadWeights != nil {
		table = make(map[models.RoadType]float64, len(roadWeights))
		for k, v := range roadWeights {
			table[k] = v
		}
	}
	return &Model{
		weights:     w,
		roadWeights: table,
		roadDefault: roadDefault,
	}
}

// DefaultModel returns the model with the reference coefficients
func DefaultModel() *Model {
	return NewModel(DefaultWeights, nil, DefaultRoadTypeWeight)
}

// RoadTypeWeight looks up the road classification weight
func (m *Model) RoadTypeWeight(rt models.RoadType) float64 {
	if w, ok := m.roadWeights[rt]; ok {
		return w
	}
	return m.roadDefault
}

// SegmentStress computes the stress of one segment.
// Normalized inputs are clamped to [0,1] and NaN counts as 0.
func (m *Model) SegmentStress(seg models.SegmentAttributes) float64 {
	// explicit float64 conversions keep the products from being fused
	terms := []float64{
		float64(m.weights.Traffic * clamp01(seg.Traffic)),
		float64(m.weights.POIDensity * clamp01(seg.POIDensity)),
		float64(m.weights.Turns * clamp01(seg.Turns)),
		float64(m.weights.RoadType * m.RoadTypeWeight(seg.RoadType)),
	}
	return stats.Sum(terms)
}

// SegmentStress scores a segment with the reference model
func SegmentStress(seg models.SegmentAttributes) float64 {
	return defaultModel.SegmentStress(seg)
}

var defaultModel = DefaultModel()

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
