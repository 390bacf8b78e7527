package stress

import (
	"fmt"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/jengzang/neuronav-backend-go/internal/spatial"
	"github.com/jengzang/neuronav-backend-go/internal/stats"
)

// PolicyKind names an aggregation strategy
type PolicyKind string

const (
	PolicyMean             PolicyKind = "mean"
	PolicyDistanceWeighted PolicyKind = "distance_weighted"
	PolicyCustom           PolicyKind = "custom"
)

// AggregateFunc reduces per-segment scores to a route score. scores[i]
// belongs to segments[i] and both are non-empty.
type AggregateFunc func(scores []float64, segments []models.SegmentAttributes) float64

// Policy selects how segment scores combine into a route score
type Policy struct {
	Kind PolicyKind
	Fn   AggregateFunc
}

// Mean averages segment scores without weighting
func Mean() Policy { return Policy{Kind: PolicyMean} }

// DistanceWeighted weights each segment by its length. Segments without
// DistanceMeters use the length of their Path; if no segment has a length the
// plain mean is used.
func DistanceWeighted() Policy { return Policy{Kind: PolicyDistanceWeighted} }

// Custom aggregates with fn
func Custom(fn AggregateFunc) Policy { return Policy{Kind: PolicyCustom, Fn: fn} }

// ParsePolicy resolves a configured policy name. Custom policies can only be
// built in code.
func ParsePolicy(name string) (Policy, error) {
	switch PolicyKind(name) {
	case "", PolicyMean:
		return Mean(), nil
	case PolicyDistanceWeighted:
		return DistanceWeighted(), nil
	default:
		return Policy{}, fmt.Errorf("unknown aggregation policy %q: %w", name, models.ErrInvalidInput)
	}
}

const peakPercentile = 90

// Result is the route-level outcome of an aggregation
type Result struct {
	Score         float64   `json:"score"`
	Label         Label     `json:"label"`
	SegmentScores []float64 `json:"segmentScores"`
	// Peak is the 90th percentile segment score: how hard the worst stretches are
	Peak float64 `json:"peak"`
}

// Aggregator turns a route's segments into one sensory score
type Aggregator struct {
	model  *Model
	policy Policy
}

// NewAggregator creates an aggregator. A nil model uses the reference model.
func NewAggregator(model *Model, policy Policy) *Aggregator {
	if model == nil {
		model = DefaultModel()
	}
	return &Aggregator{model: model, policy: policy}
}

// Model returns the segment model used by the aggregator
func (a *Aggregator) Model() *Model {
	return a.model
}

// Policy returns the aggregation policy
func (a *Aggregator) Policy() Policy {
	return a.policy
}

// RouteStress returns the aggregated stress of a route
func (a *Aggregator) RouteStress(segments []models.SegmentAttributes) (float64, error) {
	res, err := a.Aggregate(segments)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// Aggregate scores every segment and combines them under the policy.
// An empty route fails with ErrInvalidInput.
func (a *Aggregator) Aggregate(segments []models.SegmentAttributes) (Result, error) {
	if len(segments) == 0 {
		return Result{}, fmt.Errorf("cannot aggregate a route with no segments: %w", models.ErrInvalidInput)
	}

	scores := make([]float64, len(segments))
	for i, seg := range segments {
		scores[i] = a.model.SegmentStress(seg)
	}

	var score float64
	switch a.policy.Kind {
	case PolicyDistanceWeighted:
		score = stats.WeightedMean(scores, segmentLengths(segments))
	case PolicyCustom:
		if a.policy.Fn != nil {
			score = a.policy.Fn(scores, segments)
		} else {
			score = stats.Mean(scores)
		}
	default:
		score = stats.Mean(scores)
	}

	return Result{
		Score:         score,
		Label:         LabelFor(score),
		SegmentScores: scores,
		Peak:          stats.Percentile(scores, peakPercentile),
	}, nil
}

// RouteStress aggregates with the reference model and the mean policy
func RouteStress(segments []models.SegmentAttributes) (float64, error) {
	return NewAggregator(defaultModel, Mean()).RouteStress(segments)
}

func segmentLengths(segments []models.SegmentAttributes) []float64 {
	lengths := make([]float64, len(segments))
	for i, seg := range segments {
		switch {
		case seg.DistanceMeters > 0:
			lengths[i] = seg.DistanceMeters
		case len(seg.Path) > 1:
			lengths[i] = spatial.PathLength(seg.Path)
		}
	}
	return lengths
}
