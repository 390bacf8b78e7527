package stress

import "math"

// DefaultRerouteEpsilon is the minimum improvement, in stress units, worth a reroute
const DefaultRerouteEpsilon = 0.05

// Advisor decides whether an alternative route is worth switching to.
// The epsilon margin keeps tiny improvements from flapping the suggestion.
type Advisor struct {
	epsilon float64
}

// Advice is the outcome of comparing two route scores
type Advice struct {
	SuggestReroute bool    `json:"suggestReroute"`
	Improvement    float64 `json:"improvement"`
	Epsilon        float64 `json:"epsilon"`
}

// NewAdvisor creates an advisor; negative or NaN epsilon is treated as 0
func NewAdvisor(epsilon float64) *Advisor {
	if math.IsNaN(epsilon) || epsilon < 0 {
		epsilon = 0
	}
	return &Advisor{epsilon: epsilon}
}

// Epsilon returns the hysteresis margin
func (a *Advisor) Epsilon() float64 {
	return a.epsilon
}

// ShouldSuggestReroute reports whether alternative < current - epsilon
func (a *Advisor) ShouldSuggestReroute(current, alternative float64) bool {
	return alternative < current-a.epsilon
}

// Advise compares the scores and reports the improvement. The improvement
// saturates at the largest finite float64 so the advice always encodes as JSON.
func (a *Advisor) Advise(current, alternative float64) Advice {
	improvement := current - alternative
	switch {
	case math.IsNaN(improvement):
		improvement = 0
	case math.IsInf(improvement, 1):
		improvement = math.MaxFloat64
	case math.IsInf(improvement, -1):
		improvement = -math.MaxFloat64
	}

	return Advice{
		SuggestReroute: a.ShouldSuggestReroute(current, alternative),
		Improvement:    improvement,
		Epsilon:        a.epsilon,
	}
}

// ShouldSuggestReroute applies the default epsilon
func ShouldSuggestReroute(current, alternative float64) bool {
	return NewAdvisor(DefaultRerouteEpsilon).ShouldSuggestReroute(current, alternative)
}
