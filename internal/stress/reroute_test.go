package stress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldSuggestReroute(t *testing.T) {
	assert.True(t, ShouldSuggestReroute(0.8, 0.5))
	assert.False(t, ShouldSuggestReroute(0.5, 0.48))
	assert.False(t, ShouldSuggestReroute(0.5, 0.9))
	assert.False(t, ShouldSuggestReroute(0.5, 0.5))
}

func TestAdvisorEpsilonIsExclusive(t *testing.T) {
	// binary-exact values so the margin is hit precisely
	a := NewAdvisor(0.25)
	assert.False(t, a.ShouldSuggestReroute(1.0, 0.75))
	assert.True(t, a.ShouldSuggestReroute(1.0, 0.5))
}

func TestAdvisorZeroEpsilon(t *testing.T) {
	a := NewAdvisor(0)
	assert.True(t, a.ShouldSuggestReroute(0.5, 0.49))
	assert.False(t, a.ShouldSuggestReroute(0.5, 0.5))
}

func TestNewAdvisorRejectsBadEpsilon(t *testing.T) {
	assert.Equal(t, 0.0, NewAdvisor(-1).Epsilon())
	assert.Equal(t, 0.0, NewAdvisor(math.NaN()).Epsilon())
}

func TestAdvise(t *testing.T) {
	advice := NewAdvisor(DefaultRerouteEpsilon).Advise(0.8, 0.5)
	assert.True(t, advice.SuggestReroute)
	assert.InDelta(t, 0.3, advice.Improvement, 1e-12)
	assert.Equal(t, DefaultRerouteEpsilon, advice.Epsilon)

	assert.False(t, NewAdvisor(DefaultRerouteEpsilon).Advise(math.NaN(), 0.1).SuggestReroute)
}

func TestAdviseImprovementStaysFinite(t *testing.T) {
	a := NewAdvisor(DefaultRerouteEpsilon)

	adv := a.Advise(1.7e308, -1.7e308)
	assert.True(t, adv.SuggestReroute)
	assert.Equal(t, math.MaxFloat64, adv.Improvement)

	adv = a.Advise(-1.7e308, 1.7e308)
	assert.False(t, adv.SuggestReroute)
	assert.Equal(t, -math.MaxFloat64, adv.Improvement)

	adv = a.Advise(math.Inf(1), math.Inf(1))
	assert.Equal(t, 0.0, adv.Improvement)
}
