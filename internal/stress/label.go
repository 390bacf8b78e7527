package stress

// Label is the human-facing stress category
type Label string

const (
	Calm     Label = "calm"
	Moderate Label = "moderate"
	Stressed Label = "stressed"
)

// Label thresholds, lower bound inclusive
const (
	ModerateThreshold = 0.4
	StressedThreshold = 0.7
)

// LabelFor maps any score to exactly one label
func LabelFor(score float64) Label {
	switch {
	case score < ModerateThreshold:
		return Calm
	case score < StressedThreshold:
		return Moderate
	default:
		return Stressed
	}
}
