package spatial

import (
	"math"

	"github.com/jengzang/neuronav-backend-go/internal/models"
)

// minLegMeters ignores polyline jitter when measuring heading changes
const minLegMeters = 1.0

// Bearing returns the initial great-circle bearing from a to b in degrees [0, 360)
func Bearing(a, b models.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lng - a.Lng) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// AngularDifferenceDegrees calculates the smallest difference between two angles (degrees)
// Result is in range [-180, 180]
func AngularDifferenceDegrees(angle1, angle2 float64) float64 {
	diff := math.Mod(angle2-angle1, 360)
	// Normalize to [-180, 180]
	if diff > 180 {
		diff -= 360
	}
	if diff < -180 {
		diff += 360
	}
	return diff
}

// HeadingChange sums the absolute heading changes along a path in degrees.
// A straight path is 0, a right angle 90. Legs shorter than a meter are skipped.
func HeadingChange(path []models.LatLng) float64 {
	var (
		total   float64
		prev    float64
		hasPrev bool
	)
	for i := 1; i < len(path); i++ {
		if HaversineDistance(path[i-1].Lat, path[i-1].Lng, path[i].Lat, path[i].Lng) < minLegMeters {
			continue
		}
		b := Bearing(path[i-1], path[i])
		if hasPrev {
			total += math.Abs(AngularDifferenceDegrees(prev, b))
		}
		prev, hasPrev = b, true
	}
	return total
}
