package spatial

import (
	"github.com/golang/geo/s2"
	"github.com/jengzang/neuronav-backend-go/internal/models"
)

const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PathLength returns the length of a polyline in meters.
// Paths with fewer than two points have zero length.
func PathLength(path []models.LatLng) float64 {
	if len(path) < 2 {
		return 0
	}

	points := make([]s2.Point, len(path))
	for i, p := range path {
		points[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lng))
	}

	line := s2.Polyline(points)
	return line.Length().Radians() * EarthRadiusMeters
}
