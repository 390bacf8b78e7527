package spatial

import (
	"fmt"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/twpayne/go-polyline"
)

// DecodePolyline decodes a Google encoded polyline (precision 5)
func DecodePolyline(encoded string) ([]models.LatLng, error) {
	if encoded == "" {
		return nil, nil
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("invalid polyline: %w", err)
	}

	path := make([]models.LatLng, len(coords))
	for i, c := range coords {
		path[i] = models.LatLng{Lat: c[0], Lng: c[1]}
	}
	return path, nil
}
