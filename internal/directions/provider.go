// Package directions fetches candidate routes from a routing provider and
// turns provider steps into scoring segments.
package directions

import (
	"context"
	"errors"

	"github.com/jengzang/neuronav-backend-go/internal/models"
)

// Travel modes understood by the provider
const (
	ModeDriving   = "driving"
	ModeWalking   = "walking"
	ModeBicycling = "bicycling"
	ModeTransit   = "transit"
)

// DefaultTravelModes are queried when a request names none
var DefaultTravelModes = []string{ModeDriving, ModeWalking, ModeTransit}

// ErrNoRoutes is returned when the provider finds nothing for a request
var ErrNoRoutes = errors.New("no routes found")

// Provider returns candidate routes for one travel mode. Returned routes
// carry their segments but no sensory score.
type Provider interface {
	Routes(ctx context.Context, origin, destination, mode string) ([]models.Route, error)
}

// ValidMode reports whether mode is a known travel mode
func ValidMode(mode string) bool {
	switch mode {
	case ModeDriving, ModeWalking, ModeBicycling, ModeTransit:
		return true
	}
	return false
}
