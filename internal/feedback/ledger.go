// Package feedback records user-reported comfort outcomes per route.
//
// Ledgers are append-only: records are never mutated or deleted, and
// ListAll returns them in append order.
package feedback

import (
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/neuronav-backend-go/internal/models"
)

// Backend names accepted by configuration
const (
	BackendMemory = "memory"
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Ledger is an append-only store of feedback records. Implementations are
// safe for concurrent use.
type Ledger interface {
	// Record appends a record stamped with the current time
	Record(routeID string, comfortable bool, stressPoints []string) (models.FeedbackRecord, error)

	// ListAll returns every completed record in append order
	ListAll() ([]models.FeedbackRecord, error)

	// Import appends records that already carry a timestamp
	Import(records []models.FeedbackRecord) (int, error)
}

// Limits on a single record. They keep every persisted line small enough
// to be read back.
const (
	MaxRouteIDLength     = 256
	MaxStressPoints      = 32
	MaxStressPointLength = 200
)

// Clock returns the current time
type Clock func() time.Time

func newRecord(routeID string, comfortable bool, stressPoints []string, now Clock) (models.FeedbackRecord, error) {
	if err := validateRecord(routeID, stressPoints); err != nil {
		return models.FeedbackRecord{}, err
	}

	points := make([]string, len(stressPoints))
	copy(points, stressPoints)

	return models.FeedbackRecord{
		RouteID:      routeID,
		Comfortable:  comfortable,
		StressPoints: points,
		// millisecond precision matches the persisted format
		Time: now().UTC().Truncate(time.Millisecond),
	}, nil
}

func validateRecord(routeID string, stressPoints []string) error {
	if strings.TrimSpace(routeID) == "" {
		return fmt.Errorf("routeId is required: %w", models.ErrInvalidInput)
	}
	if len(routeID) > MaxRouteIDLength {
		return fmt.Errorf("routeId longer than %d bytes: %w", MaxRouteIDLength, models.ErrInvalidInput)
	}
	if len(stressPoints) > MaxStressPoints {
		return fmt.Errorf("more than %d stress points: %w", MaxStressPoints, models.ErrInvalidInput)
	}
	for _, p := range stressPoints {
		if len(p) > MaxStressPointLength {
			return fmt.Errorf("stress point longer than %d bytes: %w", MaxStressPointLength, models.ErrInvalidInput)
		}
	}
	return nil
}

func validateImport(records []models.FeedbackRecord) error {
	for i, r := range records {
		if err := validateRecord(r.RouteID, r.StressPoints); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
