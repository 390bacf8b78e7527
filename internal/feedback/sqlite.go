package feedback

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jengzang/neuronav-backend-go/internal/database"
	"github.com/jengzang/neuronav-backend-go/internal/models"
)

// SQLiteLedger stores records in the feedback table.
// Appends are serialized so the autoincrement id gives the append order.
type SQLiteLedger struct {
	db  *sql.DB
	mu  sync.Mutex
	now Clock
}

// NewSQLiteLedger creates a ledger on a migrated database
func NewSQLiteLedger(db *sql.DB) *SQLiteLedger {
	return &SQLiteLedger{db: db, now: time.Now}
}

const insertFeedback = `INSERT INTO feedback (route_id, comfortable, stress_points_json, time_ms) VALUES (?, ?, ?, ?)`

// Record inserts a new record
func (l *SQLiteLedger) Record(routeID string, comfortable bool, stressPoints []string) (models.FeedbackRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := newRecord(routeID, comfortable, stressPoints, l.now)
	if err != nil {
		return models.FeedbackRecord{}, err
	}

	args, err := insertArgs(rec)
	if err != nil {
		return models.FeedbackRecord{}, err
	}
	if _, err := l.db.Exec(insertFeedback, args...); err != nil {
		return models.FeedbackRecord{}, fmt.Errorf("failed to insert feedback: %w", err)
	}

	return rec, nil
}

// ListAll returns all records ordered by insertion
func (l *SQLiteLedger) ListAll() ([]models.FeedbackRecord, error) {
	rows, err := l.db.Query(`SELECT route_id, comfortable, stress_points_json, time_ms FROM feedback ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	records := []models.FeedbackRecord{}
	for rows.Next() {
		var (
			r          models.FeedbackRecord
			pointsJSON string
			timeMs     int64
		)
		if err := rows.Scan(&r.RouteID, &r.Comfortable, &pointsJSON, &timeMs); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		if err := json.Unmarshal([]byte(pointsJSON), &r.StressPoints); err != nil {
			return nil, fmt.Errorf("failed to decode stress points: %w", err)
		}
		if r.StressPoints == nil {
			r.StressPoints = []string{}
		}
		r.Time = time.UnixMilli(timeMs).UTC()
		records = append(records, r)
	}

	return records, rows.Err()
}

// Import appends records in one transaction
func (l *SQLiteLedger) Import(records []models.FeedbackRecord) (int, error) {
	if err := validateImport(records); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	err := database.Transaction(l.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(insertFeedback)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			args, err := insertArgs(r)
			if err != nil {
				return err
			}
			if _, err := stmt.Exec(args...); err != nil {
				return fmt.Errorf("failed to insert feedback: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func insertArgs(r models.FeedbackRecord) ([]interface{}, error) {
	points := r.StressPoints
	if points == nil {
		points = []string{}
	}
	pointsJSON, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stress points: %w", err)
	}
	comfortable := 0
	if r.Comfortable {
		comfortable = 1
	}
	return []interface{}{r.RouteID, comfortable, string(pointsJSON), r.Time.UnixMilli()}, nil
}
