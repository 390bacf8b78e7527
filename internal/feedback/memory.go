package feedback

import (
	"sync"
	"time"

	"github.com/jengzang/neuronav-backend-go/internal/models"
)

// MemoryLedger keeps records for the lifetime of the process
type MemoryLedger struct {
	mu      sync.RWMutex
	records []models.FeedbackRecord
	now     Clock
}

// NewMemoryLedger creates an empty in-memory ledger
func NewMemoryLedger() *MemoryLedger {
	return NewMemoryLedgerWithClock(time.Now)
}

// NewMemoryLedgerWithClock creates an empty ledger stamping records with now
func NewMemoryLedgerWithClock(now Clock) *MemoryLedger {
	return &MemoryLedger{now: now}
}

// Record appends a new record
func (l *MemoryLedger) Record(routeID string, comfortable bool, stressPoints []string) (models.FeedbackRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := newRecord(routeID, comfortable, stressPoints, l.now)
	if err != nil {
		return models.FeedbackRecord{}, err
	}
	l.records = append(l.records, rec)
	return rec.Clone(), nil
}

// ListAll returns a snapshot of all records
func (l *MemoryLedger) ListAll() ([]models.FeedbackRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.FeedbackRecord, len(l.records))
	for i, r := range l.records {
		out[i] = r.Clone()
	}
	return out, nil
}

// Import appends already-stamped records
func (l *MemoryLedger) Import(records []models.FeedbackRecord) (int, error) {
	if err := validateImport(records); err != nil {
		return 0, err
	}

	l.load(records)
	return len(records), nil
}

// load appends records without validation, for data already persisted
func (l *MemoryLedger) load(records []models.FeedbackRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range records {
		l.records = append(l.records, r.Clone())
	}
}

// Len returns the number of records
func (l *MemoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
