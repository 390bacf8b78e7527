package feedback

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jengzang/neuronav-backend-go/internal/models"
)

// FileLedger appends one JSON object per line to a file and serves reads
// from memory. Existing lines are loaded on open.
type FileLedger struct {
	mu      sync.Mutex
	file    *os.File
	w       *bufio.Writer
	records *MemoryLedger
	now     Clock
	size    int64 // end of the last fully written line
}

// OpenFileLedger opens (or creates) a JSONL ledger at path
func OpenFileLedger(path string) (*FileLedger, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	existing, err := loadJSONLFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat ledger file: %w", err)
	}

	mem := NewMemoryLedger()
	mem.load(existing)

	return &FileLedger{
		file:    f,
		w:       bufio.NewWriter(f),
		records: mem,
		now:     time.Now,
		size:    info.Size(),
	}, nil
}

func loadJSONLFile(path string) ([]models.FeedbackRecord, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()

	records, err := ReadJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger %s: %w", path, err)
	}
	return records, nil
}

// Record appends a record to the file, then makes it visible to readers
func (l *FileLedger) Record(routeID string, comfortable bool, stressPoints []string) (models.FeedbackRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := newRecord(routeID, comfortable, stressPoints, l.now)
	if err != nil {
		return models.FeedbackRecord{}, err
	}
	if err := l.append([]models.FeedbackRecord{rec}); err != nil {
		return models.FeedbackRecord{}, err
	}
	return rec.Clone(), nil
}

// ListAll returns all records in append order
func (l *FileLedger) ListAll() ([]models.FeedbackRecord, error) {
	return l.records.ListAll()
}

// Import appends already-stamped records
func (l *FileLedger) Import(records []models.FeedbackRecord) (int, error) {
	if err := validateImport(records); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.append(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// append writes and syncs the lines before the records become visible.
// A failed write is rolled back to the last complete line.
func (l *FileLedger) append(records []models.FeedbackRecord) error {
	var buf bytes.Buffer
	if err := WriteJSONL(&buf, records); err != nil {
		return err
	}

	l.w.Write(buf.Bytes())
	if err := l.w.Flush(); err != nil {
		return l.rollback(fmt.Errorf("failed to write feedback: %w", err))
	}
	if err := l.file.Sync(); err != nil {
		return l.rollback(fmt.Errorf("failed to sync feedback: %w", err))
	}

	l.size += int64(buf.Len())
	l.records.load(records)
	return nil
}

func (l *FileLedger) rollback(cause error) error {
	l.w.Reset(l.file)
	if err := l.file.Truncate(l.size); err != nil {
		return fmt.Errorf("%w (truncate failed: %v)", cause, err)
	}
	return cause
}

// Close flushes and closes the file
func (l *FileLedger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.w.Flush(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
