package feedback

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/klauspost/compress/zstd"
)

// WriteJSONL writes one record per line
func WriteJSONL(w io.Writer, records []models.FeedbackRecord) error {
	enc := json.NewEncoder(w)
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}
	return nil
}

// ReadJSONL reads records written by WriteJSONL. Blank lines are skipped.
// Lines have no length limit.
func ReadJSONL(r io.Reader) ([]models.FeedbackRecord, error) {
	br := bufio.NewReader(r)

	var records []models.FeedbackRecord
	for line := 1; ; line++ {
		data, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read records: %w", err)
		}

		if raw := bytes.TrimSpace(data); len(raw) > 0 {
			var rec models.FeedbackRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			records = append(records, rec)
		}

		if errors.Is(err, io.EOF) {
			return records, nil
		}
	}
}

// Export writes every record of the ledger to w, zstd-compressed if asked
func Export(l Ledger, w io.Writer, compress bool) (int, error) {
	records, err := l.ListAll()
	if err != nil {
		return 0, err
	}

	if !compress {
		return len(records), WriteJSONL(w, records)
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := WriteJSONL(zw, records); err != nil {
		zw.Close()
		return 0, err
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish zstd stream: %w", err)
	}
	return len(records), nil
}

// Import appends every record read from r to the ledger
func Import(l Ledger, r io.Reader, compressed bool) (int, error) {
	if compressed {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return 0, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	records, err := ReadJSONL(r)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return l.Import(records)
}
