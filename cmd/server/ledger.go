package main

import (
	"fmt"

	"github.com/jengzang/neuronav-backend-go/internal/config"
	"github.com/jengzang/neuronav-backend-go/internal/database"
	"github.com/jengzang/neuronav-backend-go/internal/feedback"
	"go.uber.org/zap"
)

// openLedger opens the configured feedback backend and returns its closer
func openLedger(cfg *config.Config, logger *zap.Logger) (feedback.Ledger, func() error, error) {
	switch cfg.Ledger.Backend {
	case feedback.BackendMemory:
		return feedback.NewMemoryLedger(), func() error { return nil }, nil
	case feedback.BackendJSONL:
		l, err := feedback.OpenFileLedger(cfg.Ledger.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("feedback ledger opened", zap.String("backend", "jsonl"), zap.String("path", cfg.Ledger.Path))
		return l, l.Close, nil
	case feedback.BackendSQLite:
		db, err := database.Open(database.Config{Path: cfg.Database.Path}, logger)
		if err != nil {
			return nil, nil, err
		}
		return feedback.NewSQLiteLedger(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}
