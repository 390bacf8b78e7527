package main

import (
	"errors"
	"io"
	"os"

	"github.com/jengzang/neuronav-backend-go/internal/feedback"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var useZstd bool

// errVolatileLedger is returned when export or import would run against the
// in-process ledger, which does not outlive the command
var errVolatileLedger = errors.New("feedback export/import needs a persistent ledger: set ledger.backend (or LEDGER_BACKEND) to jsonl or sqlite")

// openPersistentLedger opens the configured ledger, refusing the memory backend
func openPersistentLedger() (feedback.Ledger, func() error, error) {
	if cfg.Ledger.Backend == feedback.BackendMemory {
		return nil, nil, errVolatileLedger
	}
	return openLedger(cfg, logger)
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Move feedback records between the ledger and JSONL files",
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write every feedback record to FILE as JSON lines (- for stdout)",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Append the JSON-lines records in FILE to the ledger (- for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ledger, closeLedger, err := openPersistentLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	var out io.Writer = cmd.OutOrStdout()
	if args[0] != "-" {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	n, err := feedback.Export(ledger, out, useZstd)
	if err != nil {
		return err
	}
	logger.Info("feedback exported", zap.Int("records", n), zap.String("file", args[0]), zap.Bool("zstd", useZstd))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ledger, closeLedger, err := openPersistentLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	n, err := feedback.Import(ledger, in, useZstd)
	if err != nil {
		return err
	}
	logger.Info("feedback imported", zap.Int("records", n), zap.String("file", args[0]), zap.Bool("zstd", useZstd))
	return nil
}
