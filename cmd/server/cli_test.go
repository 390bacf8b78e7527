package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jengzang/neuronav-backend-go/internal/config"
	"github.com/jengzang/neuronav-backend-go/internal/feedback"
	"github.com/jengzang/neuronav-backend-go/internal/stress"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.Default()
	t.Cleanup(func() {
		cfg = nil
		useZstd = false
		scoreAggregation = ""
	})
}

func TestScoreCmd(t *testing.T) {
	setup(t)

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(`[
		{"traffic":1,"poiDensity":1,"turns":1,"roadType":"highway"},
		{"traffic":0,"poiDensity":0,"turns":0,"roadType":"residential"}
	]`))
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runScore(cmd, nil))

	var res stress.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, []float64{1, 0.045}, res.SegmentScores)
	assert.InDelta(t, 0.5225, res.Score, 1e-12)
	assert.Equal(t, stress.Moderate, res.Label)
}

func TestScoreCmdRejectsEmptyRoute(t *testing.T) {
	setup(t)

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(`[]`))
	cmd.SetOut(&bytes.Buffer{})

	assert.Error(t, runScore(cmd, nil))
}

func TestScoreCmdUnknownAggregation(t *testing.T) {
	setup(t)
	scoreAggregation = "median"

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(`[{"roadType":"highway"}]`))
	cmd.SetOut(&bytes.Buffer{})

	assert.Error(t, runScore(cmd, nil))
}

func TestFeedbackExportImport(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		setup(t)
		dir := t.TempDir()
		cfg.Ledger.Backend = feedback.BackendJSONL
		cfg.Ledger.Path = filepath.Join(dir, "source.jsonl")
		useZstd = compressed

		src, closeSrc, err := openLedger(cfg, logger)
		require.NoError(t, err)
		_, err = src.Record("driving-0", false, []string{"horns"})
		require.NoError(t, err)
		_, err = src.Record("walking-0", true, nil)
		require.NoError(t, err)
		want, err := src.ListAll()
		require.NoError(t, err)
		require.NoError(t, closeSrc())

		dump := filepath.Join(dir, "dump")
		require.NoError(t, runExport(&cobra.Command{}, []string{dump}))

		cfg.Ledger.Backend = feedback.BackendSQLite
		cfg.Database.Path = filepath.Join(dir, "target.db")
		require.NoError(t, runImport(&cobra.Command{}, []string{dump}))

		dst, closeDst, err := openLedger(cfg, logger)
		require.NoError(t, err)
		got, err := dst.ListAll()
		require.NoError(t, err)
		require.NoError(t, closeDst())

		assert.Equal(t, want, got, "zstd=%v", compressed)
	}
}

func TestBuildService(t *testing.T) {
	setup(t)

	svc, closeLedger, err := buildService(cfg, logger)
	require.NoError(t, err)
	defer closeLedger()

	advice := svc.SuggestReroute(0.8, 0.5)
	assert.True(t, advice.SuggestReroute)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	_, err = svc.PlanRoutes(ctx, "A", "B", nil)
	assert.Error(t, err)
}

func TestFeedbackCmdsRefuseMemoryLedger(t *testing.T) {
	setup(t)
	require.Equal(t, feedback.BackendMemory, cfg.Ledger.Backend)

	dump := filepath.Join(t.TempDir(), "dump.jsonl")
	line := `{"routeId":"driving-0","comfortable":true,"stressPoints":[],"time":1700000000000}` + "\n"
	require.NoError(t, os.WriteFile(dump, []byte(line), 0o644))

	assert.ErrorIs(t, runImport(&cobra.Command{}, []string{dump}), errVolatileLedger)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	assert.ErrorIs(t, runExport(cmd, []string{"-"}), errVolatileLedger)
	assert.Empty(t, out.String())
}
