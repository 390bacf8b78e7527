package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatchAppliesScoringChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeConfig(t, "scoring:\n  reroute_epsilon: 0.05\n")

	ctx, cancel := context.WithCancel(context.Background())
	applied := make(chan ScoringConfig, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zap.NewNop(), func(s ScoringConfig) {
			select {
			case applied <- s:
			default:
			}
		})
	}()

	// give the watcher time to register before writing
	var got ScoringConfig
	deadline := time.After(5 * time.Second)
	for got.RerouteEpsilon != 0.25 {
		require.NoError(t, os.WriteFile(path, []byte("scoring:\n  reroute_epsilon: 0.25\n"), 0o644))
		select {
		case got = <-applied:
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("config change was not applied")
		}
	}

	cancel()
	require.NoError(t, <-done)
}
