package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/neuronav-backend-go/internal/api"
	"github.com/jengzang/neuronav-backend-go/internal/config"
	"github.com/jengzang/neuronav-backend-go/internal/directions"
	"github.com/jengzang/neuronav-backend-go/internal/handler"
	"github.com/jengzang/neuronav-backend-go/internal/middleware"
	"github.com/jengzang/neuronav-backend-go/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeLedger, err := buildService(cfg, logger)
	if err != nil {
		return err
	}
	defer closeLedger()

	if configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, logger, func(sc config.ScoringConfig) {
				agg, err := sc.Aggregator()
				if err != nil {
					logger.Warn("ignoring scoring update", zap.Error(err))
					return
				}
				svc.UpdateScoring(agg, sc.Advisor())
			})
			if err != nil {
				logger.Warn("config reload disabled", zap.Error(err))
			}
		}()
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitWindow)
		defer limiter.Stop()
	}

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.SetupRouter(cfg, handler.NewNavigationHandler(svc), limiter, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// buildService wires the ledger, the routing provider and the scoring policy.
// The returned func releases the ledger.
func buildService(cfg *config.Config, logger *zap.Logger) (*service.NavigationService, func() error, error) {
	ledger, closeLedger, err := openLedger(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	agg, err := cfg.Scoring.Aggregator()
	if err != nil {
		closeLedger()
		return nil, nil, err
	}

	var provider directions.Provider
	if cfg.Directions.APIKey != "" {
		provider = directions.NewGoogleClient(cfg.Directions.APIKey, cfg.Directions.BaseURL, cfg.Directions.Timeout, logger)
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, route planning disabled")
	}

	svc := service.NewNavigationService(provider, ledger, agg, cfg.Scoring.Advisor(), cfg.Directions.TravelModes, logger)
	return svc, closeLedger, nil
}
