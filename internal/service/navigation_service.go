package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/jengzang/neuronav-backend-go/internal/directions"
	"github.com/jengzang/neuronav-backend-go/internal/feedback"
	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/jengzang/neuronav-backend-go/internal/stress"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoProvider is returned by PlanRoutes when no routing provider is configured
var ErrNoProvider = errors.New("routing provider not configured")

// flagThreshold marks a segment attribute as notable on a route
const flagThreshold = 0.7

type scoring struct {
	aggregator *stress.Aggregator
	advisor    *stress.Advisor
}

// NavigationService handles route scoring, reroute advice and feedback
type NavigationService struct {
	provider directions.Provider
	ledger   feedback.Ledger
	modes    []string
	logger   *zap.Logger
	scoring  atomic.Pointer[scoring]
}

// NewNavigationService creates a navigation service. provider may be nil when
// only scoring and feedback are served.
func NewNavigationService(provider directions.Provider, ledger feedback.Ledger, aggregator *stress.Aggregator, advisor *stress.Advisor, modes []string, logger *zap.Logger) *NavigationService {
	if len(modes) == 0 {
		modes = directions.DefaultTravelModes
	}
	s := &NavigationService{
		provider: provider,
		ledger:   ledger,
		modes:    modes,
		logger:   logger,
	}
	s.UpdateScoring(aggregator, advisor)
	return s
}

// UpdateScoring swaps the scoring policy; in-flight requests keep the old one
func (s *NavigationService) UpdateScoring(aggregator *stress.Aggregator, advisor *stress.Advisor) {
	if aggregator == nil {
		aggregator = stress.NewAggregator(nil, stress.Mean())
	}
	if advisor == nil {
		advisor = stress.NewAdvisor(stress.DefaultRerouteEpsilon)
	}
	s.scoring.Store(&scoring{aggregator: aggregator, advisor: advisor})
}

// PlanRoutes fetches routes for every travel mode concurrently, scores them
// and returns them calmest first. A failing mode is logged and skipped.
func (s *NavigationService) PlanRoutes(ctx context.Context, origin, destination string, modes []string) ([]models.Route, error) {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, fmt.Errorf("origin and destination required: %w", models.ErrInvalidInput)
	}
	if s.provider == nil {
		return nil, ErrNoProvider
	}
	if len(modes) == 0 {
		modes = s.modes
	}
	for _, m := range modes {
		if !directions.ValidMode(m) {
			return nil, fmt.Errorf("unknown travel mode %q: %w", m, models.ErrInvalidInput)
		}
	}

	results := make([][]models.Route, len(modes))
	var g errgroup.Group
	for i, mode := range modes {
		i, mode := i, mode
		g.Go(func() error {
			routes, err := s.provider.Routes(ctx, origin, destination, mode)
			if err != nil {
				s.logger.Warn("could not get directions",
					zap.String("mode", mode), zap.Error(err))
				return nil
			}
			results[i] = routes
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sc := s.scoring.Load()
	var routes []models.Route
	for _, batch := range results {
		for _, r := range batch {
			scored, err := scoreRoute(sc.aggregator, r)
			if err != nil {
				s.logger.Warn("skipping unscorable route", zap.String("routeId", r.RouteID), zap.Error(err))
				continue
			}
			routes = append(routes, scored)
		}
	}

	if len(routes) == 0 {
		return nil, directions.ErrNoRoutes
	}

	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].SensoryScore != routes[j].SensoryScore {
			return routes[i].SensoryScore < routes[j].SensoryScore
		}
		return routes[i].RouteID < routes[j].RouteID
	})

	return routes, nil
}

func scoreRoute(agg *stress.Aggregator, r models.Route) (models.Route, error) {
	res, err := agg.Aggregate(r.Segments)
	if err != nil {
		return models.Route{}, err
	}
	r.SensoryScore = res.Score
	r.StressLabel = string(res.Label)
	r.SensoryFlags = sensoryFlags(r.Segments)
	return r, nil
}

func sensoryFlags(segments []models.SegmentAttributes) []string {
	var traffic, turns, highway, busy bool
	for _, seg := range segments {
		traffic = traffic || seg.Traffic >= flagThreshold
		turns = turns || seg.Turns >= flagThreshold
		highway = highway || seg.RoadType == models.RoadHighway
		busy = busy || seg.POIDensity >= flagThreshold
	}

	flags := []string{}
	if traffic {
		flags = append(flags, models.FlagHeavyTraffic)
	}
	if turns {
		flags = append(flags, models.FlagComplexTurns)
	}
	if highway {
		flags = append(flags, models.FlagHighway)
	}
	if busy {
		flags = append(flags, models.FlagBusyArea)
	}
	return flags
}

// ScoreSegments aggregates caller-supplied segments. An empty policy name
// uses the configured policy.
func (s *NavigationService) ScoreSegments(segments []models.SegmentAttributes, policy string) (stress.Result, error) {
	agg := s.scoring.Load().aggregator
	if policy != "" {
		p, err := stress.ParsePolicy(policy)
		if err != nil {
			return stress.Result{}, err
		}
		agg = stress.NewAggregator(agg.Model(), p)
	}
	return agg.Aggregate(segments)
}

// SuggestReroute compares the current route's stress with an alternative
func (s *NavigationService) SuggestReroute(current, alternative float64) stress.Advice {
	return s.scoring.Load().advisor.Advise(current, alternative)
}

// SubmitFeedback records a post-trip comfort report
func (s *NavigationService) SubmitFeedback(routeID string, comfortable bool, stressPoints []string) (models.FeedbackRecord, error) {
	rec, err := s.ledger.Record(routeID, comfortable, stressPoints)
	if err != nil {
		return models.FeedbackRecord{}, err
	}
	s.logger.Info("feedback recorded",
		zap.String("routeId", rec.RouteID),
		zap.Bool("comfortable", rec.Comfortable),
		zap.Int("stressPoints", len(rec.StressPoints)))
	return rec, nil
}

// ListFeedback returns all feedback in submission order
func (s *NavigationService) ListFeedback() ([]models.FeedbackRecord, error) {
	return s.ledger.ListAll()
}

// FeedbackSummary aggregates all feedback per route
func (s *NavigationService) FeedbackSummary() (feedback.Summary, error) {
	records, err := s.ledger.ListAll()
	if err != nil {
		return feedback.Summary{}, err
	}
	return feedback.Summarize(records), nil
}
