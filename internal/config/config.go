package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/neuronav-backend-go/internal/feedback"
	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/jengzang/neuronav-backend-go/internal/stress"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Auth       AuthConfig       `yaml:"auth"`
	Directions DirectionsConfig `yaml:"directions"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string        `yaml:"port"`
	RateLimit       int           `yaml:"rate_limit"` // 每个 IP 每个窗口的最大请求数，0 表示不限制
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`
}

// DatabaseConfig SQLite 配置
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LedgerConfig selects where feedback is kept
type LedgerConfig struct {
	Backend string `yaml:"backend"` // memory, jsonl or sqlite
	Path    string `yaml:"path"`    // jsonl file; sqlite uses Database.Path
}

// AuthConfig verifies bearer tokens on feedback writes
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Required  bool   `yaml:"required"`
}

// DirectionsConfig configures the routing provider
type DirectionsConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	TravelModes []string      `yaml:"travel_modes"`
}

// ScoringConfig holds the tunable policy constants
type ScoringConfig struct {
	Weights           stress.Weights     `yaml:"weights"`
	RoadTypeWeights   map[string]float64 `yaml:"road_type_weights"`
	DefaultRoadWeight float64            `yaml:"default_road_weight"`
	RerouteEpsilon    float64            `yaml:"reroute_epsilon"`
	Aggregation       string             `yaml:"aggregation"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	roads := make(map[string]float64)
	for k, v := range stress.DefaultRoadTypeWeights() {
		roads[string(k)] = v
	}

	return &Config{
		Server: ServerConfig{
			Port:            ":5000",
			RateLimit:       120,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Path: "./data/neuronav.db",
		},
		Ledger: LedgerConfig{
			Backend: feedback.BackendMemory,
			Path:    "./data/feedback.jsonl",
		},
		Auth: AuthConfig{
			JWTSecret: "your-secret-key-change-in-production",
		},
		Directions: DirectionsConfig{
			Timeout: 10 * time.Second,
		},
		Scoring: ScoringConfig{
			Weights:           stress.DefaultWeights,
			RoadTypeWeights:   roads,
			DefaultRoadWeight: stress.DefaultRoadTypeWeight,
			RerouteEpsilon:    stress.DefaultRerouteEpsilon,
			Aggregation:       string(stress.PolicyMean),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load 加载配置: defaults, then the YAML file (if path is set), then environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("AUTH_REQUIRED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid AUTH_REQUIRED %q: %w", v, err)
		}
		c.Auth.Required = b
	}
	if v := os.Getenv("LEDGER_BACKEND"); v != "" {
		c.Ledger.Backend = v
	}
	if v := os.Getenv("LEDGER_PATH"); v != "" {
		c.Ledger.Path = v
	}
	if v := os.Getenv("GOOGLE_MAPS_API_KEY"); v != "" {
		c.Directions.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("REROUTE_EPSILON"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid REROUTE_EPSILON %q: %w", v, err)
		}
		c.Scoring.RerouteEpsilon = f
	}
	if v := os.Getenv("AGGREGATION"); v != "" {
		c.Scoring.Aggregation = v
	}
	return nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	var errs []error

	switch c.Ledger.Backend {
	case feedback.BackendMemory, feedback.BackendJSONL, feedback.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown ledger backend %q", c.Ledger.Backend))
	}
	if c.Ledger.Backend == feedback.BackendJSONL && c.Ledger.Path == "" {
		errs = append(errs, errors.New("ledger path is required for the jsonl backend"))
	}
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth is required but no JWT secret is set"))
	}
	if c.Server.RateLimit > 0 && c.Server.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("rate limit window must be positive"))
	}
	if err := c.Scoring.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the scoring section on its own, for live reloads
func (s ScoringConfig) Validate() error {
	var errs []error

	w := s.Weights
	if w.Traffic < 0 || w.POIDensity < 0 || w.Turns < 0 || w.RoadType < 0 {
		errs = append(errs, errors.New("scoring weights must not be negative"))
	}
	for road, v := range s.RoadTypeWeights {
		if v < 0 {
			errs = append(errs, fmt.Errorf("road type weight for %q must not be negative", road))
		}
	}
	if s.DefaultRoadWeight < 0 {
		errs = append(errs, errors.New("default road weight must not be negative"))
	}
	if s.RerouteEpsilon < 0 {
		errs = append(errs, errors.New("reroute epsilon must not be negative"))
	}
	if _, err := stress.ParsePolicy(s.Aggregation); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Model builds the segment stress model for this section
func (s ScoringConfig) Model() *stress.Model {
	var roads map[models.RoadType]float64
	if s.RoadTypeWeights != nil {
		roads = make(map[models.RoadType]float64, len(s.RoadTypeWeights))
		for k, v := range s.RoadTypeWeights {
			roads[models.RoadType(k)] = v
		}
	}
	return stress.NewModel(s.Weights, roads, s.DefaultRoadWeight)
}

// Aggregator builds the route aggregator for this section
func (s ScoringConfig) Aggregator() (*stress.Aggregator, error) {
	policy, err := stress.ParsePolicy(s.Aggregation)
	if err != nil {
		return nil, err
	}
	return stress.NewAggregator(s.Model(), policy), nil
}

// Advisor builds the reroute advisor for this section
func (s ScoringConfig) Advisor() *stress.Advisor {
	return stress.NewAdvisor(s.RerouteEpsilon)
}
