package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/jengzang/neuronav-backend-go/internal/spatial"
	"go.uber.org/zap"
)

// DefaultGoogleBaseURL is the Google Maps web services root
const DefaultGoogleBaseURL = "https://maps.googleapis.com/maps/api"

// GoogleClient queries the Google Directions API
type GoogleClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

// NewGoogleClient creates a client. An empty baseURL uses the public API.
func NewGoogleClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *GoogleClient {
	if baseURL == "" {
		baseURL = DefaultGoogleBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		now:     time.Now,
	}
}

type textValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type encodedPolyline struct {
	Points string `json:"points"`
}

type googleStep struct {
	Distance         textValue       `json:"distance"`
	Duration         textValue       `json:"duration"`
	HTMLInstructions string          `json:"html_instructions"`
	Maneuver         string          `json:"maneuver"`
	Polyline         encodedPolyline `json:"polyline"`
}

type googleLeg struct {
	Distance          textValue    `json:"distance"`
	Duration          textValue    `json:"duration"`
	DurationInTraffic *textValue   `json:"duration_in_traffic"`
	Steps             []googleStep `json:"steps"`
}

type googleRoute struct {
	Summary          string          `json:"summary"`
	Legs             []googleLeg     `json:"legs"`
	OverviewPolyline encodedPolyline `json:"overview_polyline"`
}

type googleResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Routes       []googleRoute `json:"routes"`
}

// Routes fetches alternatives for one travel mode
func (c *GoogleClient) Routes(ctx context.Context, origin, destination, mode string) ([]models.Route, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", mode)
	params.Set("alternatives", "true")
	params.Set("key", c.apiKey)
	if mode == ModeDriving {
		// duration_in_traffic is only returned with a departure time
		params.Set("departure_time", fmt.Sprintf("%d", c.now().Unix()))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/directions/json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions request failed: http %d", resp.StatusCode)
	}

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, ErrNoRoutes
	default:
		return nil, fmt.Errorf("google maps error: %s %s", body.Status, body.ErrorMessage)
	}

	routes := make([]models.Route, 0, len(body.Routes))
	for i, gr := range body.Routes {
		route, err := convertRoute(gr, mode, i)
		if err != nil {
			c.logger.Warn("skipping undecodable route",
				zap.String("mode", mode), zap.Int("index", i), zap.Error(err))
			continue
		}
		routes = append(routes, route)
	}

	c.logger.Debug("directions fetched", zap.String("mode", mode), zap.Int("routes", len(routes)))
	return routes, nil
}

func convertRoute(gr googleRoute, mode string, index int) (models.Route, error) {
	path, err := spatial.DecodePolyline(gr.OverviewPolyline.Points)
	if err != nil {
		return models.Route{}, err
	}

	summary := gr.Summary
	if summary == "" {
		summary = "Suggested Route"
	}

	route := models.Route{
		RouteID:      fmt.Sprintf("%s-%d", mode, index),
		Summary:      summary,
		TravelMode:   mode,
		Path:         path,
		SensoryFlags: []string{},
	}

	if len(gr.Legs) > 0 {
		route.DistanceText = gr.Legs[0].Distance.Text
		route.DurationText = gr.Legs[0].Duration.Text
	}

	for _, leg := range gr.Legs {
		var inTraffic float64
		if leg.DurationInTraffic != nil {
			inTraffic = leg.DurationInTraffic.Value
		}
		traffic := TrafficFromDurations(leg.Duration.Value, inTraffic)
		for _, step := range leg.Steps {
			seg, err := stepSegment(step, traffic)
			if err != nil {
				return models.Route{}, err
			}
			route.Segments = append(route.Segments, seg)
		}
	}

	return route, nil
}

func stepSegment(step googleStep, traffic float64) (models.SegmentAttributes, error) {
	var stepPath []models.LatLng
	if step.Polyline.Points != "" {
		p, err := spatial.DecodePolyline(step.Polyline.Points)
		if err != nil {
			return models.SegmentAttributes{}, err
		}
		stepPath = p
	}

	meters := step.Distance.Value
	if meters <= 0 {
		meters = spatial.PathLength(stepPath)
	}

	turns := TurnComplexity(step.Maneuver)
	if step.Maneuver == "" {
		turns = CurveComplexity(spatial.HeadingChange(stepPath))
	}

	return models.SegmentAttributes{
		Traffic:        traffic,
		POIDensity:     DensityFromStepLength(meters),
		Turns:          turns,
		RoadType:       ClassifyRoad(step.HTMLInstructions),
		DistanceMeters: meters,
		Path:           stepPath,
	}, nil
}
