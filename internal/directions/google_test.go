package directions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const okResponse = `{
  "status": "OK",
  "routes": [
    {
      "summary": "I-280 S",
      "overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@"},
      "legs": [
        {
          "distance": {"text": "12.3 km", "value": 12300},
          "duration": {"text": "15 mins", "value": 900},
          "duration_in_traffic": {"text": "22 mins", "value": 1350},
          "steps": [
            {
              "distance": {"text": "0.2 km", "value": 200},
              "html_instructions": "Head north on <b>Oak Street</b>",
              "polyline": {"points": "_p~iF~ps|U_ulLnnqC"}
            },
            {
              "distance": {"text": "12.1 km", "value": 12100},
              "html_instructions": "Merge onto <b>I-280 S</b>",
              "maneuver": "ramp-right",
              "polyline": {"points": "_p~iF~ps|U_ulLnnqC"}
            }
          ]
        }
      ]
    },
    {
      "summary": "",
      "overview_polyline": {"points": "_p~iF~ps|U"},
      "legs": [{"distance": {"text": "9 km"}, "duration": {"text": "30 mins", "value": 1800}, "steps": []}]
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *GoogleClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewGoogleClient("test-key", srv.URL, time.Second, zap.NewNop())
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestGoogleClientRoutes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/directions/json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "A", q.Get("origin"))
		assert.Equal(t, "B", q.Get("destination"))
		assert.Equal(t, "driving", q.Get("mode"))
		assert.Equal(t, "true", q.Get("alternatives"))
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "1700000000", q.Get("departure_time"))
		fmt.Fprint(w, okResponse)
	})

	routes, err := c.Routes(context.Background(), "A", "B", ModeDriving)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	r := routes[0]
	assert.Equal(t, "driving-0", r.RouteID)
	assert.Equal(t, "I-280 S", r.Summary)
	assert.Equal(t, "12.3 km", r.DistanceText)
	assert.Equal(t, "15 mins", r.DurationText)
	assert.Len(t, r.Path, 3)
	require.Len(t, r.Segments, 2)

	first := r.Segments[0]
	assert.InDelta(t, 0.5, first.Traffic, 1e-12)
	assert.InDelta(t, 0.8, first.POIDensity, 1e-12)
	assert.Equal(t, 0.0, first.Turns)
	assert.Equal(t, models.RoadResidential, first.RoadType)
	assert.Equal(t, 200.0, first.DistanceMeters)

	second := r.Segments[1]
	assert.Equal(t, 0.4, second.Turns)
	assert.Equal(t, models.RoadHighway, second.RoadType)
	assert.Equal(t, 0.0, second.POIDensity)

	assert.Equal(t, "Suggested Route", routes[1].Summary)
	assert.Empty(t, routes[1].Segments)
}

func TestGoogleClientWalkingHasNoDepartureTime(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("departure_time"))
		fmt.Fprint(w, `{"status":"OK","routes":[]}`)
	})

	routes, err := c.Routes(context.Background(), "A", "B", ModeWalking)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestGoogleClientZeroResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","routes":[]}`)
	})

	_, err := c.Routes(context.Background(), "A", "B", ModeTransit)
	assert.ErrorIs(t, err, ErrNoRoutes)
}

func TestGoogleClientErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","error_message":"bad key"}`)
	})

	_, err := c.Routes(context.Background(), "A", "B", ModeDriving)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestGoogleClientHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Routes(context.Background(), "A", "B", ModeDriving)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGoogleClientSkipsBrokenPolyline(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","routes":[{"overview_polyline":{"points":"_p~iF~ps|U_"},"legs":[]}]}`)
	})

	routes, err := c.Routes(context.Background(), "A", "B", ModeDriving)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestGoogleClientCurvyStepWithoutManeuver(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","routes":[{
			"overview_polyline":{"points":"_p~iF~ps|U"},
			"legs":[{"duration":{"value":60},"steps":[
				{"distance":{"value":0},"html_instructions":"Continue on Old Road",
				 "polyline":{"points":"_p~iF~ps|U_ulLnnqC_mqNvxq`+"`"+`@"}}
			]}]}]}`)
	})

	routes, err := c.Routes(context.Background(), "A", "B", ModeWalking)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	require.Len(t, routes[0].Segments, 1)

	seg := routes[0].Segments[0]
	assert.Greater(t, seg.Turns, 0.0)
	assert.Less(t, seg.Turns, 1.0)
	assert.Greater(t, seg.DistanceMeters, 500000.0)
	assert.Equal(t, models.RoadArterial, seg.RoadType)
}
