package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/neuronav-backend-go/internal/directions"
	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/jengzang/neuronav-backend-go/internal/service"
	"github.com/jengzang/neuronav-backend-go/pkg/response"
)

// NavigationHandler handles HTTP requests for route scoring and feedback
type NavigationHandler struct {
	service *service.NavigationService
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(service *service.NavigationService) *NavigationHandler {
	return &NavigationHandler{service: service}
}

type routesRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	TravelModes []string `json:"travelModes"`
}

type scoreRequest struct {
	Segments    []models.SegmentAttributes `json:"segments"`
	Aggregation string                     `json:"aggregation"`
}

type rerouteRequest struct {
	CurrentRouteStress     *float64 `json:"currentRouteStress" binding:"required"`
	AlternativeRouteStress *float64 `json:"alternativeRouteStress" binding:"required"`
}

// maxFeedbackBodyBytes bounds a feedback submission
const maxFeedbackBodyBytes = 64 << 10

type feedbackRequest struct {
	RouteID      string   `json:"routeId"`
	Comfortable  *bool    `json:"comfortable" binding:"required"`
	StressPoints []string `json:"stressPoints"`
}

// PlanRoutes handles POST /api/navigation/routes
func (h *NavigationHandler) PlanRoutes(c *gin.Context) {
	var req routesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Origin == "" || req.Destination == "" {
		response.BadRequest(c, "Origin and destination required")
		return
	}

	routes, err := h.service.PlanRoutes(c.Request.Context(), req.Origin, req.Destination, req.TravelModes)
	if err != nil {
		h.fail(c, err, "Failed to fetch routes")
		return
	}

	response.Success(c, gin.H{"routes": routes})
}

// ScoreRoute handles POST /api/navigation/score
func (h *NavigationHandler) ScoreRoute(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.ScoreSegments(req.Segments, req.Aggregation)
	if err != nil {
		h.fail(c, err, "Failed to score route")
		return
	}

	response.Success(c, result)
}

// Reroute handles POST /api/navigation/reroute
func (h *NavigationHandler) Reroute(c *gin.Context) {
	var req rerouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "currentRouteStress and alternativeRouteStress required")
		return
	}

	response.Success(c, h.service.SuggestReroute(*req.CurrentRouteStress, *req.AlternativeRouteStress))
}

// SubmitFeedback handles POST /api/navigation/feedback
func (h *NavigationHandler) SubmitFeedback(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFeedbackBodyBytes)

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "Feedback body too large")
			return
		}
		response.BadRequest(c, "routeId and comfortable required")
		return
	}

	rec, err := h.service.SubmitFeedback(req.RouteID, *req.Comfortable, req.StressPoints)
	if err != nil {
		h.fail(c, err, "Failed to save feedback")
		return
	}

	response.Success(c, gin.H{"status": "saved", "record": rec})
}

// ListFeedback handles GET /api/navigation/feedback
func (h *NavigationHandler) ListFeedback(c *gin.Context) {
	records, err := h.service.ListFeedback()
	if err != nil {
		h.fail(c, err, "Failed to list feedback")
		return
	}

	response.Success(c, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// FeedbackSummary handles GET /api/navigation/feedback/summary
func (h *NavigationHandler) FeedbackSummary(c *gin.Context) {
	summary, err := h.service.FeedbackSummary()
	if err != nil {
		h.fail(c, err, "Failed to summarize feedback")
		return
	}

	response.Success(c, summary)
}

// fail maps service errors to HTTP statuses
func (h *NavigationHandler) fail(c *gin.Context, err error, message string) {
	c.Error(err)

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	case errors.Is(err, directions.ErrNoRoutes):
		response.NotFound(c, "No routes found")
	case errors.Is(err, service.ErrNoProvider):
		response.Error(c, http.StatusServiceUnavailable, message)
	default:
		response.InternalError(c, message)
	}
}
