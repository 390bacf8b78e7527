package feedback

import (
	"sort"

	"github.com/jengzang/neuronav-backend-go/internal/models"
	"github.com/jengzang/neuronav-backend-go/internal/stats"
)

// topStressPoints caps the per-route stress point list
const topStressPoints = 5

// PointCount is how often a stress point was reported
type PointCount struct {
	Point string `json:"point"`
	Count int    `json:"count"`
}

// RouteSummary aggregates the feedback of one route
type RouteSummary struct {
	RouteID         string       `json:"routeId"`
	Count           int          `json:"count"`
	Comfortable     int          `json:"comfortable"`
	ComfortRatio    float64      `json:"comfortRatio"`
	TopStressPoints []PointCount `json:"topStressPoints"`
}

// Summary aggregates a ledger for later model tuning
type Summary struct {
	Total        int            `json:"total"`
	Comfortable  int            `json:"comfortable"`
	ComfortRatio float64        `json:"comfortRatio"`
	Routes       []RouteSummary `json:"routes"`
}

// Summarize groups records by route, routes sorted by id
func Summarize(records []models.FeedbackRecord) Summary {
	byRoute := make(map[string]*RouteSummary)
	points := make(map[string]map[string]int)

	sum := Summary{Routes: []RouteSummary{}}
	for _, r := range records {
		rs, ok := byRoute[r.RouteID]
		if !ok {
			rs = &RouteSummary{RouteID: r.RouteID}
			byRoute[r.RouteID] = rs
			points[r.RouteID] = make(map[string]int)
		}
		rs.Count++
		sum.Total++
		if r.Comfortable {
			rs.Comfortable++
			sum.Comfortable++
		}
		for _, p := range r.StressPoints {
			points[r.RouteID][p]++
		}
	}

	for id, rs := range byRoute {
		rs.ComfortRatio = stats.Ratio(rs.Comfortable, rs.Count)
		rs.TopStressPoints = rankPoints(points[id])
		sum.Routes = append(sum.Routes, *rs)
	}
	sort.Slice(sum.Routes, func(i, j int) bool {
		return sum.Routes[i].RouteID < sum.Routes[j].RouteID
	})
	sum.ComfortRatio = stats.Ratio(sum.Comfortable, sum.Total)

	return sum
}

func rankPoints(counts map[string]int) []PointCount {
	ranked := make([]PointCount, 0, len(counts))
	for p, c := range counts {
		ranked = append(ranked, PointCount{Point: p, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Point < ranked[j].Point
	})
	if len(ranked) > topStressPoints {
		ranked = ranked[:topStressPoints]
	}
	return ranked
}
