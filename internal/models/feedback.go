package models

import (
	"encoding/json"
	"time"
)

// FeedbackRecord is a user-submitted post-trip comfort report
type FeedbackRecord struct {
	RouteID      string    `json:"routeId"`
	Comfortable  bool      `json:"comfortable"`
	StressPoints []string  `json:"stressPoints"`
	Time         time.Time `json:"time"`
}

// feedbackWire is the line format: time as epoch milliseconds
type feedbackWire struct {
	RouteID      string   `json:"routeId"`
	Comfortable  bool     `json:"comfortable"`
	StressPoints []string `json:"stressPoints"`
	Time         int64    `json:"time"`
}

// MarshalJSON encodes the record with its time in milliseconds since epoch
func (r FeedbackRecord) MarshalJSON() ([]byte, error) {
	points := r.StressPoints
	if points == nil {
		points = []string{}
	}
	return json.Marshal(feedbackWire{
		RouteID:      r.RouteID,
		Comfortable:  r.Comfortable,
		StressPoints: points,
		Time:         r.Time.UnixMilli(),
	})
}

// UnmarshalJSON decodes the millisecond wire format
func (r *FeedbackRecord) UnmarshalJSON(data []byte) error {
	var w feedbackWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.RouteID = w.RouteID
	r.Comfortable = w.Comfortable
	r.StressPoints = w.StressPoints
	if r.StressPoints == nil {
		r.StressPoints = []string{}
	}
	r.Time = time.UnixMilli(w.Time).UTC()
	return nil
}

// Clone returns a copy that shares no memory with r
func (r FeedbackRecord) Clone() FeedbackRecord {
	points := make([]string, len(r.StressPoints))
	copy(points, r.StressPoints)
	r.StressPoints = points
	return r
}
