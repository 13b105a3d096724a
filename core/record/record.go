// Package record defines the persistence collaborator for submitted
// crossings and traffic snapshots. The prediction core only writes to the
// store; it never reads it to make a prediction.
package record

import (
	"context"
	"time"
)

// Crossing is a completed border crossing submitted by a user or scraper.
type Crossing struct {
	ID                 string    `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	Checkpoint         string    `json:"checkpoint"`
	Origin             string    `json:"origin"`
	Destination        string    `json:"destination"`
	Mode               string    `json:"mode"`
	TravelTimeMinutes  float64   `json:"travel_time_minutes"`
	WaitTimeMinutes    float64   `json:"wait_time_minutes"`
	TotalTimeMinutes   float64   `json:"total_time_minutes"`
	TempC              float64   `json:"temperature_c"`
	RainMM             float64   `json:"rain_mm"`
	IsHoliday          bool      `json:"is_holiday"`
	DayOfWeek          int       `json:"day_of_week"`
	HourOfDay          int       `json:"hour_of_day"`
	CongestionLevel    string    `json:"congestion_level"`
	PredictedMinutes   float64   `json:"predicted_time_minutes"`
	PredictionErrorMin float64   `json:"prediction_error_minutes"`
}

// TrafficSnapshot is a point-in-time live traffic reading.
type TrafficSnapshot struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Checkpoint      string    `json:"checkpoint"`
	Direction       string    `json:"direction"`
	DurationMinutes float64   `json:"traffic_duration_minutes"`
	Multiplier      float64   `json:"congestion_multiplier"`
	Source          string    `json:"source"`
}

// Query filters crossing lookups.
type Query struct {
	Checkpoint string
	Since      time.Time
	Limit      int
}

// HourlyAverage aggregates stored crossings per hour of day.
type HourlyAverage struct {
	HourOfDay   int     `json:"hour_of_day"`
	AvgMinutes  float64 `json:"avg_time"`
	AvgWait     float64 `json:"avg_wait"`
	SampleCount int     `json:"sample_count"`
}

// Store persists crossings and snapshots.
type Store interface {
	AddCrossing(ctx context.Context, c Crossing) error
	AddSnapshot(ctx context.Context, s TrafficSnapshot) error
	RecentCrossings(ctx context.Context, q Query) ([]Crossing, error)
	AveragesByHour(ctx context.Context, checkpoint string) ([]HourlyAverage, error)
	Close() error
}
