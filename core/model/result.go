package model

import "fmt"

// CongestionLevel is an ordered severity tier derived from the ratio of
// predicted to base travel time.
type CongestionLevel int

const (
	CongestionLow CongestionLevel = iota
	CongestionModerate
	CongestionHigh
	CongestionSevere
)

func (c CongestionLevel) String() string {
	switch c {
	case CongestionLow:
		return "low"
	case CongestionModerate:
		return "moderate"
	case CongestionHigh:
		return "high"
	case CongestionSevere:
		return "severe"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so levels serialise as
// their lower-case names in JSON payloads.
func (c CongestionLevel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a level name.
func (c *CongestionLevel) UnmarshalText(b []byte) error {
	switch string(b) {
	case "low":
		*c = CongestionLow
	case "moderate":
		*c = CongestionModerate
	case "high":
		*c = CongestionHigh
	case "severe":
		*c = CongestionSevere
	default:
		return fmt.Errorf("unknown congestion level %q", b)
	}
	return nil
}

// PointEstimate is a travel time estimate in minutes with a confidence
// band. Invariant: 0 <= Lower <= Value <= Upper.
type PointEstimate struct {
	Value float64
	Lower float64
	Upper float64
}

// Valid reports whether the band invariant holds.
func (p PointEstimate) Valid() bool {
	return p.Lower >= 0 && p.Lower <= p.Value && p.Value <= p.Upper
}

// WaitTimeEstimate is a checkpoint queueing delay estimate in minutes.
// Invariant: Min <= Estimated <= Max and Min >= 2.
type WaitTimeEstimate struct {
	Estimated  float64 `json:"estimated_wait_minutes"`
	Min        float64 `json:"min_wait_minutes"`
	Max        float64 `json:"max_wait_minutes"`
	Confidence string  `json:"confidence"`
}

// PredictionResult is the final response of one pipeline invocation.
type PredictionResult struct {
	PredictedMinutes float64            `json:"predicted_time_minutes"`
	LowerMinutes     float64            `json:"lower_bound_minutes"`
	UpperMinutes     float64            `json:"upper_bound_minutes"`
	Congestion       CongestionLevel    `json:"congestion_level"`
	Wait             WaitTimeEstimate   `json:"wait_estimate"`
	Features         map[string]float64 `json:"features_used"`
	Alert            string             `json:"alert,omitempty"`
}

// HistoricalPoint is one synthetic data point of the historical series.
type HistoricalPoint struct {
	Date       string          `json:"date"`
	Hour       int             `json:"hour"`
	AvgMinutes float64         `json:"avg_travel_time"`
	Congestion CongestionLevel `json:"congestion_level"`
}
