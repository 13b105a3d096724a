package metrics

import (
	"time"

	"github.com/causewaylab/crossing/core/model"
)

// PredictionEvent is one completed pipeline invocation to be recorded.
type PredictionEvent struct {
	Checkpoint       model.Checkpoint
	Direction        model.Direction
	Mode             model.Mode
	Congestion       model.CongestionLevel
	PredictedMinutes float64
	ModelUsed        bool
	TrafficAdjusted  bool
	Latency          time.Duration
	Time             time.Time
}

// PredictionSink records prediction events for observability purposes.
type PredictionSink interface {
	RecordPrediction(ev PredictionEvent) error
}

// ModelStateRecorder records whether a trained model is loaded. Sinks that
// support it are detected by interface assertion.
type ModelStateRecorder interface {
	RecordModelLoaded(loaded bool) error
}

// ExternalFetchRecorder records the outcome of external collaborator calls
// (weather, live traffic).
type ExternalFetchRecorder interface {
	RecordExternalFetch(source string, ok bool) error
}

// NopSink implements all recorder interfaces with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error { return nil }
func (NopSink) RecordModelLoaded(bool) error           { return nil }
func (NopSink) RecordExternalFetch(string, bool) error { return nil }
