package metrics

import coremetrics "github.com/causewaylab/crossing/core/metrics"

// MultiSink fans prediction events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.PredictionSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.PredictionSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPrediction forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordModelLoaded forwards the model state to sinks that support it.
func (m *MultiSink) RecordModelLoaded(loaded bool) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ModelStateRecorder); ok {
			if err := rec.RecordModelLoaded(loaded); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordExternalFetch forwards fetch outcomes to sinks that support it.
func (m *MultiSink) RecordExternalFetch(source string, ok bool) error {
	for _, s := range m.Sinks {
		if rec, okr := s.(coremetrics.ExternalFetchRecorder); okr {
			if err := rec.RecordExternalFetch(source, ok); err != nil {
				return err
			}
		}
	}
	return nil
}
