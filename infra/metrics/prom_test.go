package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/causewaylab/crossing/core/metrics"
	"github.com/causewaylab/crossing/core/model"
)

func event() coremetrics.PredictionEvent {
	return coremetrics.PredictionEvent{
		Checkpoint:       model.CheckpointWoodlands,
		Direction:        model.DirectionSGToJB,
		Mode:             model.ModeCar,
		Congestion:       model.CongestionHigh,
		PredictedMinutes: 55,
		ModelUsed:        true,
		Latency:          20 * time.Millisecond,
		Time:             time.Now(),
	}
}

func TestPromSinkRecordsPrediction(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordPrediction(event()))
	require.NoError(t, sink.RecordPrediction(event()))

	got := testutil.ToFloat64(sink.predictions.WithLabelValues("woodlands", "singapore_to_jb", "high", "true"))
	assert.Equal(t, 2.0, got)
}

func TestPromSinkModelState(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordModelLoaded(true))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.modelLoaded))
	require.NoError(t, sink.RecordModelLoaded(false))
	assert.Equal(t, 0.0, testutil.ToFloat64(sink.modelLoaded))
}

func TestPromSinkExternalFetches(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordExternalFetch("weather", true))
	require.NoError(t, sink.RecordExternalFetch("weather", false))
	require.NoError(t, sink.RecordExternalFetch("weather", false))

	assert.Equal(t, 1.0, testutil.ToFloat64(sink.fetches.WithLabelValues("weather", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.fetches.WithLabelValues("weather", "false")))
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	// Re-registering on the same registry reuses the existing collectors.
	_, err = NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
}

func TestMultiSinkForwards(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	multi := NewMultiSink(prom, coremetrics.NopSink{})
	require.NoError(t, multi.RecordPrediction(event()))
	require.NoError(t, multi.RecordModelLoaded(true))
	require.NoError(t, multi.RecordExternalFetch("traffic", true))

	got := testutil.ToFloat64(sinkPredictions(prom, "woodlands", "singapore_to_jb", "high", "true"))
	assert.Equal(t, 1.0, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(prom.modelLoaded))
}

func sinkPredictions(s *PromSink, labels ...string) prometheus.Counter {
	return s.predictions.WithLabelValues(labels...)
}
