package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/causewaylab/crossing/core/metrics"
)

// PromSink records prediction events in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	minutes     *prometheus.HistogramVec
	latency     prometheus.Histogram
	fetches     *prometheus.CounterVec
	modelLoaded prometheus.Gauge
}

// NewPromSink registers prediction metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crossing_predictions_total",
		Help: "Total number of travel time predictions",
	}, []string{"checkpoint", "direction", "congestion", "model_used"})
	minutes := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crossing_predicted_minutes",
		Help:    "Predicted total crossing time in minutes",
		Buckets: []float64{15, 30, 45, 60, 90, 120, 180, 240},
	}, []string{"checkpoint", "direction"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "crossing_pipeline_latency_seconds",
		Help:    "Time spent in the prediction pipeline",
		Buckets: prometheus.DefBuckets,
	})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crossing_external_fetches_total",
		Help: "External collaborator fetch outcomes",
	}, []string{"source", "ok"})
	modelLoaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "crossing_model_loaded",
		Help: "Whether a trained travel time model is loaded",
	})

	collectors := map[string]prometheus.Collector{
		"predictions": predictions,
		"minutes":     minutes,
		"latency":     latency,
		"fetches":     fetches,
		"modelLoaded": modelLoaded,
	}
	for name, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch name {
			case "predictions":
				predictions = are.ExistingCollector.(*prometheus.CounterVec)
			case "minutes":
				minutes = are.ExistingCollector.(*prometheus.HistogramVec)
			case "latency":
				latency = are.ExistingCollector.(prometheus.Histogram)
			case "fetches":
				fetches = are.ExistingCollector.(*prometheus.CounterVec)
			case "modelLoaded":
				modelLoaded = are.ExistingCollector.(prometheus.Gauge)
			}
		}
	}

	return &PromSink{
		predictions: predictions,
		minutes:     minutes,
		latency:     latency,
		fetches:     fetches,
		modelLoaded: modelLoaded,
	}, nil
}

// RecordPrediction increments the counters for one pipeline invocation.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	s.predictions.WithLabelValues(
		ev.Checkpoint.String(),
		ev.Direction.String(),
		ev.Congestion.String(),
		strconv.FormatBool(ev.ModelUsed),
	).Inc()
	s.minutes.WithLabelValues(ev.Checkpoint.String(), ev.Direction.String()).Observe(ev.PredictedMinutes)
	s.latency.Observe(ev.Latency.Seconds())
	return nil
}

// RecordModelLoaded sets the model state gauge.
func (s *PromSink) RecordModelLoaded(loaded bool) error {
	if loaded {
		s.modelLoaded.Set(1)
	} else {
		s.modelLoaded.Set(0)
	}
	return nil
}

// RecordExternalFetch counts collaborator fetch outcomes.
func (s *PromSink) RecordExternalFetch(source string, ok bool) error {
	s.fetches.WithLabelValues(source, strconv.FormatBool(ok)).Inc()
	return nil
}
