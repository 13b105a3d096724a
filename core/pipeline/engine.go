package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/causewaylab/crossing/core/congestion"
	"github.com/causewaylab/crossing/core/feature"
	"github.com/causewaylab/crossing/core/logger"
	coremetrics "github.com/causewaylab/crossing/core/metrics"
	"github.com/causewaylab/crossing/core/model"
	"github.com/causewaylab/crossing/core/monitoring"
	"github.com/causewaylab/crossing/core/prediction"
	"github.com/causewaylab/crossing/core/traffic"
	"github.com/causewaylab/crossing/core/wait"
	"github.com/causewaylab/crossing/internal/eventbus"
)

// Engine runs the prediction pipeline. All dependencies are injected; the
// engine holds no per-request state and is safe for concurrent use.
type Engine struct {
	features  *feature.Engineer
	predictor *prediction.Predictor
	wait      *wait.Estimator
	live      traffic.LiveSource
	sink      coremetrics.PredictionSink
	bus       *eventbus.Bus[coremetrics.PredictionEvent]
	mon       monitoring.Monitor
	log       logger.Logger
	now       func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithLiveTraffic wires the optional same-day traffic source.
func WithLiveTraffic(src traffic.LiveSource) Option {
	return func(e *Engine) { e.live = src }
}

// WithMetrics wires a prediction sink.
func WithMetrics(sink coremetrics.PredictionSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithEventBus publishes prediction events on the bus.
func WithEventBus(bus *eventbus.Bus[coremetrics.PredictionEvent]) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithMonitor wires an error monitor.
func WithMonitor(mon monitoring.Monitor) Option {
	return func(e *Engine) { e.mon = mon }
}

// WithClock overrides the wall clock, used by tests and the simulator.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an Engine. predictor may be unloaded; the engine then serves
// historical-baseline fallback predictions.
func New(features *feature.Engineer, predictor *prediction.Predictor, estimator *wait.Estimator, log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		features:  features,
		predictor: predictor,
		wait:      estimator,
		sink:      coremetrics.NopSink{},
		mon:       monitoring.NopMonitor{},
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ModelLoaded reports whether a trained model backs this engine.
func (e *Engine) ModelLoaded() bool { return e.predictor.Loaded() }

// Predict runs the full pipeline for one request. The caller receives
// either a complete result or a single categorised error, never a
// half-populated result.
func (e *Engine) Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResult, error) {
	if err := req.Validate(); err != nil {
		return model.PredictionResult{}, &ValidationError{Err: err}
	}
	start := e.now()

	features := e.features.Engineer(ctx, req)

	est, modelUsed, err := e.estimate(features)
	if err != nil {
		e.mon.CaptureException(err, map[string]string{"stage": "model"})
		return model.PredictionResult{}, &FailedError{Err: err}
	}

	est, adjusted := e.adjustForTraffic(ctx, req, est)

	anyHoliday := features.Get("is_any_holiday", 0) == 1
	waitEst := e.wait.Estimate(req.Checkpoint, req.Direction(), req.Hour, req.IsWeekend(), anyHoliday)

	// Wait spread widens the bounds asymmetrically; it is not rescaled.
	est.Value += waitEst.Estimated
	est.Lower += waitEst.Min
	est.Upper += waitEst.Max

	// Congestion is classified on the final wait-adjusted value.
	level := congestion.Classify(est.Value, congestion.BaseMinutes)
	alert := congestion.ComposeAlert(level, features.Get("is_peak_hour", 0) == 1, anyHoliday)

	if !est.Valid() {
		err := fmt.Errorf("estimate bounds violated: lower=%.2f value=%.2f upper=%.2f", est.Lower, est.Value, est.Upper)
		e.mon.CaptureException(err, map[string]string{"stage": "bounds"})
		return model.PredictionResult{}, &FailedError{Err: err}
	}

	res := model.PredictionResult{
		PredictedMinutes: est.Value,
		LowerMinutes:     est.Lower,
		UpperMinutes:     est.Upper,
		Congestion:       level,
		Wait:             waitEst,
		Features:         features,
		Alert:            alert,
	}
	e.record(req, res, modelUsed, adjusted, e.now().Sub(start))
	return res, nil
}

// estimate produces the model point estimate, or the historical-baseline
// fallback with a ±15% band when no model is loaded.
func (e *Engine) estimate(features feature.Vector) (model.PointEstimate, bool, error) {
	if !e.predictor.Loaded() {
		e.log.Warnf("model not loaded, using historical baseline fallback")
		baseline := features.Get("historical_avg_time", congestion.BaseMinutes)
		return prediction.BaselineEstimate(baseline), false, nil
	}
	est, err := e.predictor.Predict(features)
	if err != nil {
		return model.PointEstimate{}, false, err
	}
	return est, true, nil
}

// adjustForTraffic applies the live multiplier for same-day requests. Any
// fetch failure is logged and skipped; it never fails the prediction.
func (e *Engine) adjustForTraffic(ctx context.Context, req model.PredictionRequest, est model.PointEstimate) (model.PointEstimate, bool) {
	if e.live == nil || !sameDay(req.TravelDate, e.now()) {
		return est, false
	}
	mult, ok, err := e.live.Multiplier(ctx, req.Origin, req.Destination, req.Checkpoint)
	if err != nil {
		e.log.Warnf("live traffic fetch failed, skipping adjustment: %v", err)
		return est, false
	}
	if !ok {
		return est, false
	}
	return traffic.Adjust(est, mult), true
}

// Historical synthesises the average travel time series for the past days
// at the key hours of the day, without the wait-time stage.
func (e *Engine) Historical(ctx context.Context, days int, origin, destination model.Location, checkpoint model.Checkpoint) []model.HistoricalPoint {
	keyHours := []int{7, 8, 9, 12, 17, 18, 19}
	today := e.now()
	points := make([]model.HistoricalPoint, 0, days*len(keyHours))
	for offset := 0; offset < days; offset++ {
		date := today.AddDate(0, 0, -offset)
		for _, hour := range keyHours {
			req := model.PredictionRequest{
				Origin:      origin,
				Destination: destination,
				TravelDate:  date,
				Hour:        hour,
				Mode:        model.ModeCar,
				Checkpoint:  checkpoint,
			}
			features := e.features.Engineer(ctx, req)
			avg := features.Get("historical_avg_time", congestion.BaseMinutes)
			if e.predictor.Loaded() {
				if est, err := e.predictor.Predict(features); err == nil {
					avg = est.Value
				}
			}
			points = append(points, model.HistoricalPoint{
				Date:       date.Format("2006-01-02"),
				Hour:       hour,
				AvgMinutes: avg,
				Congestion: congestion.Classify(avg, congestion.BaseMinutes),
			})
		}
	}
	return points
}

func (e *Engine) record(req model.PredictionRequest, res model.PredictionResult, modelUsed, adjusted bool, latency time.Duration) {
	ev := coremetrics.PredictionEvent{
		Checkpoint:       req.Checkpoint,
		Direction:        req.Direction(),
		Mode:             req.Mode,
		Congestion:       res.Congestion,
		PredictedMinutes: res.PredictedMinutes,
		ModelUsed:        modelUsed,
		TrafficAdjusted:  adjusted,
		Latency:          latency,
		Time:             e.now(),
	}
	if err := e.sink.RecordPrediction(ev); err != nil {
		e.log.Warnf("record prediction metrics: %v", err)
	}
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
