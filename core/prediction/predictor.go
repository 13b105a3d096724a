package prediction

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/causewaylab/crossing/core/feature"
	"github.com/causewaylab/crossing/core/logger"
	"github.com/causewaylab/crossing/core/model"
)

// ErrModelNotLoaded is returned when Predict is called without a model.
// Callers are expected to check Loaded first and fall back to the
// historical baseline.
var ErrModelNotLoaded = errors.New("model not loaded")

// Error wraps an underlying model evaluation failure.
type Error struct {
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("prediction failed: %v", e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// ensembleSampleSize caps how many ensemble members contribute to the
// uncertainty estimate.
const ensembleSampleSize = 50

// fallbackMargin is the relative confidence band applied when no ensemble
// spread is available.
const fallbackMargin = 0.15

// Predictor produces point estimates with confidence bands from a trained
// model. It is read-only after construction and safe for concurrent use.
type Predictor struct {
	model Model
	log   logger.Logger
}

// New wraps the given model. model may be nil; Loaded then reports false
// and Predict returns ErrModelNotLoaded.
func New(m Model, log logger.Logger) *Predictor {
	return &Predictor{model: m, log: log}
}

// Loaded reports whether a model is available.
func (p *Predictor) Loaded() bool { return p != nil && p.model != nil }

// Predict evaluates the model on the feature vector and derives a 95%
// confidence band from ensemble disagreement, or ±15% of the point value
// when the model exposes no usable ensemble.
func (p *Predictor) Predict(features feature.Vector) (model.PointEstimate, error) {
	if !p.Loaded() {
		return model.PointEstimate{}, ErrModelNotLoaded
	}

	row := p.vectorize(features)
	point, err := p.model.Predict(row)
	if err != nil {
		return model.PointEstimate{}, &Error{Err: err}
	}
	if math.IsNaN(point) || math.IsInf(point, 0) {
		return model.PointEstimate{}, &Error{Err: fmt.Errorf("model produced non-finite value %v", point)}
	}

	if em, ok := p.model.(EnsembleModel); ok {
		if est, ok := p.ensembleBand(em, row, point); ok {
			return est, nil
		}
	}
	return marginBand(point), nil
}

// vectorize orders the feature values by the model's declared names, using
// 0.0 for any missing key, or by sorted key order when the model declares
// none. The ordering must match what training used.
func (p *Predictor) vectorize(features feature.Vector) []float64 {
	if names := p.model.FeatureNames(); len(names) > 0 {
		row := make([]float64, len(names))
		for i, name := range names {
			row[i] = features.Get(name, 0.0)
		}
		return row
	}
	keys := features.Keys()
	row := make([]float64, len(keys))
	for i, k := range keys {
		row[i] = features[k]
	}
	return row
}

// ensembleBand computes a 1.96σ band over the first 50 member predictions.
// Members that fail to predict are skipped. Returns false when no member
// produced a usable prediction.
func (p *Predictor) ensembleBand(em EnsembleModel, row []float64, point float64) (model.PointEstimate, bool) {
	members := em.Members()
	if len(members) > ensembleSampleSize {
		members = members[:ensembleSampleSize]
	}
	preds := make([]float64, 0, len(members))
	for _, m := range members {
		v, err := m.Predict(row)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			if err != nil && p.log != nil {
				p.log.Debugf("ensemble member prediction skipped: %v", err)
			}
			continue
		}
		preds = append(preds, v)
	}
	if len(preds) == 0 {
		return model.PointEstimate{}, false
	}
	sigma := 0.0
	if len(preds) > 1 {
		sigma = stat.StdDev(preds, nil)
	}
	return model.PointEstimate{
		Value: point,
		Lower: math.Max(0, point-1.96*sigma),
		Upper: point + 1.96*sigma,
	}, true
}

func marginBand(point float64) model.PointEstimate {
	return model.PointEstimate{
		Value: point,
		Lower: math.Max(0, point*(1-fallbackMargin)),
		Upper: point * (1 + fallbackMargin),
	}
}

// BaselineEstimate builds the model-absent fallback estimate from the
// historical baseline value, with the same ±15% band as the ensemble
// fallback.
func BaselineEstimate(baseline float64) model.PointEstimate {
	return marginBand(baseline)
}
