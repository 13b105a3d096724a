// Package traffic applies an optional real-time traffic adjustment to a
// model point estimate. The adjustment only has meaning for same-day
// requests and always fails open.
package traffic

import (
	"context"
	"math"

	"github.com/causewaylab/crossing/core/model"
)

// modelWeight and liveWeight fix the 70/30 blend that damps instantaneous
// traffic readings relative to the model's base estimate.
const (
	modelWeight = 0.7
	liveWeight  = 0.3
)

// LiveSource reports the current traffic multiplier for a route. ok is
// false when no reading is available; err carries the reason for logging.
// A multiplier of 1.0 means free-flow conditions.
type LiveSource interface {
	Multiplier(ctx context.Context, origin, destination model.Location, checkpoint model.Checkpoint) (mult float64, ok bool, err error)
}

// Adjust blends the live multiplier into the point estimate:
// adjusted = value × (0.7 + 0.3 × mult). The confidence band is shifted by
// the same delta so its width is unchanged; the lower bound is clamped at
// zero.
func Adjust(est model.PointEstimate, mult float64) model.PointEstimate {
	adjusted := est.Value * (modelWeight + liveWeight*mult)
	delta := adjusted - est.Value
	return model.PointEstimate{
		Value: adjusted,
		Lower: math.Max(0, est.Lower+delta),
		Upper: est.Upper + delta,
	}
}
