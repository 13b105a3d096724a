package scenarios

import (
	"context"
	"testing"

	"github.com/causewaylab/crossing/core/feature"
	"github.com/causewaylab/crossing/core/holiday"
	"github.com/causewaylab/crossing/core/pipeline"
	"github.com/causewaylab/crossing/core/prediction"
	"github.com/causewaylab/crossing/core/wait"
	"github.com/causewaylab/crossing/infra/logger"
)

// RunScenario builds a fresh engine per the scenario's model definition and
// checks every case. Weather is left unconfigured so features use the
// fail-open defaults and runs stay deterministic.
func RunScenario(t *testing.T, sc *Scenario) {
	var mdl prediction.Model
	if sc.Model.Loaded {
		mdl = prediction.StaticModel{Value: sc.Model.Value}
	}
	engineer := feature.NewEngineer(holiday.New(), nil, logger.NopLogger{})
	engine := pipeline.New(engineer, prediction.New(mdl, logger.NopLogger{}), wait.NewEstimator(), logger.NopLogger{})

	for _, c := range sc.Cases {
		req, err := c.Request.ToModel()
		if err != nil {
			t.Errorf("scenario %s case %s: bad request: %v", sc.Name, c.Name, err)
			continue
		}
		res, err := engine.Predict(context.Background(), req)
		if err != nil {
			t.Errorf("scenario %s case %s: predict: %v", sc.Name, c.Name, err)
			continue
		}
		if c.Expected.Congestion != "" && res.Congestion.String() != c.Expected.Congestion {
			t.Errorf("scenario %s case %s: congestion %s, want %s", sc.Name, c.Name, res.Congestion, c.Expected.Congestion)
		}
		if c.Expected.MinMinutes > 0 && res.PredictedMinutes < c.Expected.MinMinutes {
			t.Errorf("scenario %s case %s: predicted %.1f below %.1f", sc.Name, c.Name, res.PredictedMinutes, c.Expected.MinMinutes)
		}
		if c.Expected.MaxMinutes > 0 && res.PredictedMinutes > c.Expected.MaxMinutes {
			t.Errorf("scenario %s case %s: predicted %.1f above %.1f", sc.Name, c.Name, res.PredictedMinutes, c.Expected.MaxMinutes)
		}
		if c.Expected.Alert && res.Alert == "" {
			t.Errorf("scenario %s case %s: expected an alert", sc.Name, c.Name)
		}
	}
}
