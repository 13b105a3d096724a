package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/causewaylab/crossing/core/model"
	"github.com/causewaylab/crossing/core/pipeline"
)

// PredictRequest is the JSON body of POST /api/v1/predict.
type PredictRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	TravelDate  string `json:"travel_date"` // YYYY-MM-DD
	TravelTime  string `json:"travel_time"` // HH:MM
	Mode        string `json:"mode,omitempty"`
	Checkpoint  string `json:"checkpoint,omitempty"`
}

// toModel parses and validates the wire request.
func (pr PredictRequest) toModel() (model.PredictionRequest, error) {
	origin, err := model.ParseLocation(pr.Origin)
	if err != nil {
		return model.PredictionRequest{}, err
	}
	dest, err := model.ParseLocation(pr.Destination)
	if err != nil {
		return model.PredictionRequest{}, err
	}
	date, err := time.Parse("2006-01-02", pr.TravelDate)
	if err != nil {
		return model.PredictionRequest{}, fmt.Errorf("travel_date must be YYYY-MM-DD: %w", err)
	}
	clock, err := time.Parse("15:04", pr.TravelTime)
	if err != nil {
		return model.PredictionRequest{}, fmt.Errorf("travel_time must be HH:MM: %w", err)
	}
	mode := model.ModeCar
	if pr.Mode != "" {
		if mode, err = model.ParseMode(pr.Mode); err != nil {
			return model.PredictionRequest{}, err
		}
	}
	checkpoint := model.CheckpointWoodlands
	if pr.Checkpoint != "" {
		if checkpoint, err = model.ParseCheckpoint(pr.Checkpoint); err != nil {
			return model.PredictionRequest{}, err
		}
	}
	return model.PredictionRequest{
		Origin:      origin,
		Destination: dest,
		TravelDate:  date,
		Hour:        clock.Hour(),
		Minute:      clock.Minute(),
		Mode:        mode,
		Checkpoint:  checkpoint,
	}, nil
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	var body PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req, err := body.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.engine.Predict(r.Context(), req)
	if err != nil {
		var verr *pipeline.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Errorf("predict: %v", err)
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SimulateRequest carries a batch of what-if scenarios.
type SimulateRequest struct {
	Scenarios []PredictRequest `json:"scenarios"`
}

// SimulateScenario is one entry of the simulate response, pairing the
// scenario with its prediction or error.
type SimulateScenario struct {
	Scenario PredictRequest          `json:"scenario"`
	Result   *model.PredictionResult `json:"result,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

const maxScenarios = 50

// simulate runs every scenario independently; one bad scenario never sinks
// the batch.
func (h *Handler) simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(body.Scenarios) == 0 {
		writeError(w, http.StatusBadRequest, "at least one scenario is required")
		return
	}
	if len(body.Scenarios) > maxScenarios {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d scenarios per request", maxScenarios))
		return
	}
	out := make([]SimulateScenario, 0, len(body.Scenarios))
	for _, sc := range body.Scenarios {
		entry := SimulateScenario{Scenario: sc}
		req, err := sc.toModel()
		if err == nil {
			var res model.PredictionResult
			if res, err = h.engine.Predict(r.Context(), req); err == nil {
				entry.Result = &res
			}
		}
		if err != nil {
			entry.Error = err.Error()
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"predictions": out})
}
