// Package modelstore loads trained travel-time model artifacts from the
// local filesystem or an S3 bucket. Artifacts are JSON documents holding
// either a single linear model or an ensemble of linear members.
package modelstore

import (
	"encoding/json"
	"fmt"

	"github.com/causewaylab/crossing/core/prediction"
)

// Artifact is the serialised form of a trained model.
type Artifact struct {
	// Type is "linear" or "ensemble".
	Type string `json:"type"`
	// FeatureNames is the training feature order. Optional; when empty the
	// predictor feeds features in sorted-key order.
	FeatureNames []string `json:"feature_names,omitempty"`

	Intercept float64   `json:"intercept,omitempty"`
	Weights   []float64 `json:"weights,omitempty"`

	Members []Member `json:"members,omitempty"`
}

// Member is one ensemble sub-model.
type Member struct {
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// Build turns the artifact into a prediction model. The ensemble/point
// variant is decided here, at load time.
func (a Artifact) Build() (prediction.Model, error) {
	switch a.Type {
	case "linear":
		if len(a.Weights) == 0 {
			return nil, fmt.Errorf("linear artifact has no weights")
		}
		return &linearModel{names: a.FeatureNames, intercept: a.Intercept, weights: a.Weights}, nil
	case "ensemble":
		if len(a.Members) == 0 {
			return nil, fmt.Errorf("ensemble artifact has no members")
		}
		members := make([]prediction.Model, len(a.Members))
		for i, m := range a.Members {
			if len(m.Weights) == 0 {
				return nil, fmt.Errorf("ensemble member %d has no weights", i)
			}
			members[i] = &linearModel{names: a.FeatureNames, intercept: m.Intercept, weights: m.Weights}
		}
		return &ensembleModel{names: a.FeatureNames, members: members}, nil
	default:
		return nil, fmt.Errorf("unknown artifact type %q", a.Type)
	}
}

func parseArtifact(data []byte) (prediction.Model, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return a.Build()
}

type linearModel struct {
	names     []string
	intercept float64
	weights   []float64
}

func (m *linearModel) Predict(x []float64) (float64, error) {
	if len(x) != len(m.weights) {
		return 0, fmt.Errorf("feature count mismatch: got %d, model expects %d", len(x), len(m.weights))
	}
	out := m.intercept
	for i, w := range m.weights {
		out += w * x[i]
	}
	return out, nil
}

func (m *linearModel) FeatureNames() []string { return m.names }

// ensembleModel predicts the mean of its members, like a bagged forest.
type ensembleModel struct {
	names   []string
	members []prediction.Model
}

func (m *ensembleModel) Predict(x []float64) (float64, error) {
	sum := 0.0
	for _, member := range m.members {
		v, err := member.Predict(x)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(len(m.members)), nil
}

func (m *ensembleModel) FeatureNames() []string { return m.names }

func (m *ensembleModel) Members() []prediction.Model { return m.members }
