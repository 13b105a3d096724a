package modelstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causewaylab/crossing/core/prediction"
	"github.com/causewaylab/crossing/infra/logger"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadLinearArtifact(t *testing.T) {
	path := writeArtifact(t, `{
		"type": "linear",
		"feature_names": ["hour_of_day", "is_weekend"],
		"intercept": 10,
		"weights": [2, 5]
	}`)
	m, err := LoadFile(path, logger.NopLogger{})
	require.NoError(t, err)

	assert.Equal(t, []string{"hour_of_day", "is_weekend"}, m.FeatureNames())
	got, err := m.Predict([]float64{8, 1})
	require.NoError(t, err)
	assert.InDelta(t, 31.0, got, 1e-9) // 10 + 2×8 + 5×1
}

func TestLoadEnsembleArtifact(t *testing.T) {
	path := writeArtifact(t, `{
		"type": "ensemble",
		"feature_names": ["x"],
		"members": [
			{"intercept": 10, "weights": [1]},
			{"intercept": 20, "weights": [1]}
		]
	}`)
	m, err := LoadFile(path, logger.NopLogger{})
	require.NoError(t, err)

	em, ok := m.(prediction.EnsembleModel)
	require.True(t, ok)
	assert.Len(t, em.Members(), 2)

	got, err := m.Predict([]float64{5})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, got, 1e-9) // mean of 15 and 25
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"), logger.NopLogger{})
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
}

func TestLoadCorruptArtifact(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{not json`},
		{"unknown type", `{"type": "forest"}`},
		{"no weights", `{"type": "linear"}`},
		{"no members", `{"type": "ensemble"}`},
		{"member without weights", `{"type": "ensemble", "members": [{"intercept": 1}]}`},
	}
	for _, c := range cases {
		path := writeArtifact(t, c.body)
		_, err := LoadFile(path, logger.NopLogger{})
		var lerr *LoadError
		assert.ErrorAsf(t, err, &lerr, "case %s", c.name)
	}
}

func TestLinearModelLengthMismatch(t *testing.T) {
	path := writeArtifact(t, `{"type": "linear", "weights": [1, 2]}`)
	m, err := LoadFile(path, logger.NopLogger{})
	require.NoError(t, err)
	_, err = m.Predict([]float64{1})
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "models/travel_time_model.json", cfg.Path)
	assert.Equal(t, 10, cfg.S3TimeoutSeconds)
}
