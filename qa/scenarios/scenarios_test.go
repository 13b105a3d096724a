package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestMorningPeakScenario(t *testing.T) {
	path := writeScenario(t, `
name: morning-peak
description: heavy model estimate during the morning rush
model:
  loaded: true
  value: 100
cases:
  - name: woodlands-8am
    request:
      origin: singapore
      destination: jb
      date: "2026-04-15"
      time: "08:00"
      checkpoint: woodlands
    expected:
      congestion: severe
      min_minutes: 130
      max_minutes: 140
      alert: true
`)
	sc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "morning-peak", sc.Name)
	RunScenario(t, sc)
}

func TestQuietNightScenario(t *testing.T) {
	path := writeScenario(t, `
name: quiet-night
model:
  loaded: true
  value: 20
cases:
  - name: woodlands-3am
    request:
      origin: singapore
      destination: jb
      date: "2026-04-15"
      time: "03:00"
      checkpoint: woodlands
    expected:
      congestion: low
      max_minutes: 30
`)
	sc, err := Load(path)
	require.NoError(t, err)
	RunScenario(t, sc)
}

func TestBaselineFallbackScenario(t *testing.T) {
	path := writeScenario(t, `
name: baseline-fallback
description: no trained model available
model:
  loaded: false
cases:
  - name: woodlands-8am
    request:
      origin: singapore
      destination: jb
      date: "2026-04-15"
      time: "08:00"
      checkpoint: woodlands
    expected:
      congestion: severe
      min_minutes: 100
      max_minutes: 120
`)
	sc, err := Load(path)
	require.NoError(t, err)
	RunScenario(t, sc)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
