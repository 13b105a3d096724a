// Package scenarios runs YAML-defined prediction scenarios against the
// full pipeline, asserting congestion levels and bound ranges.
package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/causewaylab/crossing/core/model"
)

type RequestDef struct {
	Origin      string `yaml:"origin"`
	Destination string `yaml:"destination"`
	Date        string `yaml:"date"` // YYYY-MM-DD
	Time        string `yaml:"time"` // HH:MM
	Mode        string `yaml:"mode,omitempty"`
	Checkpoint  string `yaml:"checkpoint,omitempty"`
}

func (r RequestDef) ToModel() (model.PredictionRequest, error) {
	origin, err := model.ParseLocation(r.Origin)
	if err != nil {
		return model.PredictionRequest{}, err
	}
	dest, err := model.ParseLocation(r.Destination)
	if err != nil {
		return model.PredictionRequest{}, err
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return model.PredictionRequest{}, fmt.Errorf("date: %w", err)
	}
	clock, err := time.Parse("15:04", r.Time)
	if err != nil {
		return model.PredictionRequest{}, fmt.Errorf("time: %w", err)
	}
	mode := model.ModeCar
	if r.Mode != "" {
		if mode, err = model.ParseMode(r.Mode); err != nil {
			return model.PredictionRequest{}, err
		}
	}
	checkpoint := model.CheckpointWoodlands
	if r.Checkpoint != "" {
		if checkpoint, err = model.ParseCheckpoint(r.Checkpoint); err != nil {
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

type Expected struct {
	Congestion string  `yaml:"congestion"`
	MinMinutes float64 `yaml:"min_minutes,omitempty"`
	MaxMinutes float64 `yaml:"max_minutes,omitempty"`
	Alert      bool    `yaml:"alert,omitempty"`
}

type Case struct {
	Name     string     `yaml:"name"`
	Request  RequestDef `yaml:"request"`
	Expected Expected   `yaml:"expected"`
}

type ModelDef struct {
	Loaded bool    `yaml:"loaded"`
	Value  float64 `yaml:"value,omitempty"`
}

type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Model       ModelDef `yaml:"model"`
	Cases       []Case   `yaml:"cases"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
