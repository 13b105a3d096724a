package model

import (
	"fmt"
	"strings"
	"time"
)

// Location identifies one side of the border crossing.
type Location int

const (
	LocationSingapore Location = iota
	LocationJB
)

// String returns the canonical lower-case name of the location.
func (l Location) String() string {
	switch l {
	case LocationSingapore:
		return "singapore"
	case LocationJB:
		return "jb"
	default:
		return "unknown"
	}
}

// ParseLocation accepts the canonical names plus the long form "johor bahru".
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "singapore":
		return LocationSingapore, nil
	case "jb", "johor bahru":
		return LocationJB, nil
	default:
		return 0, fmt.Errorf("unknown location %q", s)
	}
}

// Mode is the mode of travel across the checkpoint.
type Mode int

const (
	ModeCar Mode = iota
	ModeTaxi
	ModeBus
)

func (m Mode) String() string {
	switch m {
	case ModeCar:
		return "car"
	case ModeTaxi:
		return "taxi"
	case ModeBus:
		return "bus"
	default:
		return "unknown"
	}
}

// ParseMode parses a travel mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "car":
		return ModeCar, nil
	case "taxi":
		return ModeTaxi, nil
	case "bus":
		return ModeBus, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Checkpoint is a physical border-crossing point.
type Checkpoint int

const (
	CheckpointWoodlands Checkpoint = iota
	CheckpointTuas
)

func (c Checkpoint) String() string {
	switch c {
	case CheckpointWoodlands:
		return "woodlands"
	case CheckpointTuas:
		return "tuas"
	default:
		return "unknown"
	}
}

// ParseCheckpoint parses a checkpoint name.
func ParseCheckpoint(s string) (Checkpoint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "woodlands":
		return CheckpointWoodlands, nil
	case "tuas":
		return CheckpointTuas, nil
	default:
		return 0, fmt.Errorf("unknown checkpoint %q", s)
	}
}

// Direction is the crossing direction derived from origin and destination.
type Direction int

const (
	DirectionSGToJB Direction = iota
	DirectionJBToSG
)

func (d Direction) String() string {
	switch d {
	case DirectionSGToJB:
		return "singapore_to_jb"
	case DirectionJBToSG:
		return "jb_to_singapore"
	default:
		return "unknown"
	}
}

// PredictionRequest describes a single crossing to estimate. It is
// immutable once validated.
type PredictionRequest struct {
	Origin      Location
	Destination Location
	TravelDate  time.Time // calendar date; time-of-day portion is ignored
	Hour        int       // 0-23
	Minute      int       // 0-59
	Mode        Mode
	Checkpoint  Checkpoint
}

// Validate checks the request fields. Origin equal to destination is
// logically meaningless but not rejected.
func (r PredictionRequest) Validate() error {
	if r.Hour < 0 || r.Hour > 23 {
		return fmt.Errorf("hour must be in [0,23], got %d", r.Hour)
	}
	if r.Minute < 0 || r.Minute > 59 {
		return fmt.Errorf("minute must be in [0,59], got %d", r.Minute)
	}
	if r.TravelDate.IsZero() {
		return fmt.Errorf("travel date is required")
	}
	return nil
}

// Direction derives the crossing direction from the origin.
func (r PredictionRequest) Direction() Direction {
	if r.Origin == LocationSingapore {
		return DirectionSGToJB
	}
	return DirectionJBToSG
}

// Weekday returns the day of week with 0=Monday, matching the feature
// schema the model was trained on.
func (r PredictionRequest) Weekday() int {
	return (int(r.TravelDate.Weekday()) + 6) % 7
}

// IsWeekend reports whether the travel date is a Saturday or Sunday.
func (r PredictionRequest) IsWeekend() bool {
	return r.Weekday() >= 5
}
