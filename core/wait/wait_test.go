package wait

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/causewaylab/crossing/core/model"
)

func TestEstimateKnownSlots(t *testing.T) {
	e := NewEstimator()

	// Weekday morning rush into JB at Woodlands.
	est := e.Estimate(model.CheckpointWoodlands, model.DirectionSGToJB, 8, false, false)
	assert.Equal(t, 35.0, est.Estimated)
	assert.Equal(t, 24.5, est.Min)
	assert.Equal(t, 45.5, est.Max)
	assert.Equal(t, "medium", est.Confidence)

	// Weekday morning rush into Singapore is heavier.
	est = e.Estimate(model.CheckpointWoodlands, model.DirectionJBToSG, 8, false, false)
	assert.Equal(t, 50.0, est.Estimated)

	// Tuas carries lighter queues than Woodlands.
	est = e.Estimate(model.CheckpointTuas, model.DirectionSGToJB, 8, false, false)
	assert.Equal(t, 15.0, est.Estimated)
}

func TestEstimateHolidayMultiplier(t *testing.T) {
	e := NewEstimator()
	plain := e.Estimate(model.CheckpointWoodlands, model.DirectionSGToJB, 8, false, false)
	holiday := e.Estimate(model.CheckpointWoodlands, model.DirectionSGToJB, 8, false, true)
	assert.Equal(t, 52.5, holiday.Estimated)
	assert.Greater(t, holiday.Estimated, plain.Estimated)
	// Rounding to one decimal.
	assert.Equal(t, 36.8, holiday.Min)
	assert.Equal(t, 68.3, holiday.Max)
}

func TestEstimateQuietHours(t *testing.T) {
	e := NewEstimator()
	est := e.Estimate(model.CheckpointTuas, model.DirectionSGToJB, 2, true, false)
	assert.Equal(t, 3.0, est.Estimated)
	assert.Equal(t, 2.1, est.Min)
	assert.Equal(t, 3.9, est.Max)
}

func TestEstimateOutOfRangeHourUsesDefault(t *testing.T) {
	e := NewEstimator()
	est := e.Estimate(model.CheckpointWoodlands, model.DirectionSGToJB, 24, false, false)
	assert.Equal(t, 10.0, est.Estimated)
	est = e.Estimate(model.CheckpointWoodlands, model.DirectionSGToJB, -1, false, false)
	assert.Equal(t, 10.0, est.Estimated)
}

func TestEstimateInvariantsAcrossAllSlots(t *testing.T) {
	e := NewEstimator()
	for _, cp := range []model.Checkpoint{model.CheckpointWoodlands, model.CheckpointTuas} {
		for _, dir := range []model.Direction{model.DirectionSGToJB, model.DirectionJBToSG} {
			for _, weekend := range []bool{false, true} {
				for _, holiday := range []bool{false, true} {
					for hour := 0; hour < 24; hour++ {
						est := e.Estimate(cp, dir, hour, weekend, holiday)
						assert.GreaterOrEqual(t, est.Min, 2.0, "cp=%v dir=%v hour=%d", cp, dir, hour)
						assert.LessOrEqual(t, est.Min, est.Estimated)
						assert.LessOrEqual(t, est.Estimated, est.Max)
					}
				}
			}
		}
	}
}
