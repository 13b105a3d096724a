package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/causewaylab/crossing/core/model"
)

func TestAdjustFreeFlowIsIdentity(t *testing.T) {
	est := model.PointEstimate{Value: 60, Lower: 50, Upper: 70}
	got := Adjust(est, 1.0)
	assert.Equal(t, est, got)
}

func TestAdjustHeavyTraffic(t *testing.T) {
	est := model.PointEstimate{Value: 60, Lower: 50, Upper: 70}
	got := Adjust(est, 2.0)
	// 60 × (0.7 + 0.3×2) = 78
	assert.InDelta(t, 78.0, got.Value, 1e-9)
	assert.InDelta(t, 68.0, got.Lower, 1e-9)
	assert.InDelta(t, 88.0, got.Upper, 1e-9)
	// Band width is unchanged.
	assert.InDelta(t, est.Upper-est.Lower, got.Upper-got.Lower, 1e-9)
	assert.True(t, got.Valid())
}

func TestAdjustLightTrafficShiftsDown(t *testing.T) {
	est := model.PointEstimate{Value: 60, Lower: 50, Upper: 70}
	got := Adjust(est, 0.5)
	// 60 × (0.7 + 0.15) = 51
	assert.InDelta(t, 51.0, got.Value, 1e-9)
	assert.InDelta(t, 41.0, got.Lower, 1e-9)
	assert.True(t, got.Valid())
}

func TestAdjustClampsLowerAtZero(t *testing.T) {
	est := model.PointEstimate{Value: 10, Lower: 1, Upper: 20}
	got := Adjust(est, 0.0)
	// delta = 10×0.7 - 10 = -3, lower would be -2.
	assert.Equal(t, 0.0, got.Lower)
	assert.True(t, got.Valid())
}
