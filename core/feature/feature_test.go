package feature

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causewaylab/crossing/core/holiday"
	"github.com/causewaylab/crossing/core/logger"
	"github.com/causewaylab/crossing/core/model"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

var _ logger.Logger = nopLogger{}

type staticWeather struct {
	w   Weather
	err error
}

func (s staticWeather) Current(context.Context) (Weather, error) { return s.w, s.err }

func request(y int, m time.Month, d, hour int) model.PredictionRequest {
	return model.PredictionRequest{
		Origin:      model.LocationSingapore,
		Destination: model.LocationJB,
		TravelDate:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Hour:        hour,
		Minute:      30,
		Mode:        model.ModeCar,
		Checkpoint:  model.CheckpointWoodlands,
	}
}

var featureKeys = []string{
	"hour_of_day", "minute_of_hour", "day_of_week", "day_of_month", "month",
	"is_weekend",
	"is_sg_holiday", "is_my_holiday", "is_sg_school_holiday", "is_my_school_holiday",
	"is_any_holiday",
	"direction_sg_to_jb",
	"mode_car", "mode_taxi", "mode_bus",
	"rain_mm", "temp_c",
	"historical_avg_time",
	"is_morning_peak", "is_evening_peak", "is_peak_hour",
}

func TestEngineerProducesFullKeySet(t *testing.T) {
	e := NewEngineer(holiday.New(), nil, nopLogger{})
	v := e.Engineer(context.Background(), request(2026, 4, 15, 8))
	require.Len(t, v, len(featureKeys))
	for _, k := range featureKeys {
		_, ok := v[k]
		assert.Truef(t, ok, "missing key %s", k)
	}
}

func TestEngineerCalendarFeatures(t *testing.T) {
	e := NewEngineer(holiday.New(), nil, nopLogger{})
	// 2026-04-15 is a Wednesday.
	v := e.Engineer(context.Background(), request(2026, 4, 15, 8))
	assert.Equal(t, 8.0, v["hour_of_day"])
	assert.Equal(t, 30.0, v["minute_of_hour"])
	assert.Equal(t, 2.0, v["day_of_week"])
	assert.Equal(t, 15.0, v["day_of_month"])
	assert.Equal(t, 4.0, v["month"])
	assert.Equal(t, 0.0, v["is_weekend"])
	assert.Equal(t, 1.0, v["direction_sg_to_jb"])
	assert.Equal(t, 1.0, v["mode_car"])
	assert.Equal(t, 0.0, v["mode_taxi"])
	assert.Equal(t, 0.0, v["mode_bus"])
}

func TestEngineerWeekendAndDirection(t *testing.T) {
	e := NewEngineer(holiday.New(), nil, nopLogger{})
	req := request(2026, 4, 18, 10) // Saturday
	req.Origin = model.LocationJB
	req.Destination = model.LocationSingapore
	req.Mode = model.ModeBus
	v := e.Engineer(context.Background(), req)
	assert.Equal(t, 1.0, v["is_weekend"])
	assert.Equal(t, 5.0, v["day_of_week"])
	assert.Equal(t, 0.0, v["direction_sg_to_jb"])
	assert.Equal(t, 1.0, v["mode_bus"])
	assert.Equal(t, 0.0, v["mode_car"])
}

func TestEngineerHolidayFlags(t *testing.T) {
	e := NewEngineer(holiday.New(), nil, nopLogger{})
	// Labour Day 2026 is gazetted on both sides.
	v := e.Engineer(context.Background(), request(2026, 5, 1, 8))
	assert.Equal(t, 1.0, v["is_sg_holiday"])
	assert.Equal(t, 1.0, v["is_my_holiday"])
	assert.Equal(t, 1.0, v["is_any_holiday"])

	v = e.Engineer(context.Background(), request(2026, 4, 15, 8))
	assert.Equal(t, 0.0, v["is_sg_holiday"])
	assert.Equal(t, 0.0, v["is_any_holiday"])
}

func TestEngineerPeakFlags(t *testing.T) {
	e := NewEngineer(holiday.New(), nil, nopLogger{})
	for hour, want := range map[int][3]float64{
		8:  {1, 0, 1},
		18: {0, 1, 1},
		12: {0, 0, 0},
	} {
		v := e.Engineer(context.Background(), request(2026, 4, 15, hour))
		assert.Equal(t, want[0], v["is_morning_peak"], "hour %d", hour)
		assert.Equal(t, want[1], v["is_evening_peak"], "hour %d", hour)
		assert.Equal(t, want[2], v["is_peak_hour"], "hour %d", hour)
	}
}

func TestEngineerWeatherFailsOpen(t *testing.T) {
	e := NewEngineer(holiday.New(), staticWeather{err: errors.New("api down")}, nopLogger{})
	v := e.Engineer(context.Background(), request(2026, 4, 15, 8))
	assert.Equal(t, DefaultWeather.RainMM, v["rain_mm"])
	assert.Equal(t, DefaultWeather.TempC, v["temp_c"])
}

func TestEngineerWeatherApplied(t *testing.T) {
	e := NewEngineer(holiday.New(), staticWeather{w: Weather{RainMM: 4.2, TempC: 27.5}}, nopLogger{})
	v := e.Engineer(context.Background(), request(2026, 4, 15, 8))
	assert.Equal(t, 4.2, v["rain_mm"])
	assert.Equal(t, 27.5, v["temp_c"])
}

func TestBaseline(t *testing.T) {
	assert.Equal(t, 75.0, Baseline(8, 2))  // weekday peak
	assert.Equal(t, 54.0, Baseline(6, 2))  // weekday shoulder
	assert.Equal(t, 30.0, Baseline(13, 2)) // weekday off-peak
	assert.InDelta(t, 52.5, Baseline(18, 6), 1e-9)
	assert.InDelta(t, 21.0, Baseline(3, 5), 1e-9)
}

func TestVectorKeysSorted(t *testing.T) {
	v := Vector{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())
	assert.Equal(t, 2.0, v.Get("a", 0))
	assert.Equal(t, 9.0, v.Get("missing", 9))
}
