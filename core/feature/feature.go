package feature

import (
	"context"
	"sort"
	"time"

	"github.com/causewaylab/crossing/core/holiday"
	"github.com/causewaylab/crossing/core/logger"
	"github.com/causewaylab/crossing/core/model"
)

// Vector maps feature names to numeric values. The key set is a versioned
// contract with the trained model; renaming a key requires retraining.
type Vector map[string]float64

// Keys returns the feature names in sorted order, the deterministic
// ordering used when the model does not declare its own.
func (v Vector) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the named feature or def when the key is absent.
func (v Vector) Get(name string, def float64) float64 {
	if val, ok := v[name]; ok {
		return val
	}
	return def
}

// Weather is the current-conditions reading consumed as model features.
type Weather struct {
	RainMM float64 `json:"rain_mm"`
	TempC  float64 `json:"temp_c"`
}

// DefaultWeather is used whenever the weather source is unavailable.
var DefaultWeather = Weather{RainMM: 0.0, TempC: 30.0}

// WeatherSource provides current weather near the causeway. Implementations
// must honour the context deadline.
type WeatherSource interface {
	Current(ctx context.Context) (Weather, error)
}

// Engineer converts a prediction request into the model feature vector.
type Engineer struct {
	oracle  *holiday.Oracle
	weather WeatherSource
	log     logger.Logger
}

// NewEngineer builds an Engineer. weather may be nil, in which case the
// default tropical conditions are used.
func NewEngineer(oracle *holiday.Oracle, weather WeatherSource, log logger.Logger) *Engineer {
	return &Engineer{oracle: oracle, weather: weather, log: log}
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Engineer derives the full feature vector for the request. The weather
// lookup fails open to DefaultWeather and never blocks the pipeline beyond
// the context deadline.
func (e *Engineer) Engineer(ctx context.Context, req model.PredictionRequest) Vector {
	weekday := req.Weekday()

	v := Vector{
		"hour_of_day":    float64(req.Hour),
		"minute_of_hour": float64(req.Minute),
		"day_of_week":    float64(weekday),
		"day_of_month":   float64(req.TravelDate.Day()),
		"month":          float64(req.TravelDate.Month()),
		"is_weekend":     b2f(req.IsWeekend()),
	}

	sgPublic := e.oracle.IsPublicHoliday(req.TravelDate, holiday.Singapore)
	myPublic := e.oracle.IsPublicHoliday(req.TravelDate, holiday.Malaysia)
	sgSchool := e.oracle.IsSchoolHoliday(req.TravelDate, holiday.Singapore)
	mySchool := e.oracle.IsSchoolHoliday(req.TravelDate, holiday.Malaysia)
	v["is_sg_holiday"] = b2f(sgPublic)
	v["is_my_holiday"] = b2f(myPublic)
	v["is_sg_school_holiday"] = b2f(sgSchool)
	v["is_my_school_holiday"] = b2f(mySchool)
	v["is_any_holiday"] = b2f(sgPublic || myPublic || sgSchool || mySchool)

	v["direction_sg_to_jb"] = b2f(req.Origin == model.LocationSingapore)

	v["mode_car"] = b2f(req.Mode == model.ModeCar)
	v["mode_taxi"] = b2f(req.Mode == model.ModeTaxi)
	v["mode_bus"] = b2f(req.Mode == model.ModeBus)

	w := DefaultWeather
	if e.weather != nil {
		if cur, err := e.weather.Current(ctx); err == nil {
			w = cur
		} else if e.log != nil {
			e.log.Warnf("weather fetch failed, using defaults: %v", err)
		}
	}
	v["rain_mm"] = w.RainMM
	v["temp_c"] = w.TempC

	v["historical_avg_time"] = Baseline(req.Hour, weekday)

	morning := req.Hour >= 7 && req.Hour <= 9
	evening := req.Hour >= 17 && req.Hour <= 19
	v["is_morning_peak"] = b2f(morning)
	v["is_evening_peak"] = b2f(evening)
	v["is_peak_hour"] = b2f(morning || evening)

	return v
}

// Baseline is the closed-form historical average travel time in minutes
// for the hour and weekday (0=Monday). It doubles as the fallback
// prediction when no model is loaded.
func Baseline(hour, weekday int) float64 {
	const base = 30.0
	multiplier := 1.0
	switch hour {
	case 7, 8, 9, 17, 18, 19:
		multiplier = 2.5
	case 6, 10, 16, 20:
		multiplier = 1.8
	}
	if weekday >= 5 {
		multiplier *= 0.7
	}
	return base * multiplier
}

// BaselineFor is a convenience wrapper deriving the baseline from a date.
func BaselineFor(hour int, date time.Time) float64 {
	weekday := (int(date.Weekday()) + 6) % 7
	return Baseline(hour, weekday)
}
