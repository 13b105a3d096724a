package simulator

import (
	"context"
	"math/rand"
	"time"

	"github.com/causewaylab/crossing/core/congestion"
	"github.com/causewaylab/crossing/core/feature"
	"github.com/causewaylab/crossing/core/holiday"
	"github.com/causewaylab/crossing/core/logger"
	"github.com/causewaylab/crossing/core/model"
	"github.com/causewaylab/crossing/core/record"
	"github.com/causewaylab/crossing/core/wait"
)

// Generator writes synthetic crossings into a record store. Travel times
// follow the historical baseline curve with noise, so the generated data is
// plausible rather than uniform.
type Generator struct {
	store  record.Store
	oracle *holiday.Oracle
	wait   *wait.Estimator
	rng    *rand.Rand
	log    logger.Logger
}

// New builds a Generator.
func New(store record.Store, cfg Config, log logger.Logger) *Generator {
	cfg.SetDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		store:  store,
		oracle: holiday.New(),
		wait:   wait.NewEstimator(),
		rng:    rand.New(rand.NewSource(seed)),
		log:    log,
	}
}

var modes = []string{"car", "car", "car", "taxi", "bus"}

// Run generates cfg.Days * cfg.CrossingsPerDay crossings. It stops early on
// the first storage error or context cancellation.
func (g *Generator) Run(ctx context.Context, cfg Config) (int, error) {
	cfg.SetDefaults()
	written := 0
	now := time.Now()
	for day := 0; day < cfg.Days; day++ {
		date := now.AddDate(0, 0, -day)
		for i := 0; i < cfg.CrossingsPerDay; i++ {
			select {
			case <-ctx.Done():
				return written, ctx.Err()
			default:
			}
			if err := g.store.AddCrossing(ctx, g.crossing(date)); err != nil {
				return written, err
			}
			written++
		}
	}
	g.log.Infof("generated %d synthetic crossings", written)
	return written, nil
}

func (g *Generator) crossing(date time.Time) record.Crossing {
	hour := g.busyHour()
	weekday := (int(date.Weekday()) + 6) % 7
	weekend := weekday >= 5
	isHoliday := g.oracle.IsPublicHoliday(date, holiday.Singapore) ||
		g.oracle.IsPublicHoliday(date, holiday.Malaysia)

	dir := model.DirectionSGToJB
	origin, dest := "singapore", "jb"
	if g.rng.Intn(2) == 1 {
		dir = model.DirectionJBToSG
		origin, dest = "jb", "singapore"
	}
	cp := model.Checkpoint(g.rng.Intn(2))

	travel := feature.Baseline(hour, weekday)
	if isHoliday {
		travel *= 1.5
	}
	travel *= 0.85 + g.rng.Float64()*0.3

	waitMin := g.wait.Estimate(cp, dir, hour, weekend, isHoliday).Estimated
	waitMin *= 0.85 + g.rng.Float64()*0.3

	total := travel + waitMin
	ts := time.Date(date.Year(), date.Month(), date.Day(), hour, g.rng.Intn(60), 0, 0, date.Location())
	return record.Crossing{
		Timestamp:         ts,
		Checkpoint:        cp.String(),
		Origin:            origin,
		Destination:       dest,
		Mode:              modes[g.rng.Intn(len(modes))],
		TravelTimeMinutes: round1(travel),
		WaitTimeMinutes:   round1(waitMin),
		TotalTimeMinutes:  round1(total),
		TempC:             26 + g.rng.Float64()*8,
		RainMM:            g.rain(),
		IsHoliday:         isHoliday,
		DayOfWeek:         weekday,
		HourOfDay:         hour,
		CongestionLevel:   congestion.Classify(total, congestion.BaseMinutes).String(),
	}
}

// busyHour skews the hour distribution towards commute peaks.
func (g *Generator) busyHour() int {
	if g.rng.Float64() < 0.5 {
		peaks := []int{7, 8, 9, 17, 18, 19, 20}
		return peaks[g.rng.Intn(len(peaks))]
	}
	return g.rng.Intn(24)
}

func (g *Generator) rain() float64 {
	if g.rng.Float64() < 0.7 {
		return 0
	}
	return round1(g.rng.Float64() * 12)
}

func round1(f float64) float64 { return float64(int(f*10+0.5)) / 10 }
