package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/causewaylab/crossing/config"
	"github.com/causewaylab/crossing/core/feature"
	"github.com/causewaylab/crossing/core/holiday"
	"github.com/causewaylab/crossing/core/model"
	"github.com/causewaylab/crossing/core/pipeline"
	"github.com/causewaylab/crossing/core/prediction"
	"github.com/causewaylab/crossing/core/wait"
	"github.com/causewaylab/crossing/infra/logger"
	"github.com/causewaylab/crossing/infra/modelstore"
	"github.com/causewaylab/crossing/infra/weather"
)

var predictFlags struct {
	origin      string
	destination string
	date        string
	clock       string
	mode        string
	checkpoint  string
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run a single prediction and print the result as JSON",
	RunE:  predictOnce,
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictFlags.origin, "origin", "singapore", "origin location")
	f.StringVar(&predictFlags.destination, "destination", "jb", "destination location")
	f.StringVar(&predictFlags.date, "date", time.Now().Format("2006-01-02"), "travel date (YYYY-MM-DD)")
	f.StringVar(&predictFlags.clock, "time", "08:00", "travel time (HH:MM)")
	f.StringVar(&predictFlags.mode, "mode", "car", "travel mode: car, taxi or bus")
	f.StringVar(&predictFlags.checkpoint, "checkpoint", "woodlands", "checkpoint: woodlands or tuas")
	rootCmd.AddCommand(predictCmd)
}

func predictOnce(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	req, err := parsePredictFlags()
	if err != nil {
		return err
	}

	logg := logger.New("predict-command")
	mdl, err := modelstore.Load(ctx, cfg.Model, logg)
	if err != nil {
		logg.Warnf("model load failed, using baseline fallback: %v", err)
		mdl = nil
	}
	var weatherSrc feature.WeatherSource
	if cli := weather.NewClient(cfg.Weather, logg); cli != nil {
		weatherSrc = cli
	}
	engineer := feature.NewEngineer(holiday.New(), weatherSrc, logg)
	engine := pipeline.New(engineer, prediction.New(mdl, logg), wait.NewEstimator(), logg)

	res, err := engine.Predict(ctx, req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func parsePredictFlags() (model.PredictionRequest, error) {
	origin, err := model.ParseLocation(predictFlags.origin)
	if err != nil {
		return model.PredictionRequest{}, err
	}
	dest, err := model.ParseLocation(predictFlags.destination)
	if err != nil {
		return model.PredictionRequest{}, err
	}
	date, err := time.Parse("2006-01-02", predictFlags.date)
	if err != nil {
		return model.PredictionRequest{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	clock, err := time.Parse("15:04", predictFlags.clock)
	if err != nil {
		return model.PredictionRequest{}, fmt.Errorf("time must be HH:MM: %w", err)
	}
	mode, err := model.ParseMode(predictFlags.mode)
	if err != nil {
		return model.PredictionRequest{}, err
	}
	checkpoint, err := model.ParseCheckpoint(predictFlags.checkpoint)
	if err != nil {
		return model.PredictionRequest{}, err
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
