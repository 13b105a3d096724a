// Package app assembles the prediction service from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/causewaylab/crossing/api"
	"github.com/causewaylab/crossing/config"
	"github.com/causewaylab/crossing/core/feature"
	"github.com/causewaylab/crossing/core/holiday"
	coremetrics "github.com/causewaylab/crossing/core/metrics"
	coremon "github.com/causewaylab/crossing/core/monitoring"
	"github.com/causewaylab/crossing/core/pipeline"
	"github.com/causewaylab/crossing/core/prediction"
	"github.com/causewaylab/crossing/core/record"
	coretraffic "github.com/causewaylab/crossing/core/traffic"
	"github.com/causewaylab/crossing/core/wait"
	"github.com/causewaylab/crossing/infra/logger"
	"github.com/causewaylab/crossing/infra/metrics"
	"github.com/causewaylab/crossing/infra/modelstore"
	"github.com/causewaylab/crossing/infra/monitoring"
	"github.com/causewaylab/crossing/infra/notify"
	infrarecord "github.com/causewaylab/crossing/infra/record"
	"github.com/causewaylab/crossing/infra/traffic"
	"github.com/causewaylab/crossing/infra/weather"
	"github.com/causewaylab/crossing/internal/eventbus"
)

// Service orchestrates the prediction engine and its adapters.
type Service struct {
	Engine *pipeline.Engine

	cfg      *config.Config
	store    record.Store
	bus      *eventbus.Bus[coremetrics.PredictionEvent]
	notifier *notify.Publisher
	monitor  coremon.Monitor
	router   http.Handler
	log      logger.Logger
}

// New creates a Service from the configuration. A missing or unreadable
// model artifact is not fatal; the engine then serves baseline fallback
// predictions.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	monitor, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}

	var sinks []coremetrics.PredictionSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.PredictionSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var mdl prediction.Model
	if mdl, err = modelstore.Load(ctx, cfg.Model, logger.New("modelstore")); err != nil {
		logg.Warnf("model load failed, serving baseline fallback: %v", err)
		monitor.CaptureException(err, map[string]string{"stage": "model_load"})
		mdl = nil
	}
	predictor := prediction.New(mdl, logger.New("predictor"))
	if rec, ok := sink.(coremetrics.ModelStateRecorder); ok {
		if err := rec.RecordModelLoaded(predictor.Loaded()); err != nil {
			logg.Warnf("record model state: %v", err)
		}
	}

	oracle := holiday.New()
	weatherSrc := weather.NewClient(cfg.Weather, logger.New("weather"))
	var weatherIface feature.WeatherSource
	if weatherSrc != nil {
		weatherIface = weatherSrc
	}
	engineer := feature.NewEngineer(oracle, weatherIface, logger.New("features"))

	bus := eventbus.New[coremetrics.PredictionEvent]()
	opts := []pipeline.Option{
		pipeline.WithMetrics(sink),
		pipeline.WithEventBus(bus),
		pipeline.WithMonitor(monitor),
	}
	if live := traffic.NewGoogleMapsSource(cfg.Traffic, logger.New("traffic")); live != nil {
		var src coretraffic.LiveSource = live
		opts = append(opts, pipeline.WithLiveTraffic(src))
	}
	engine := pipeline.New(engineer, predictor, wait.NewEstimator(), logger.New("pipeline"), opts...)

	store, err := openStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}

	var notifier *notify.Publisher
	if cfg.Alerts.Enabled {
		notifier, err = notify.NewPublisher(cfg.Alerts, logger.New("notify"))
		if err != nil {
			logg.Warnf("alert publisher unavailable: %v", err)
			notifier = nil
		}
	}

	lta := traffic.NewLTAClient(cfg.Traffic, logger.New("lta"))
	handler := api.NewHandler(engine, store, lta, logger.New("api"))

	return &Service{
		Engine:   engine,
		cfg:      cfg,
		store:    store,
		bus:      bus,
		notifier: notifier,
		monitor:  monitor,
		router:   api.NewRouter(handler),
		log:      logg,
	}, nil
}

func openStore(cfg config.StorageConfig) (record.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return infrarecord.NewSQLiteStore(cfg.Path)
	default:
		return infrarecord.NewJSONLStore(cfg.Path)
	}
}

// Handler exposes the HTTP router, used by tests.
func (s *Service) Handler() http.Handler { return s.router }

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.notifier != nil {
		go s.notifier.Listen(ctx, s.bus)
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.notifier != nil {
		s.notifier.Close()
	}
	s.monitor.Flush(2 * time.Second)
	return s.store.Close()
}
