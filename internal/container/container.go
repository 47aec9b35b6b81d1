package container

import (
	"listingdash/adapters/excel"
	"listingdash/app"
	"listingdash/internal"
	"listingdash/internal/config"
	"listingdash/internal/dataset"
	"listingdash/internal/errors"
	"listingdash/internal/panels"
	"listingdash/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Loader    *dataset.Loader
	Exporter  ports.ViewExporter
	Panels    panels.Options
	Dashboard *app.DashboardService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	loader := dataset.NewLoader(cfg.Data.CandidatePaths, logger)
	opts := panels.Options{
		MapSampleSize: cfg.Map.SampleSize,
		MapSampleSeed: cfg.Map.SampleSeed,
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Loader:    loader,
		Exporter:  excel.NewViewWriter(),
		Panels:    opts,
		Dashboard: app.NewDashboardService(loader, opts, logger),
	}

	logger.Info("Container initialized with dataset candidates %v", cfg.Data.CandidatePaths)
	return c, nil
}
