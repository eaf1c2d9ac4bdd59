// Package app wires the collaborators around the computation engine: flow
// acquisition, sample parsing, the pipeline itself, and the optional CSV and
// HTTP output surfaces.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/crestgauge/loadduration/internal/export"
	"github.com/crestgauge/loadduration/internal/ldc"
	"github.com/crestgauge/loadduration/internal/log"
	"github.com/crestgauge/loadduration/internal/nwis"
	"github.com/crestgauge/loadduration/internal/server"
	"github.com/crestgauge/loadduration/internal/wqx"
	"github.com/crestgauge/loadduration/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run fetches the inputs, executes the computation, writes any configured CSV
// output, and, when an HTTP endpoint is configured, serves the tables until a
// shutdown signal arrives.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res, err := a.compute(ctx)
	if err != nil {
		return err
	}

	if a.cfg.Export != nil {
		if a.cfg.Export.RegimeFile != "" {
			if err := export.WriteRegimeFile(a.cfg.Export.RegimeFile, res.Regimes); err != nil {
				return err
			}
			log.Infof("wrote regime summary to %s", a.cfg.Export.RegimeFile)
		}
		if a.cfg.Export.CurveFile != "" {
			if err := export.WriteCurveFile(a.cfg.Export.CurveFile, res.Curve); err != nil {
				return err
			}
			log.Infof("wrote load table to %s", a.cfg.Export.CurveFile)
		}
	}

	if a.cfg.HTTP == nil {
		log.Info("no HTTP endpoint configured; done")
		return nil
	}

	ctrl := server.NewController(ctx, &wg, *a.cfg.HTTP, a.logger)
	ctrl.SetResult(res)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- ctrl.StartController()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	cancel()
	wg.Wait()
	log.Info("shutdown complete")
	return nil
}

func (a *App) compute(ctx context.Context) (*ldc.Result, error) {
	start, end, err := a.cfg.DateRange()
	if err != nil {
		return nil, err
	}

	client := nwis.NewClient(a.cfg.FlowSource.Endpoint, a.logger)
	flows, err := client.FetchDailyFlow(ctx, a.cfg.Site.FlowSiteID, start, end)
	if err != nil {
		return nil, err
	}

	parser := wqx.NewParser(a.logger)
	parser.DateColumn = a.cfg.Samples.DateColumn
	parser.ResultColumn = a.cfg.Samples.ResultColumn
	parser.Characteristic = a.cfg.Samples.Characteristic
	parser.CharacteristicColumn = a.cfg.Samples.CharacteristicColumn
	if a.cfg.Samples.TabDelimited {
		parser.Comma = '\t'
	}
	samples, err := parser.ParseFile(a.cfg.Samples.File)
	if err != nil {
		return nil, err
	}

	k := a.cfg.Standard.ConversionFactor
	if k == 0 {
		k = ldc.DefaultConversionFactor
	}
	conv, err := ldc.NewConverter(a.cfg.Standard.Value, k)
	if err != nil {
		return nil, err
	}

	pipeline := ldc.NewPipeline(conv, a.cfg.Site.FlowSiteID, a.logger)
	return pipeline.Run(ctx, flows, samples)
}
