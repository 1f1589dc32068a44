// cmd/assessment-runner/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"assessment-runner/internal/common/config"
	httpclient "assessment-runner/internal/common/http"
	"assessment-runner/internal/common/logger"
	"assessment-runner/internal/common/metrics"
	"assessment-runner/internal/common/observability"
	"assessment-runner/internal/orchestrator"
)

const shutdownTimeout = 5 * time.Second

// main always exits 0; every failure ends up in the log.
func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error("config load failed", zap.Error(err))
		bootLog.Sync()
		return
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	if cfg.EnvFile != "" {
		zapLog.Debug("loaded env file", zap.String("path", cfg.EnvFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	var obs *observability.Observability
	if cfg.Observability.Enabled {
		obs, err = observability.New(observability.Options{
			ServiceName: cfg.Observability.ServiceName,
			Registerer:  registry,
		})
		if err != nil {
			zapLog.Warn("observability disabled", zap.Error(err))
			obs = nil
		}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			zapLog.Warn("observability shutdown failed", zap.Error(err))
		}
	}()

	client := httpclient.NewClient(config.GetDuration(cfg.Assessment.HTTPTimeout))
	defer client.CloseIdleConnections()

	acquirer, submitter, err := buildSteps(cfg, log, client)
	if err != nil {
		zapLog.Error("step config invalid", zap.Error(err))
		return
	}

	runner := orchestrator.New(orchestrator.Dependencies{
		Logger:        log,
		Acquirer:      acquirer,
		Submitter:     submitter,
		Metrics:       recorder,
		Observability: obs,
	}, orchestrator.ConfigFrom(cfg))

	result := runner.Run(ctx)
	result.Log(log)

	snapshot, err := metrics.Snapshot(registry)
	if err != nil {
		zapLog.Warn("metrics snapshot failed", zap.Error(err))
		return
	}
	log.Debug("run metrics", snapshot)
}
