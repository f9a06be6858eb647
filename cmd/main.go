package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/gavel/internal/adapters/http/api"
	"github.com/okian/gavel/internal/adapters/mq/queue"
	"github.com/okian/gavel/internal/adapters/repository"
	"github.com/okian/gavel/internal/app"
	"github.com/okian/gavel/internal/config"
	"github.com/okian/gavel/internal/domain/model"
	"github.com/okian/gavel/internal/domain/noise"
	"github.com/okian/gavel/internal/domain/rank"
	"github.com/okian/gavel/internal/domain/rules"
	"github.com/okian/gavel/pkg/logger"
	"github.com/okian/gavel/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	routing := make(map[model.Category]string, len(cfg.ModuleRouting))
	for category, moduleID := range cfg.ModuleRouting {
		routing[model.Category(category)] = moduleID
	}

	store := repository.NewInMemoryStore()
	pipeline := app.New(
		app.WithLogger(loggerInstance),
		app.WithFilter(noise.New(
			noise.WithNoiseFloor(cfg.NoiseFloor),
			noise.WithSignalFloor(cfg.SignalFloor),
			noise.WithDupeWindow(time.Duration(cfg.DupeWindowHours)*time.Hour),
			noise.WithDupeSimilarity(cfg.DupeSimilarity),
		)),
		app.WithRanker(rank.New(
			rank.WithSelectionFraction(cfg.SelectionFraction),
			rank.WithProposalFloor(cfg.ProposalFloor),
			rank.WithModuleRouting(routing, ""),
		)),
		app.WithEngine(rules.New(
			rules.WithCoolingOff(time.Duration(cfg.CoolingOffHours)*time.Hour),
			rules.WithScarcityCap(cfg.ScarcityCap),
			rules.WithSignalFloor(cfg.SignalFloor),
		)),
		app.WithSource(store),
		app.WithQueue(queue.NewInMemoryQueue(queue.WithCapacity(cfg.QueueSize))),
	)

	// Keep queue depth visible between batches.
	go startServiceMetricsUpdater(ctx, pipeline)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	apiServer := api.NewServer(pipeline, store, pipeline)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater refreshes queue gauges between batches.
func startServiceMetricsUpdater(ctx context.Context, pipeline *app.Pipeline) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateQueueSize(pipeline.QueueLen(ctx))
		}
	}
}
