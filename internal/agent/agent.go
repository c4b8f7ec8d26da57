package agent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cache-metrics-exporter/internal/cli"
	"cache-metrics-exporter/internal/collector"
	"cache-metrics-exporter/internal/config"
	"cache-metrics-exporter/internal/publisher"
	"cache-metrics-exporter/internal/sampler"
)

type Agent struct {
	cfg       config.Config
	logger    *slog.Logger
	scheduler *collector.Scheduler
	server    *http.Server
	health    *HealthStatus
}

func New(cfg config.Config, logger *slog.Logger) *Agent {
	runner := cli.NewRunner(cfg.ExecTimeout)
	docker := cli.NewDocker(cfg.DockerBin, runner)

	discoverer := sampler.NewDiscoverer(docker, cfg.ContainerPrefix, logger)
	cache := sampler.NewCache(docker, sampler.CacheOptions{
		PathPrefix:   cfg.CachePathPrefix,
		DefaultSlots: cfg.DefaultSlots,
		TailLines:    cfg.LogTailLines,
		HitMarker:    cfg.HitMarker,
		MissMarker:   cfg.MissMarker,
	}, logger)
	disk := sampler.NewDisk(runner, cfg.DiskMounts, logger)
	network := sampler.NewNetwork(docker, cfg.Interface, logger)

	pub := publisher.New(cfg)
	health := NewHealthStatus()
	coll := collector.New(logger, discoverer, cache, disk, network, cfg)
	scheduler := collector.NewScheduler(logger, coll, &healthSink{sink: pub, health: health}, cfg.ScrapeInterval)

	return &Agent{
		cfg:       cfg,
		logger:    logger,
		scheduler: scheduler,
		server:    newServer(cfg.ListenAddr, pub.Registry(), health),
		health:    health,
	}
}

func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("starting cache-metrics-exporter",
		"version", a.cfg.Version,
		"addr", a.cfg.ListenAddr,
		"interval", a.cfg.ScrapeInterval,
		"nodes", a.cfg.NodeCount,
	)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- a.run(runCtx)
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case runErr = <-runErrCh:
		// Agent terminated by itself (startup error/runtime error/parent ctx canceled).
	case sig := <-sigCh:
		a.logger.Info("shutdown signal received, starting graceful shutdown", "signal", sig.String(), "timeout", a.cfg.ShutdownTimeout)
		cancelRun()

		graceTimer := time.NewTimer(a.cfg.ShutdownTimeout)
		defer graceTimer.Stop()

		select {
		case runErr = <-runErrCh:
			// graceful stop completed in time
		case sig2 := <-sigCh:
			a.logger.Warn("second signal received, forcing immediate shutdown", "signal", sig2.String())
			runErr = context.Canceled
		case <-graceTimer.C:
			a.logger.Warn("graceful shutdown timeout reached, forcing shutdown", "timeout", a.cfg.ShutdownTimeout)
			runErr = context.DeadlineExceeded
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}
	a.logger.Info("cache-metrics-exporter stopped")
	return nil
}

func BuildLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	hOpts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, hOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, hOpts))
}
