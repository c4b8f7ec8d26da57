package collector

import (
	"context"
	"log/slog"
	"time"

	"cache-metrics-exporter/internal/model"
)

// Sink receives the finished snapshot once per cycle. The agent wraps the
// publisher with health bookkeeping behind this interface.
type Sink interface {
	Publish(snap model.Snapshot)
	CycleFailed(err error)
}

// Scheduler runs collection cycles on a fixed cadence. A cycle failure is
// logged and the next cycle proceeds on schedule; no two cycles overlap and
// no failure ever terminates the loop.
type Scheduler struct {
	logger    *slog.Logger
	collector *Collector
	sink      Sink
	interval  time.Duration
}

func NewScheduler(logger *slog.Logger, collector *Collector, sink Sink, interval time.Duration) *Scheduler {
	return &Scheduler{logger: logger, collector: collector, sink: sink, interval: interval}
}

func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

func (s *Scheduler) cycle(ctx context.Context) {
	start := time.Now()
	snap, err := s.collector.Collect(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("collection cycle failed", "error", err)
			s.sink.CycleFailed(err)
		}
		return
	}
	s.sink.Publish(snap)
	s.logger.Info("metrics updated",
		"nodes", len(snap.Nodes),
		"disks", len(snap.Disks),
		"duration", time.Since(start).Round(time.Millisecond),
	)
}
