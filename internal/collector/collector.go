package collector

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cache-metrics-exporter/internal/config"
	"cache-metrics-exporter/internal/model"
	"cache-metrics-exporter/internal/sampler"
)

// Collector runs the four samplers for one cycle and joins their results into
// an immutable snapshot. Sampling fans out per node and per mount; the join
// completes before the snapshot is handed to the publisher, so publish order
// is unaffected by the concurrency.
type Collector struct {
	logger     *slog.Logger
	discoverer *sampler.Discoverer
	cache      *sampler.Cache
	disk       *sampler.Disk
	network    *sampler.Network
	cfg        config.Config
}

func New(
	logger *slog.Logger,
	discoverer *sampler.Discoverer,
	cache *sampler.Cache,
	disk *sampler.Disk,
	network *sampler.Network,
	cfg config.Config,
) *Collector {
	return &Collector{
		logger:     logger,
		discoverer: discoverer,
		cache:      cache,
		disk:       disk,
		network:    network,
		cfg:        cfg,
	}
}

func (c *Collector) Collect(ctx context.Context) (model.Snapshot, error) {
	snap := model.NewSnapshot(time.Now().UTC())

	nodes, err := c.discoverer.Discover(ctx)
	if err != nil {
		// Discovery failure degrades to an empty node set; the publisher
		// zero-fills every configured ordinal either way.
		c.logger.Warn("node discovery failed", "error", err)
		nodes = nil
	}

	nodeStats := make([]model.NodeStats, len(nodes))
	netStats := make([]model.NetStats, c.cfg.NodeCount)
	var diskStats map[string]model.DiskStats

	g, gctx := errgroup.WithContext(ctx)
	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			nodeStats[i] = c.cache.Sample(gctx, node)
			return nil
		})
	}
	for ordinal := 1; ordinal <= c.cfg.NodeCount; ordinal++ {
		ordinal := ordinal
		g.Go(func() error {
			netStats[ordinal-1] = c.network.Sample(gctx, c.cfg.ContainerName(ordinal))
			return nil
		})
	}
	g.Go(func() error {
		diskStats = c.disk.Sample(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}

	for i, node := range nodes {
		snap.Nodes[node.Ordinal] = nodeStats[i]
	}
	for ordinal := 1; ordinal <= c.cfg.NodeCount; ordinal++ {
		snap.Interfaces[c.cfg.NodeName(ordinal)] = netStats[ordinal-1]
	}
	snap.Disks = diskStats
	return snap, nil
}
