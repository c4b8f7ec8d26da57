package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"cache-metrics-exporter/internal/cli"
	"cache-metrics-exporter/internal/model"
)

// Cache samples one node's cache occupancy, object count, and recent hit/miss
// activity by running commands inside the node's container.
type Cache struct {
	client       cli.ContainerClient
	pathPrefix   string
	defaultSlots int
	tailLines    int
	hitMarker    string
	missMarker   string
	logger       *slog.Logger
}

type CacheOptions struct {
	PathPrefix   string
	DefaultSlots int
	TailLines    int
	HitMarker    string
	MissMarker   string
}

func NewCache(client cli.ContainerClient, opts CacheOptions, logger *slog.Logger) *Cache {
	return &Cache{
		client:       client,
		pathPrefix:   opts.PathPrefix,
		defaultSlots: opts.DefaultSlots,
		tailLines:    opts.TailLines,
		hitMarker:    opts.HitMarker,
		missMarker:   opts.MissMarker,
		logger:       logger,
	}
}

// Sample never returns an error: a node whose commands fail degrades to the
// zero-value record so the remaining nodes still get sampled this cycle.
func (s *Cache) Sample(ctx context.Context, node Node) model.NodeStats {
	var stats model.NodeStats

	for _, slot := range s.discoverSlots(ctx, node) {
		if used, err := s.slotUsedBytes(ctx, node, slot); err != nil {
			s.logger.Warn("cache size sampling failed", "container", node.Container, "slot", slot, "error", err)
		} else {
			stats.CacheBytesUsed += used
		}

		if count, err := s.slotFileCount(ctx, node, slot); err != nil {
			s.logger.Warn("object count sampling failed", "container", node.Container, "slot", slot, "error", err)
		} else {
			stats.ObjectCount += count
		}
	}

	hits, misses, err := s.tailHitMiss(ctx, node)
	if err != nil {
		s.logger.Warn("log tail sampling failed", "container", node.Container, "error", err)
	} else {
		stats.Hits, stats.Misses = hits, misses
	}
	return stats
}

// discoverSlots lists the numbered storage slots under the path prefix. When
// discovery yields nothing (slot layout changed, ls unavailable) it falls back
// to the fixed default set so a discovery failure degrades gracefully instead
// of silently reporting zero.
func (s *Cache) discoverSlots(ctx context.Context, node Node) []string {
	out, err := s.client.Exec(ctx, node.Container, "sh", "-c", "ls -d "+s.pathPrefix+"* 2>/dev/null")
	if err == nil {
		var slots []string
		for _, line := range strings.Split(out, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, s.pathPrefix) {
				continue
			}
			if _, convErr := strconv.Atoi(line[len(s.pathPrefix):]); convErr == nil {
				slots = append(slots, line)
			}
		}
		if len(slots) > 0 {
			return slots
		}
	}

	slots := make([]string, 0, s.defaultSlots)
	for i := 1; i <= s.defaultSlots; i++ {
		slots = append(slots, fmt.Sprintf("%s%d", s.pathPrefix, i))
	}
	return slots
}

func (s *Cache) slotUsedBytes(ctx context.Context, node Node, slot string) (uint64, error) {
	out, err := s.client.Exec(ctx, node.Container, "du", "-sb", slot)
	if err != nil {
		return 0, err
	}
	// du output is "size<tab>path"; the first field is the byte count.
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty du output for %s", slot)
	}
	used, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse du output %q: %w", fields[0], err)
	}
	return used, nil
}

func (s *Cache) slotFileCount(ctx context.Context, node Node, slot string) (uint64, error) {
	out, err := s.client.Exec(ctx, node.Container, "sh", "-c", "find "+slot+" -type f | wc -l")
	if err != nil {
		return 0, err
	}
	count, err := strconv.ParseUint(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse file count %q: %w", out, err)
	}
	return count, nil
}

// tailHitMiss counts hit and miss markers in a bounded tail of the node's log,
// so the counts reflect recent behavior at a fixed cost per cycle.
func (s *Cache) tailHitMiss(ctx context.Context, node Node) (hits, misses uint64, err error) {
	out, err := s.client.Logs(ctx, node.Container, s.tailLines)
	if err != nil {
		return 0, 0, err
	}
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, s.hitMarker):
			hits++
		case strings.Contains(line, s.missMarker):
			misses++
		}
	}
	return hits, misses, nil
}
