package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"cache-metrics-exporter/internal/cli"
	"cache-metrics-exporter/internal/config"
	"cache-metrics-exporter/internal/model"
)

// Disk samples total/used/available capacity for each configured host mount
// via the host's df reporting.
type Disk struct {
	runner cli.Commander
	mounts []config.DiskMount
	logger *slog.Logger
}

func NewDisk(runner cli.Commander, mounts []config.DiskMount, logger *slog.Logger) *Disk {
	return &Disk{runner: runner, mounts: mounts, logger: logger}
}

// Sample returns one DiskStats per configured mount label. An unreadable or
// unmounted path records all-zero stats; it never drops the label or errors.
func (s *Disk) Sample(ctx context.Context) map[string]model.DiskStats {
	out := make(map[string]model.DiskStats, len(s.mounts))
	for _, m := range s.mounts {
		stats, err := s.sampleMount(ctx, m.Path)
		if err != nil {
			s.logger.Warn("disk sampling failed", "disk", m.Label, "path", m.Path, "error", err)
			stats = model.DiskStats{}
		}
		out[m.Label] = stats
	}
	return out
}

func (s *Disk) sampleMount(ctx context.Context, path string) (model.DiskStats, error) {
	out, err := s.runner.Output(ctx, "df", "-B1", path)
	if err != nil {
		return model.DiskStats{}, err
	}
	return parseDiskFree(out)
}

// parseDiskFree reads the last line of df -B1 output:
// "Filesystem 1B-blocks Used Available Use% Mounted on".
func parseDiskFree(out string) (model.DiskStats, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	fields := strings.Fields(last)
	if len(fields) < 4 {
		return model.DiskStats{}, fmt.Errorf("short df output %q", last)
	}

	total, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return model.DiskStats{}, fmt.Errorf("parse df total %q: %w", fields[1], err)
	}
	used, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return model.DiskStats{}, fmt.Errorf("parse df used %q: %w", fields[2], err)
	}
	avail, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return model.DiskStats{}, fmt.Errorf("parse df available %q: %w", fields[3], err)
	}

	stats := model.DiskStats{TotalBytes: total, UsedBytes: used, AvailBytes: avail}
	if total > 0 {
		stats.UsedPercent = float64(used) / float64(total) * 100
	}
	return stats, nil
}
