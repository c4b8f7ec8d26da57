package sampler

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"cache-metrics-exporter/internal/cli"
	"cache-metrics-exporter/internal/model"
)

// Network reads a node's cumulative interface counters from the kernel's
// interface-statistics pseudo-file inside the container.
type Network struct {
	client cli.ContainerClient
	iface  string
	logger *slog.Logger
}

func NewNetwork(client cli.ContainerClient, iface string, logger *slog.Logger) *Network {
	return &Network{client: client, iface: iface, logger: logger}
}

// Sample reads /proc/net/dev for the given container handle. It is called by
// naming convention for every configured ordinal, whether or not discovery saw
// the node; a down node degrades to zero counters.
func (s *Network) Sample(ctx context.Context, container string) model.NetStats {
	out, err := s.client.Exec(ctx, container, "cat", "/proc/net/dev")
	if err != nil {
		s.logger.Warn("network sampling failed", "container", container, "error", err)
		return model.NetStats{}
	}
	return parseNetDev(out, s.iface)
}

// parseNetDev locates the named interface line and extracts the fixed-position
// counters: field 0 rx_bytes, 1 rx_packets, 8 tx_bytes, 9 tx_packets.
// Malformed or short lines yield zeros.
func parseNetDev(out, iface string) model.NetStats {
	for _, line := range strings.Split(out, "\n") {
		name, counters, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(name) != iface {
			continue
		}
		fields := strings.Fields(counters)
		if len(fields) < 10 {
			return model.NetStats{}
		}
		return model.NetStats{
			RxBytes:   parseCounter(fields[0]),
			RxPackets: parseCounter(fields[1]),
			TxBytes:   parseCounter(fields[8]),
			TxPackets: parseCounter(fields[9]),
		}
	}
	return model.NetStats{}
}

func parseCounter(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
