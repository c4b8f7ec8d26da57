package sampler

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"cache-metrics-exporter/internal/cli"
)

// Node is one live cache instance: the ordinal it exposes metrics under and
// the container handle commands run against.
type Node struct {
	Ordinal   int
	Container string
}

// Discoverer lists the currently running cache-node containers and derives a
// stable ordinal for each from its name.
type Discoverer struct {
	client cli.ContainerClient
	prefix string
	logger *slog.Logger
}

func NewDiscoverer(client cli.ContainerClient, prefix string, logger *slog.Logger) *Discoverer {
	return &Discoverer{client: client, prefix: prefix, logger: logger}
}

// Discover returns the live nodes sorted by ordinal. Zero live instances is a
// valid result, not an error; a name that cannot be parsed is skipped so one
// bad handle never aborts discovery of the rest.
func (d *Discoverer) Discover(ctx context.Context) ([]Node, error) {
	names, err := d.client.ListContainers(ctx, d.prefix)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(names))
	for _, name := range names {
		ordinal, ok := parseOrdinal(name, d.prefix)
		if !ok {
			d.logger.Warn("skipping container with unparsable name", "container", name)
			continue
		}
		nodes = append(nodes, Node{Ordinal: ordinal, Container: name})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Ordinal < nodes[j].Ordinal })
	return nodes, nil
}

// parseOrdinal extracts the numeric token following the prefix, e.g.
// "project-cache-node-2-1" with prefix "cache-node-" yields 2.
func parseOrdinal(name, prefix string) (int, bool) {
	_, rest, ok := strings.Cut(name, prefix)
	if !ok {
		return 0, false
	}
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
