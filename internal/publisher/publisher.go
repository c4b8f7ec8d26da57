package publisher

import (
	"github.com/prometheus/client_golang/prometheus"

	"cache-metrics-exporter/internal/config"
	"cache-metrics-exporter/internal/model"
)

// Label values reserved for derived series, alongside the per-node names.
const (
	nodeAll      = "all"
	nodePhysical = "physical"
	diskCache    = "cache"
	diskTotal    = "total"
)

// Publisher is the sole writer of the exposed metric registry. Each cycle it
// overwrites every labeled series from the snapshot; the scrape transport only
// ever reads. Every configured node ordinal gets a full set of series each
// cycle, zero-filled when the node produced no data, so dashboards never see
// missing series after a restart.
type Publisher struct {
	cfg      config.Config
	registry *prometheus.Registry

	usedBytes    *prometheus.GaugeVec
	totalBytes   *prometheus.GaugeVec
	usagePercent *prometheus.GaugeVec
	objectCount  *prometheus.GaugeVec
	hits         *prometheus.GaugeVec
	misses       *prometheus.GaugeVec
	hitRatio     *prometheus.GaugeVec
	rxBytes      *prometheus.GaugeVec
	txBytes      *prometheus.GaugeVec
	rxPackets    *prometheus.GaugeVec
	txPackets    *prometheus.GaugeVec
}

func New(cfg config.Config) *Publisher {
	p := &Publisher{
		cfg:      cfg,
		registry: prometheus.NewRegistry(),
		usedBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cache_disk_used_bytes", Help: "Bytes used in cache",
		}, []string{"node", "disk"}),
		totalBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cache_disk_total_bytes", Help: "Total cache capacity in bytes",
		}, []string{"node", "disk"}),
		usagePercent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cache_disk_usage_percent", Help: "Cache disk usage percentage",
		}, []string{"node", "disk"}),
		objectCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cache_object_count", Help: "Number of cached objects",
		}, []string{"node"}),
		hits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cache_hits_total", Help: "Cache hits observed in the sampled log window",
		}, []string{"node"}),
		misses: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cache_misses_total", Help: "Cache misses observed in the sampled log window",
		}, []string{"node"}),
		hitRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cache_hit_ratio", Help: "Cache hit ratio percentage",
		}, []string{"node"}),
		rxBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "network_interface_rx_bytes", Help: "Network interface received bytes",
		}, []string{"interface"}),
		txBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "network_interface_tx_bytes", Help: "Network interface transmitted bytes",
		}, []string{"interface"}),
		rxPackets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "network_interface_rx_packets", Help: "Network interface received packets",
		}, []string{"interface"}),
		txPackets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "network_interface_tx_packets", Help: "Network interface transmitted packets",
		}, []string{"interface"}),
	}
	p.registry.MustRegister(
		p.usedBytes, p.totalBytes, p.usagePercent, p.objectCount,
		p.hits, p.misses, p.hitRatio,
		p.rxBytes, p.txBytes, p.rxPackets, p.txPackets,
	)
	return p
}

// Registry exposes the metric set for the scrape transport.
func (p *Publisher) Registry() *prometheus.Registry {
	return p.registry
}

// Publish overwrites the registry with one cycle's snapshot.
func (p *Publisher) Publish(snap model.Snapshot) {
	var totalUsed, totalHits, totalMisses uint64

	for ordinal := 1; ordinal <= p.cfg.NodeCount; ordinal++ {
		if _, ok := snap.Nodes[ordinal]; ok {
			continue
		}
		// Absent node: keep its whole label set alive with zeros, the
		// ceiling included.
		p.publishNode(p.cfg.NodeName(ordinal), model.NodeStats{}, 0)
	}

	for ordinal, stats := range snap.Nodes {
		p.publishNode(p.cfg.NodeName(ordinal), stats, p.cfg.NodeCeilingBytes)
		totalUsed += stats.CacheBytesUsed
		totalHits += stats.Hits
		totalMisses += stats.Misses
	}

	var physicalTotal uint64
	for label, stats := range snap.Disks {
		p.usedBytes.WithLabelValues(nodePhysical, label).Set(float64(stats.UsedBytes))
		p.totalBytes.WithLabelValues(nodePhysical, label).Set(float64(stats.TotalBytes))
		p.usagePercent.WithLabelValues(nodePhysical, label).Set(stats.UsedPercent)
		physicalTotal += stats.TotalBytes
	}

	// Aggregate: node usage compared against shared physical capacity, not
	// the sum of per-node ceilings.
	p.usedBytes.WithLabelValues(nodeAll, diskTotal).Set(float64(totalUsed))
	p.totalBytes.WithLabelValues(nodeAll, diskTotal).Set(float64(physicalTotal))
	p.usagePercent.WithLabelValues(nodeAll, diskTotal).Set(percent(totalUsed, physicalTotal))
	p.hits.WithLabelValues(nodeAll).Set(float64(totalHits))
	p.misses.WithLabelValues(nodeAll).Set(float64(totalMisses))
	p.hitRatio.WithLabelValues(nodeAll).Set(percent(totalHits, totalHits+totalMisses))

	for iface, stats := range snap.Interfaces {
		p.rxBytes.WithLabelValues(iface).Set(float64(stats.RxBytes))
		p.txBytes.WithLabelValues(iface).Set(float64(stats.TxBytes))
		p.rxPackets.WithLabelValues(iface).Set(float64(stats.RxPackets))
		p.txPackets.WithLabelValues(iface).Set(float64(stats.TxPackets))
	}
}

func (p *Publisher) publishNode(name string, stats model.NodeStats, ceiling uint64) {
	p.usedBytes.WithLabelValues(name, diskCache).Set(float64(stats.CacheBytesUsed))
	p.totalBytes.WithLabelValues(name, diskCache).Set(float64(ceiling))
	p.usagePercent.WithLabelValues(name, diskCache).Set(percent(stats.CacheBytesUsed, ceiling))
	p.objectCount.WithLabelValues(name).Set(float64(stats.ObjectCount))
	p.hits.WithLabelValues(name).Set(float64(stats.Hits))
	p.misses.WithLabelValues(name).Set(float64(stats.Misses))
	p.hitRatio.WithLabelValues(name).Set(percent(stats.Hits, stats.Hits+stats.Misses))
}

// percent always guards on the denominator, so a node with a zero ceiling
// reports 0 instead of dividing by zero.
func percent(num, den uint64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
