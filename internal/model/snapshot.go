package model

import "time"

// NodeStats holds one cycle's sampled values for a single cache node.
// A node that could not be sampled is represented by the zero value.
type NodeStats struct {
	CacheBytesUsed uint64
	ObjectCount    uint64
	Hits           uint64
	Misses         uint64
}

// DiskStats holds one cycle's capacity readings for a physical mount.
type DiskStats struct {
	TotalBytes  uint64
	UsedBytes   uint64
	AvailBytes  uint64
	UsedPercent float64
}

// NetStats holds cumulative interface counters for a node's primary interface.
type NetStats struct {
	RxBytes   uint64
	RxPackets uint64
	TxBytes   uint64
	TxPackets uint64
}

// Snapshot is the immutable result of one collection cycle. It is built fresh
// each cycle and handed whole to the publisher; nothing mutates it afterwards.
type Snapshot struct {
	CollectedAt time.Time
	Nodes       map[int]NodeStats
	Disks       map[string]DiskStats
	Interfaces  map[string]NetStats
}

func NewSnapshot(at time.Time) Snapshot {
	return Snapshot{
		CollectedAt: at,
		Nodes:       make(map[int]NodeStats),
		Disks:       make(map[string]DiskStats),
		Interfaces:  make(map[string]NetStats),
	}
}
