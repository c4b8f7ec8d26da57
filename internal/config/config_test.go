package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9199", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.ScrapeInterval)
	assert.Equal(t, 4, cfg.NodeCount)
	assert.Equal(t, "cache-node-", cfg.ContainerPrefix)
	assert.Equal(t, "/cache/disk", cfg.CachePathPrefix)
	assert.Equal(t, 4, cfg.DefaultSlots)
	assert.Equal(t, 1000, cfg.LogTailLines)
	assert.Equal(t, uint64(10*1024*1024*1024), cfg.NodeCeilingBytes)
	assert.Equal(t, "eth0", cfg.Interface)
	assert.Len(t, cfg.DiskMounts, 4)
	assert.Equal(t, DiskMount{Label: "disk1", Path: "/mnt/disk1"}, cfg.DiskMounts[0])
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CACHE_EXPORTER_LISTEN_ADDR", ":9300")
	t.Setenv("CACHE_EXPORTER_SCRAPE_INTERVAL", "10s")
	t.Setenv("CACHE_EXPORTER_NODE_COUNT", "2")
	t.Setenv("CACHE_EXPORTER_NODE_CEILING_BYTES", "1000000")
	t.Setenv("CACHE_EXPORTER_DISK_MOUNTS", "fast=/mnt/fast, slow=/mnt/slow")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9300", cfg.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.ScrapeInterval)
	assert.Equal(t, 2, cfg.NodeCount)
	assert.Equal(t, uint64(1000000), cfg.NodeCeilingBytes)
	require.Len(t, cfg.DiskMounts, 2)
	assert.Equal(t, DiskMount{Label: "fast", Path: "/mnt/fast"}, cfg.DiskMounts[0])
	assert.Equal(t, DiskMount{Label: "slow", Path: "/mnt/slow"}, cfg.DiskMounts[1])
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_EXPORTER_NODE_COUNT", "not-a-number")
	t.Setenv("CACHE_EXPORTER_SCRAPE_INTERVAL", "soon")
	t.Setenv("CACHE_EXPORTER_DISK_MOUNTS", "no-equals-sign")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.NodeCount)
	assert.Equal(t, 30*time.Second, cfg.ScrapeInterval)
	assert.Len(t, cfg.DiskMounts, 4)
}

func TestValidate(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	cfg := base
	cfg.NodeCount = 0
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.ScrapeInterval = 0
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.DiskMounts = nil
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.DiskMounts = []DiskMount{{Label: "", Path: "/mnt/disk1"}}
	assert.Error(t, cfg.Validate())
}

func TestNodeAndContainerNames(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cache-node-3", cfg.NodeName(3))
	assert.Equal(t, "cache-node-3", cfg.ContainerName(3))
}
