package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const HardcodedVersion string = "V1.0"

// DiskMount binds a disk label to its host mount path. Order is preserved
// from configuration so metric iteration stays deterministic.
type DiskMount struct {
	Label string
	Path  string
}

type Config struct {
	ListenAddr       string
	ScrapeInterval   time.Duration
	NodeCount        int
	ContainerPrefix  string
	NodeNamePrefix   string
	CachePathPrefix  string
	DefaultSlots     int
	LogTailLines     int
	HitMarker        string
	MissMarker       string
	NodeCeilingBytes uint64
	DiskMounts       []DiskMount
	Interface        string
	DockerBin        string
	ExecTimeout      time.Duration
	ShutdownTimeout  time.Duration
	LogJSON          bool
	LogLevel         string
	Version          string
}

func Load() (Config, error) {
	cfg := Config{
		ListenAddr:       env("CACHE_EXPORTER_LISTEN_ADDR", ":9199"),
		ScrapeInterval:   envDuration("CACHE_EXPORTER_SCRAPE_INTERVAL", 30*time.Second),
		NodeCount:        envInt("CACHE_EXPORTER_NODE_COUNT", 4),
		ContainerPrefix:  env("CACHE_EXPORTER_CONTAINER_PREFIX", "cache-node-"),
		NodeNamePrefix:   env("CACHE_EXPORTER_NODE_NAME_PREFIX", "cache-node-"),
		CachePathPrefix:  env("CACHE_EXPORTER_CACHE_PATH_PREFIX", "/cache/disk"),
		DefaultSlots:     envInt("CACHE_EXPORTER_DEFAULT_SLOTS", 4),
		LogTailLines:     envInt("CACHE_EXPORTER_LOG_TAIL_LINES", 1000),
		HitMarker:        env("CACHE_EXPORTER_HIT_MARKER", "CacheStatus=HIT"),
		MissMarker:       env("CACHE_EXPORTER_MISS_MARKER", "CacheStatus=MISS"),
		NodeCeilingBytes: envUint("CACHE_EXPORTER_NODE_CEILING_BYTES", 10*1024*1024*1024),
		DiskMounts:       envMounts("CACHE_EXPORTER_DISK_MOUNTS", defaultMounts()),
		Interface:        env("CACHE_EXPORTER_INTERFACE", "eth0"),
		DockerBin:        env("CACHE_EXPORTER_DOCKER_BIN", "docker"),
		ExecTimeout:      envDuration("CACHE_EXPORTER_EXEC_TIMEOUT", 10*time.Second),
		ShutdownTimeout:  envDuration("CACHE_EXPORTER_SHUTDOWN_TIMEOUT", 20*time.Second),
		LogJSON:          envBool("CACHE_EXPORTER_LOG_JSON", false),
		LogLevel:         strings.ToLower(env("CACHE_EXPORTER_LOG_LEVEL", "info")),
		Version:          HardcodedVersion,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("CACHE_EXPORTER_LISTEN_ADDR is required")
	}
	if c.ScrapeInterval <= 0 {
		return errors.New("CACHE_EXPORTER_SCRAPE_INTERVAL must be > 0")
	}
	if c.NodeCount <= 0 {
		return errors.New("CACHE_EXPORTER_NODE_COUNT must be > 0")
	}
	if strings.TrimSpace(c.ContainerPrefix) == "" {
		return errors.New("CACHE_EXPORTER_CONTAINER_PREFIX is required")
	}
	if strings.TrimSpace(c.CachePathPrefix) == "" {
		return errors.New("CACHE_EXPORTER_CACHE_PATH_PREFIX is required")
	}
	if c.DefaultSlots <= 0 {
		return errors.New("CACHE_EXPORTER_DEFAULT_SLOTS must be > 0")
	}
	if c.LogTailLines <= 0 {
		return errors.New("CACHE_EXPORTER_LOG_TAIL_LINES must be > 0")
	}
	if c.ExecTimeout <= 0 {
		return errors.New("CACHE_EXPORTER_EXEC_TIMEOUT must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("CACHE_EXPORTER_SHUTDOWN_TIMEOUT must be > 0")
	}
	if len(c.DiskMounts) == 0 {
		return errors.New("CACHE_EXPORTER_DISK_MOUNTS must name at least one mount")
	}
	for _, m := range c.DiskMounts {
		if m.Label == "" || m.Path == "" {
			return fmt.Errorf("invalid disk mount %q=%q", m.Label, m.Path)
		}
	}
	return nil
}

// NodeName returns the exposed label value for a node ordinal.
func (c Config) NodeName(ordinal int) string {
	return fmt.Sprintf("%s%d", c.NodeNamePrefix, ordinal)
}

// ContainerName returns the convention-derived container handle for a node
// ordinal, used by samplers that run even when discovery misses the node.
func (c Config) ContainerName(ordinal int) string {
	return fmt.Sprintf("%s%d", c.ContainerPrefix, ordinal)
}

func defaultMounts() []DiskMount {
	return []DiskMount{
		{Label: "disk1", Path: "/mnt/disk1"},
		{Label: "disk2", Path: "/mnt/disk2"},
		{Label: "disk3", Path: "/mnt/disk3"},
		{Label: "disk4", Path: "/mnt/disk4"},
	}
}

func envMounts(key string, fallback []DiskMount) []DiskMount {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []DiskMount
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		label, path, ok := strings.Cut(pair, "=")
		if !ok {
			return fallback
		}
		out = append(out, DiskMount{Label: strings.TrimSpace(label), Path: strings.TrimSpace(path)})
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envUint(key string, fallback uint64) uint64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	u, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return u
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
