// Package config carries the system-wide settings that were compile-time
// constants in embedded builds, with an optional YAML overlay for
// simulation runs.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Version is the operating-system shim version string.
const Version = "1.0.0"

type Config struct {
	// Task scheduler settings.
	MaxTasks         int `yaml:"maxTasks"`
	DefaultStackSize int `yaml:"defaultStackSize"`

	// Memory management settings.
	MaxMemoryBlocks int `yaml:"maxMemoryBlocks"`
	MemoryAlignment int `yaml:"memoryAlignment"`
	HeapSize        int `yaml:"heapSize"`

	// HealthyThresholdBytes is the free-heap level below which the kernel
	// reports the system as unhealthy.
	HealthyThresholdBytes int `yaml:"healthyThresholdBytes"`

	// LockTimeoutMs bounds every lock acquisition in the kernel core.
	LockTimeoutMs int `yaml:"lockTimeoutMs"`

	// File store settings.
	FSBaseURL       string `yaml:"fsBaseURL"`
	FSTotalBytes    int    `yaml:"fsTotalBytes"`
	FSMaxPathLength int    `yaml:"fsMaxPathLength"`

	// Shell settings.
	ShellPrompt string `yaml:"shellPrompt"`

	WatchdogTimeoutSec int `yaml:"watchdogTimeoutSec"`
}

// Default mirrors the constants the firmware build was compiled with.
func Default() *Config {
	return &Config{
		MaxTasks:              16,
		DefaultStackSize:      2048,
		MaxMemoryBlocks:       64,
		MemoryAlignment:       4,
		HeapSize:              200 * 1024,
		HealthyThresholdBytes: 10 * 1024,
		LockTimeoutMs:         1000,
		FSBaseURL:             "mem://oskit/fs",
		FSTotalBytes:          512 * 1024,
		FSMaxPathLength:       64,
		ShellPrompt:           "oskit> ",
		WatchdogTimeoutSec:    30,
	}
}

// Load reads a YAML file and overlays it on the defaults. Fields absent
// from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validating config %q", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxTasks <= 0 {
		return errors.Newf("maxTasks must be positive, got %d", c.MaxTasks)
	}
	if c.MaxMemoryBlocks <= 0 {
		return errors.Newf("maxMemoryBlocks must be positive, got %d", c.MaxMemoryBlocks)
	}
	if c.MemoryAlignment <= 0 || c.MemoryAlignment&(c.MemoryAlignment-1) != 0 {
		return errors.Newf("memoryAlignment must be a power of two, got %d", c.MemoryAlignment)
	}
	if c.HeapSize <= 0 {
		return errors.Newf("heapSize must be positive, got %d", c.HeapSize)
	}
	if c.LockTimeoutMs <= 0 {
		return errors.Newf("lockTimeoutMs must be positive, got %d", c.LockTimeoutMs)
	}
	return nil
}

func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.LockTimeoutMs) * time.Millisecond
}
