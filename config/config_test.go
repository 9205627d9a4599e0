package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 16, cfg.MaxTasks)
	require.Equal(t, 64, cfg.MaxMemoryBlocks)
	require.Equal(t, 200*1024, cfg.HeapSize)
	require.Equal(t, time.Second, cfg.LockTimeout())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oskit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxTasks: 4\nheapSize: 8192\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.MaxTasks)
	require.Equal(t, 8192, cfg.HeapSize)
	// Untouched fields keep their defaults.
	require.Equal(t, 64, cfg.MaxMemoryBlocks)
	require.Equal(t, "oskit> ", cfg.ShellPrompt)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("memoryAlignment: 3\n"), 0o600))

	_, err := Load(path)
	require.ErrorContains(t, err, "power of two")
}

func TestValidate(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.MaxTasks = 0 },
		func(c *Config) { c.MaxMemoryBlocks = -1 },
		func(c *Config) { c.MemoryAlignment = 6 },
		func(c *Config) { c.HeapSize = 0 },
		func(c *Config) { c.LockTimeoutMs = 0 },
	} {
		cfg := Default()
		mutate(cfg)
		require.Error(t, cfg.Validate())
	}
}
