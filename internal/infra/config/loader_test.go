package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskring/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_LocalConfigOnly(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[ring]
zero_position = 90
hit_tolerance = 0.5
handle_tolerance = "10m"

[placement]
step = "5m"
search_bound = "6h"
cache_size = 16

[store]
type = "json"
path = "/tmp/tasks.json"

[categories]
file = "/tmp/cats.yaml"

[server]
addr = ":9000"

[log]
level = "debug"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, 90.0, cfg.Ring.ZeroPosition)
	assert.Equal(t, 0.5, cfg.Ring.HitTolerance)
	assert.Equal(t, 10*time.Minute, cfg.Ring.HandleTolerance.Std())
	assert.Equal(t, 5*time.Minute, cfg.Placement.Step.Std())
	assert.Equal(t, 6*time.Hour, cfg.Placement.SearchBound.Std())
	assert.Equal(t, 16, cfg.Placement.CacheSize)
	assert.Equal(t, domain.StoreTypeJSON, cfg.Store.Type)
	assert.Equal(t, "/tmp/tasks.json", cfg.Store.Path)
	assert.Equal(t, "/tmp/cats.yaml", cfg.Categories.File)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_LocalOverridesGlobal(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[ring]
zero_position = 90

[log]
level = "warn"

[server]
addr = ":7000"
`)
	writeConfig(t, dataDir, `
[ring]
zero_position = 0

[log]
level = "debug"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Ring.ZeroPosition, "explicit zero overrides global")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[ring]
radius = 10

[placement]
step = "soon"

[colors]
bg = "black"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"invalid value in [placement]: step = soon",
		"unknown key in [ring]: radius",
		"unknown section: colors",
	}, cfg.Warnings)
	assert.Equal(t, domain.DefaultPlacementStep, cfg.Placement.Step.Std())
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[ring\nzero_position = ")

	_, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()
	assert.Error(t, err)
}

func TestLoader_Load_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{"bad store type", "[store]\ntype = \"redis\"\n", domain.ErrInvalidStoreType},
		{"bad zero position", "[ring]\nzero_position = 10\n", domain.ErrInvalidZeroPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataDir := t.TempDir()
			writeConfig(t, dataDir, tt.content)
			_, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoader_LoadGlobal(t *testing.T) {
	globalDir := t.TempDir()

	_, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)

	writeConfig(t, globalDir, "[log]\nlevel = \"error\"\n")
	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)

	_, err = NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
