package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskring/internal/domain"
)

func TestManager_ConfigInfo(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	m := NewManagerWithGlobalDir(dataDir, globalDir)

	info := m.LocalConfigInfo()
	assert.False(t, info.Exists)
	assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)

	writeConfig(t, dataDir, "[log]\nlevel = \"debug\"\n")
	info = m.LocalConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "debug")

	assert.False(t, m.GlobalConfigInfo().Exists)
	assert.Empty(t, NewManagerWithGlobalDir(dataDir, "").GlobalConfigInfo().Path)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "taskring")
	m := NewManagerWithGlobalDir(t.TempDir(), globalDir)

	path, err := m.InitGlobalConfig()
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[placement]")

	// The written file loads back to the defaults.
	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, domain.DefaultHandleTolerance, cfg.Ring.HandleTolerance.Std())

	_, err = m.InitGlobalConfig()
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestRender(t *testing.T) {
	out, err := Render(domain.NewDefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, out, "handle_tolerance")
	assert.Contains(t, out, "20m0s")
	assert.Contains(t, out, domain.StoreTypeSQLite)
	assert.NotContains(t, out, "Warnings")
}
