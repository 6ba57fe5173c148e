package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanRunWithoutContainer(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "no args", args: nil, want: false},
		{name: "help flag", args: []string{"--help"}, want: true},
		{name: "short help on subcommand", args: []string{"add", "-h"}, want: true},
		{name: "version flag", args: []string{"--version"}, want: true},
		{name: "help subcommand", args: []string{"help", "add"}, want: true},
		{name: "list", args: []string{"list"}, want: false},
		{name: "add", args: []string{"add", "work", "09:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canRunWithoutContainer(tt.args))
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("TASKRING_DATA_DIR", dataDir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.toml"), []byte("[store]\ntype = \"redis\"\n"), 0o644))

	err := run([]string{"list"})
	assert.ErrorContains(t, err, "failed to initialize")

	assert.NoError(t, run([]string{"--version"}))
}

func TestRun_AddAndList(t *testing.T) {
	t.Setenv("TASKRING_DATA_DIR", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, run([]string{"add", "work", "09:00", "--date", "2025-03-14"}))
	require.NoError(t, run([]string{"list", "--date", "2025-03-14"}))
}
