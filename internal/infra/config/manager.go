package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/taskring/internal/domain"
)

// Manager inspects and creates configuration files.
type Manager struct {
	dataDir       string
	globalConfDir string
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return configInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// LocalConfigInfo returns information about the data dir config file.
func (m *Manager) LocalConfigInfo() domain.ConfigInfo {
	return configInfo(filepath.Join(m.dataDir, domain.ConfigFileName))
}

func configInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitGlobalConfig writes the default configuration to the global config file.
// It fails with domain.ErrConfigExists when the file is already present.
func (m *Manager) InitGlobalConfig() (string, error) {
	if m.globalConfDir == "" {
		return "", fmt.Errorf("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return "", err
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, domain.ErrConfigExists
	}

	content, err := Render(domain.NewDefaultConfig())
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0o600)
}

// Render encodes cfg as TOML.
func Render(cfg *domain.Config) (string, error) {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(b), nil
}
