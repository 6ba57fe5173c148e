// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/taskring/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory (e.g., ~/.local/share/taskring)
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskring)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// DefaultDataDir resolves the data directory from XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(dataHome)
}

// Load returns the merged configuration.
// Values are applied in order: defaults, global file, data dir file.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if l.globalConfDir != "" {
		if err := applyFile(cfg, filepath.Join(l.globalConfDir, domain.ConfigFileName)); err != nil {
			return nil, err
		}
	}
	if l.dataDir != "" {
		if err := applyFile(cfg, filepath.Join(l.dataDir, domain.ConfigFileName)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGlobal returns defaults overlaid with the global configuration only.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	cfg := domain.NewDefaultConfig()
	path := filepath.Join(l.globalConfDir, domain.ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if err := applyFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays the file at path onto cfg. A missing file is not an error.
func applyFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	warnings := applyRaw(cfg, raw)
	sort.Strings(warnings)
	cfg.Warnings = append(cfg.Warnings, warnings...)
	return nil
}

// applyRaw copies known keys from raw onto cfg and returns warnings for the rest.
func applyRaw(cfg *domain.Config, raw map[string]any) []string {
	var warnings []string
	unknown := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, key))
	}
	invalid := func(section, key string, v any) {
		warnings = append(warnings, fmt.Sprintf("invalid value in [%s]: %s = %v", section, key, v))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "ring":
			for k, v := range m {
				switch k {
				case "zero_position":
					if f, ok := toFloat(v); ok {
						cfg.Ring.ZeroPosition = f
					} else {
						invalid(section, k, v)
					}
				case "hit_tolerance":
					if f, ok := toFloat(v); ok && f >= 0 {
						cfg.Ring.HitTolerance = f
					} else {
						invalid(section, k, v)
					}
				case "handle_tolerance":
					if d, ok := toDuration(v); ok {
						cfg.Ring.HandleTolerance = domain.Duration(d)
					} else {
						invalid(section, k, v)
					}
				default:
					unknown(section, k)
				}
			}
		case "placement":
			for k, v := range m {
				switch k {
				case "step":
					if d, ok := toDuration(v); ok && d > 0 {
						cfg.Placement.Step = domain.Duration(d)
					} else {
						invalid(section, k, v)
					}
				case "search_bound":
					if d, ok := toDuration(v); ok {
						cfg.Placement.SearchBound = domain.Duration(d)
					} else {
						invalid(section, k, v)
					}
				case "cache_size":
					if n, ok := v.(int64); ok && n >= 0 {
						cfg.Placement.CacheSize = int(n)
					} else {
						invalid(section, k, v)
					}
				default:
					unknown(section, k)
				}
			}
		case "store":
			for k, v := range m {
				switch k {
				case "type":
					if s, ok := v.(string); ok {
						cfg.Store.Type = s
					}
				case "path":
					if s, ok := v.(string); ok {
						cfg.Store.Path = s
					}
				default:
					unknown(section, k)
				}
			}
		case "categories":
			for k, v := range m {
				switch k {
				case "file":
					if s, ok := v.(string); ok {
						cfg.Categories.File = s
					}
				default:
					unknown(section, k)
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						cfg.Server.Addr = s
					}
				default:
					unknown(section, k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						cfg.Log.Level = s
					}
				default:
					unknown(section, k)
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}
	return warnings
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toDuration(v any) (time.Duration, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}
