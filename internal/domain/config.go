package domain

import (
	"fmt"
	"math"
	"path/filepath"
	"time"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings   []string         `toml:"-"`
	Store      StoreConfig      `toml:"store"`
	Categories CategoriesConfig `toml:"categories"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
	Placement  PlacementConfig  `toml:"placement"`
	Ring       RingConfig       `toml:"ring"`
}

// RingConfig holds dial settings from the [ring] section.
type RingConfig struct {
	HandleTolerance Duration `toml:"handle_tolerance"` // Grab distance around a boundary
	ZeroPosition    float64  `toml:"zero_position"`    // Degrees, multiple of 15
	HitTolerance    float64  `toml:"hit_tolerance"`    // Fraction of the radius
}

// PlacementConfig holds slot search settings from the [placement] section.
type PlacementConfig struct {
	Step        Duration `toml:"step"`
	SearchBound Duration `toml:"search_bound"`
	CacheSize   int      `toml:"cache_size"`
}

// StoreConfig holds storage settings from the [store] section.
type StoreConfig struct {
	Type string `toml:"type"` // "sqlite" (default) or "json"
	Path string `toml:"path"` // Empty means inside the data dir
}

// CategoriesConfig holds the category catalog location.
type CategoriesConfig struct {
	File string `toml:"file"` // Empty means <dataDir>/categories.yaml
}

// ServerConfig holds HTTP settings from the [server] section.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // Log level: debug, info, warn, error
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Store types.
const (
	StoreTypeSQLite = "sqlite"
	StoreTypeJSON   = "json"
)

// Default configuration values.
const (
	DefaultLogLevel        = "info"
	DefaultHitTolerance    = 0.25
	DefaultHandleTolerance = 20 * time.Minute
	DefaultPlacementStep   = 15 * time.Minute
	DefaultSearchBound     = 12 * time.Hour
	DefaultCacheSize       = 128
	DefaultServerAddr      = "127.0.0.1:8080"
)

// Paths and file names.
const (
	AppDirName           = "taskring"
	ConfigFileName       = "config.toml"
	CategoriesFileName   = "categories.yaml"
	SQLiteStoreFileName  = "tasks.db"
	JSONStoreFileName    = "tasks.json"
	LogFileName          = "taskring.log"
	zeroPositionStepDegs = 15
)

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Ring: RingConfig{
			HitTolerance:    DefaultHitTolerance,
			HandleTolerance: Duration(DefaultHandleTolerance),
		},
		Placement: PlacementConfig{
			Step:        Duration(DefaultPlacementStep),
			SearchBound: Duration(DefaultSearchBound),
			CacheSize:   DefaultCacheSize,
		},
		Store:  StoreConfig{Type: StoreTypeSQLite},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// Validate checks values that cannot be silently corrected.
func (c *Config) Validate() error {
	if c.Store.Type != StoreTypeSQLite && c.Store.Type != StoreTypeJSON {
		return fmt.Errorf("%w: %q", ErrInvalidStoreType, c.Store.Type)
	}
	if _, err := NormalizeZeroPosition(c.Ring.ZeroPosition); err != nil {
		return err
	}
	return nil
}

// NormalizeZeroPosition wraps deg into [0, 360) and requires a multiple of 15.
func NormalizeZeroPosition(deg float64) (float64, error) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, ErrInvalidZeroPosition
	}
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if math.Mod(d, zeroPositionStepDegs) != 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidZeroPosition, deg)
	}
	return d, nil
}

// RotateZeroPosition moves deg by steps of 15 degrees, wrapping into [0, 360).
func RotateZeroPosition(deg float64, steps int) float64 {
	d := math.Mod(deg+float64(steps*zeroPositionStepDegs), 360)
	if d < 0 {
		d += 360
	}
	return d
}

// StorePath resolves the store file path.
func (c *Config) StorePath(dataDir string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	if c.Store.Type == StoreTypeJSON {
		return filepath.Join(dataDir, JSONStoreFileName)
	}
	return filepath.Join(dataDir, SQLiteStoreFileName)
}

// CategoriesPath resolves the category catalog path.
func (c *Config) CategoriesPath(dataDir string) string {
	if c.Categories.File != "" {
		return c.Categories.File
	}
	return filepath.Join(dataDir, CategoriesFileName)
}

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// DataDir returns the data directory path.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// LogPath returns the log file path inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", LogFileName)
}

// Duration is a time.Duration that reads and writes as "15m" in TOML.
type Duration time.Duration

// Std returns the standard library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
