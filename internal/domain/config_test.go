package domain

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, StoreTypeSQLite, cfg.Store.Type)
	assert.Equal(t, DefaultHitTolerance, cfg.Ring.HitTolerance)
	assert.Equal(t, DefaultHandleTolerance, cfg.Ring.HandleTolerance.Std())
	assert.Equal(t, DefaultPlacementStep, cfg.Placement.Step.Std())
	assert.Equal(t, DefaultSearchBound, cfg.Placement.SearchBound.Std())
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Type = "postgres"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidStoreType)

	cfg = NewDefaultConfig()
	cfg.Ring.ZeroPosition = 10
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidZeroPosition)
}

func TestNormalizeZeroPosition(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    float64
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"quarter", 90, 90, false},
		{"full turn", 360, 0, false},
		{"negative", -15, 345, false},
		{"beyond turn", 735, 15, false},
		{"not a step", 10, 0, true},
		{"nan", math.NaN(), 0, true},
		{"inf", math.Inf(1), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeZeroPosition(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidZeroPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRotateZeroPosition(t *testing.T) {
	assert.Equal(t, 15.0, RotateZeroPosition(0, 1))
	assert.Equal(t, 345.0, RotateZeroPosition(0, -1))
	assert.Equal(t, 0.0, RotateZeroPosition(345, 1))
	assert.Equal(t, 90.0, RotateZeroPosition(0, 30))
}

func TestConfig_Paths(t *testing.T) {
	dataDir := filepath.Join("data", "taskring")

	cfg := NewDefaultConfig()
	assert.Equal(t, filepath.Join(dataDir, SQLiteStoreFileName), cfg.StorePath(dataDir))
	assert.Equal(t, filepath.Join(dataDir, CategoriesFileName), cfg.CategoriesPath(dataDir))

	cfg.Store.Type = StoreTypeJSON
	assert.Equal(t, filepath.Join(dataDir, JSONStoreFileName), cfg.StorePath(dataDir))

	cfg.Store.Path = "/tmp/custom.db"
	cfg.Categories.File = "/tmp/cats.yaml"
	assert.Equal(t, "/tmp/custom.db", cfg.StorePath(dataDir))
	assert.Equal(t, "/tmp/cats.yaml", cfg.CategoriesPath(dataDir))

	assert.Equal(t, filepath.Join("cfg", AppDirName), GlobalConfigDir("cfg"))
	assert.Equal(t, filepath.Join("share", AppDirName), DataDir("share"))
	assert.Equal(t, filepath.Join(dataDir, "logs", LogFileName), LogPath(dataDir))
}

func TestDuration_Text(t *testing.T) {
	d := Duration(90 * time.Minute)
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1h30m0s", string(b))

	var parsed Duration
	require.NoError(t, parsed.UnmarshalText([]byte("20m")))
	assert.Equal(t, 20*time.Minute, parsed.Std())

	assert.Error(t, parsed.UnmarshalText([]byte("soon")))
}
