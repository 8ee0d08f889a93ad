package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 10*time.Second, cfg.ExternalAPITimeout)
	assert.Equal(t, 6*time.Hour, cfg.RatingsCacheTTL)
	assert.Equal(t, 20.0, cfg.BlowoutThreshold)
	assert.Equal(t, 3, cfg.FoulTroubleThreshold)
	assert.Equal(t, 10, cfg.HistoryGames)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("EXTERNAL_API_TIMEOUT", "3s")
	t.Setenv("BLOWOUT_THRESHOLD", "18")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.ExternalAPITimeout)
	assert.Equal(t, 18.0, cfg.BlowoutThreshold)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.ExternalAPITimeout = 0 }, wantErr: true},
		{name: "negative blowout threshold", mutate: func(c *Config) { c.BlowoutThreshold = -1 }, wantErr: true},
		{name: "zero foul threshold", mutate: func(c *Config) { c.FoulTroubleThreshold = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ExternalAPITimeout:     time.Second,
				BlowoutThreshold:       20,
				FoulTroubleThreshold:   3,
				SeasonFetchConcurrency: 2,
				HistoryGames:           10,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ClampsConcurrency(t *testing.T) {
	cfg := &Config{ExternalAPITimeout: time.Second, BlowoutThreshold: 20, FoulTroubleThreshold: 3}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.SeasonFetchConcurrency)
	assert.Equal(t, 10, cfg.HistoryGames)
}

func TestTables_AppliesThresholds(t *testing.T) {
	cfg := &Config{BlowoutThreshold: 18, FoulTroubleThreshold: 4}

	tables := cfg.Tables()

	assert.Equal(t, 18.0, tables.Thresholds.BlowoutMargin)
	assert.Equal(t, 4, tables.Thresholds.FoulTrouble)
	assert.NoError(t, tables.Validate())
}
