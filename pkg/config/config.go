package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/stitts-dev/prop-engine/internal/tuning"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Persistence of analysis records; empty disables the store
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Cross-request ratings cache; empty disables it
	RedisURL        string        `mapstructure:"REDIS_URL"`
	RatingsCacheTTL time.Duration `mapstructure:"RATINGS_CACHE_TTL"`

	// External APIs
	BallDontLieAPIKey        string        `mapstructure:"BALLDONTLIE_API_KEY"`
	BallDontLieBaseURL       string        `mapstructure:"BALLDONTLIE_BASE_URL"`
	BallDontLieRatePerMinute int           `mapstructure:"BALLDONTLIE_RATE_PER_MINUTE"`
	NBALiveBaseURL           string        `mapstructure:"NBA_LIVE_BASE_URL"`
	TeamRatingsFile          string        `mapstructure:"TEAM_RATINGS_FILE"`
	ExternalAPITimeout       time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold  int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Analysis
	BlowoutThreshold       float64 `mapstructure:"BLOWOUT_THRESHOLD"`
	FoulTroubleThreshold   int     `mapstructure:"FOUL_TROUBLE_THRESHOLD"`
	SeasonFetchConcurrency int     `mapstructure:"SEASON_FETCH_CONCURRENCY"`
	HistoryGames           int     `mapstructure:"HISTORY_GAMES"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATINGS_CACHE_TTL", "6h")
	v.SetDefault("BALLDONTLIE_API_KEY", "")
	v.SetDefault("BALLDONTLIE_BASE_URL", "https://api.balldontlie.io")
	v.SetDefault("BALLDONTLIE_RATE_PER_MINUTE", 30)
	v.SetDefault("NBA_LIVE_BASE_URL", "https://cdn.nba.com/static/json/liveData")
	v.SetDefault("TEAM_RATINGS_FILE", "")
	v.SetDefault("EXTERNAL_API_TIMEOUT", "10s")
	v.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	v.SetDefault("BLOWOUT_THRESHOLD", 20)
	v.SetDefault("FOUL_TROUBLE_THRESHOLD", 3)
	v.SetDefault("SEASON_FETCH_CONCURRENCY", 4)
	v.SetDefault("HISTORY_GAMES", 10)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the engines cannot run with
func (c *Config) Validate() error {
	if c.ExternalAPITimeout <= 0 {
		return fmt.Errorf("EXTERNAL_API_TIMEOUT must be positive, got %s", c.ExternalAPITimeout)
	}
	if c.BlowoutThreshold <= 0 {
		return fmt.Errorf("BLOWOUT_THRESHOLD must be positive, got %v", c.BlowoutThreshold)
	}
	if c.FoulTroubleThreshold <= 0 {
		return fmt.Errorf("FOUL_TROUBLE_THRESHOLD must be positive, got %d", c.FoulTroubleThreshold)
	}
	if c.SeasonFetchConcurrency < 1 {
		c.SeasonFetchConcurrency = 1
	}
	if c.HistoryGames < 1 {
		c.HistoryGames = 10
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Tables returns the default tuning tables with the configured thresholds
// applied.
func (c *Config) Tables() tuning.Tables {
	return tuning.Default().WithOverrides(c.BlowoutThreshold, c.FoulTroubleThreshold)
}
