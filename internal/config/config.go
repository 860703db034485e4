// Package config provides configuration management for the hoops-edge engine.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Seasons    SeasonsConfig    `mapstructure:"seasons" validate:"required"`
	Engine     EngineConfig     `mapstructure:"engine" validate:"required"`
	Classifier ClassifierConfig `mapstructure:"classifier" validate:"required"`
	Feed       FeedConfig       `mapstructure:"feed" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Publish    PublishConfig    `mapstructure:"publish" validate:"required"`
	Schedule   ScheduleConfig   `mapstructure:"schedule" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host" validate:"required"`
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name            string        `mapstructure:"name" validate:"required"`
	User            string        `mapstructure:"user" validate:"required"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections  int           `mapstructure:"max_connections" validate:"required,gt=0"`
	MinConnections  int           `mapstructure:"min_connections" validate:"gte=0"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// SeasonsConfig names the season being projected and the one before it.
type SeasonsConfig struct {
	Current string `mapstructure:"current" validate:"required,season"`
	Last    string `mapstructure:"last" validate:"required,season"`
}

// EngineConfig holds the projection, correlation and feature constants.
type EngineConfig struct {
	ProjectionLower     float64   `mapstructure:"projection_lower"`
	ProjectionUpper     float64   `mapstructure:"projection_upper"`
	MeanLower           float64   `mapstructure:"mean_lower"`
	MeanUpper           float64   `mapstructure:"mean_upper"`
	MinutesFloor        int       `mapstructure:"minutes_floor" validate:"gte=0"`
	RecentGames         int       `mapstructure:"recent_games" validate:"gt=0"`
	RecentMinutesFloor  int       `mapstructure:"recent_minutes_floor" validate:"gte=0"`
	ThreePointFreq      float64   `mapstructure:"three_point_freq" validate:"gte=0,lte=100"`
	TwoPointFreq        float64   `mapstructure:"two_point_freq" validate:"gte=0,lte=100"`
	PaceN               int       `mapstructure:"pace_n" validate:"gt=0"`
	ThreePtN            int       `mapstructure:"three_pt_n" validate:"gt=0"`
	TwoPtN              int       `mapstructure:"two_pt_n" validate:"gt=0"`
	DefReboundN         int       `mapstructure:"def_rebound_n" validate:"gt=0"`
	CorrelationCap      float64   `mapstructure:"correlation_cap" validate:"gt=0,lte=1"`
	WeightScale         float64   `mapstructure:"weight_scale" validate:"gt=0"`
	BigFavoriteSpread   float64   `mapstructure:"big_favorite_spread"`
	BigFavoriteWeight   float64   `mapstructure:"big_favorite_weight"`
	HighTotal           float64   `mapstructure:"high_total" validate:"gt=0"`
	LowTotal            float64   `mapstructure:"low_total" validate:"gt=0"`
	MinCorrelationGames int       `mapstructure:"min_correlation_games" validate:"gte=2"`
	RestCeilingDays     int       `mapstructure:"rest_ceiling_days" validate:"gt=0"`
	DecisionThreshold   float64   `mapstructure:"decision_threshold"`
	AltLines            []float64 `mapstructure:"alt_lines"`
}

// ClassifierConfig configures model selection.
type ClassifierConfig struct {
	Folds         int       `mapstructure:"folds" validate:"gte=2"`
	TestSize      float64   `mapstructure:"test_size" validate:"gt=0,lt=1"`
	Seed          int64     `mapstructure:"seed"`
	CGrid         []float64 `mapstructure:"c_grid" validate:"required,min=1,dive,gt=0"`
	MaxIterations int       `mapstructure:"max_iterations" validate:"gt=0"`
}

// FeedConfig configures the stats feed client.
type FeedConfig struct {
	BaseURL            string        `mapstructure:"base_url" validate:"required,url"`
	APIKey             string        `mapstructure:"api_key"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries         int           `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSecond float64       `mapstructure:"rate_limit_per_second" validate:"gt=0"`
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures" validate:"gt=0"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout" validate:"gt=0"`
}

// CacheConfig configures the read-through repository cache.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// PublishConfig configures report sinks.
type PublishConfig struct {
	OutputDir string      `mapstructure:"output_dir" validate:"required"`
	Formats   []string    `mapstructure:"formats" validate:"dive,oneof=json csv"`
	Redis     RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the Redis list sink.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	Key      string        `mapstructure:"key" validate:"required_if=Enabled true"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ScheduleConfig holds the cron specs for the scheduled jobs.
type ScheduleConfig struct {
	IngestCron string `mapstructure:"ingest_cron" validate:"required"`
	ReportCron string `mapstructure:"report_cron" validate:"required"`
	PropType   string `mapstructure:"prop_type" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// SecretsConfig points at an optional AWS Secrets Manager overlay.
type SecretsConfig struct {
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
