package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/hoops-edge/internal/classifier"
)

// EnvPrefix prefixes every environment override, e.g. HOOPS_EDGE_DATABASE_HOST.
const EnvPrefix = "HOOPS_EDGE"

const defaultConfigPath = "config/config.yaml"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// readExpanded reads configPath into v after expanding ${VAR} placeholders.
func readExpanded(v *viper.Viper, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Load reads and parses the configuration from file and environment variables.
// The file must exist.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	if err := readExpanded(v, configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// LoadWithDefaults loads configuration on top of the production defaults.
// A missing file is not an error; defaults and environment variables still apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if err := readExpanded(v, configPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides bind even without a file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hoops-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "hoops_edge")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("seasons.current", "2022-23")
	v.SetDefault("seasons.last", "2021-22")

	v.SetDefault("engine.projection_lower", -2.5)
	v.SetDefault("engine.projection_upper", 3.0)
	v.SetDefault("engine.mean_lower", -2.6)
	v.SetDefault("engine.mean_upper", 3.0)
	v.SetDefault("engine.minutes_floor", 5)
	v.SetDefault("engine.recent_games", 10)
	v.SetDefault("engine.recent_minutes_floor", 10)
	v.SetDefault("engine.three_point_freq", 50.0)
	v.SetDefault("engine.two_point_freq", 60.0)
	v.SetDefault("engine.pace_n", 5)
	v.SetDefault("engine.three_pt_n", 5)
	v.SetDefault("engine.two_pt_n", 5)
	v.SetDefault("engine.def_rebound_n", 5)
	v.SetDefault("engine.correlation_cap", 0.8)
	v.SetDefault("engine.weight_scale", 25.0)
	v.SetDefault("engine.big_favorite_spread", -10.0)
	v.SetDefault("engine.big_favorite_weight", -8.0)
	v.SetDefault("engine.high_total", 228.0)
	v.SetDefault("engine.low_total", 216.0)
	v.SetDefault("engine.min_correlation_games", 5)
	v.SetDefault("engine.rest_ceiling_days", 4)
	v.SetDefault("engine.decision_threshold", 0.55)
	v.SetDefault("engine.alt_lines", []float64{14.5, 19.5, 24.5, 29.5})

	v.SetDefault("classifier.folds", 5)
	v.SetDefault("classifier.test_size", 0.2)
	v.SetDefault("classifier.seed", 40)
	v.SetDefault("classifier.c_grid", classifier.LogSpace(-4, 4, 10))
	v.SetDefault("classifier.max_iterations", 200)

	v.SetDefault("feed.base_url", "http://localhost:8081")
	v.SetDefault("feed.api_key", "")
	v.SetDefault("feed.timeout", "30s")
	v.SetDefault("feed.max_retries", 3)
	v.SetDefault("feed.rate_limit_per_second", 2.0)
	v.SetDefault("feed.breaker_max_failures", 5)
	v.SetDefault("feed.breaker_timeout", "60s")

	v.SetDefault("cache.ttl", "10m")

	v.SetDefault("publish.output_dir", "reports")
	v.SetDefault("publish.formats", []string{"json", "csv"})
	v.SetDefault("publish.redis.enabled", false)
	v.SetDefault("publish.redis.addr", "localhost:6379")
	v.SetDefault("publish.redis.password", "")
	v.SetDefault("publish.redis.db", 0)
	v.SetDefault("publish.redis.key", "hoops-edge:reports")
	v.SetDefault("publish.redis.ttl", "48h")

	v.SetDefault("schedule.ingest_cron", "0 6 * * *")
	v.SetDefault("schedule.report_cron", "0 16 * * *")
	v.SetDefault("schedule.prop_type", "points")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("secrets.region", "")
	v.SetDefault("secrets.secret_name", "")
}
