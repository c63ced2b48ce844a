package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/myang/missa-kala/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Fetch       FetchConfig
	Cache       CacheConfig
	Detection   DetectionConfig
	Keywords    domain.KeywordSet
	Restaurants []domain.Restaurant
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FetchConfig holds page-fetching configuration
type FetchConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	RenderEnabled     bool          `mapstructure:"render_enabled"`
	RenderTimeout     time.Duration `mapstructure:"render_timeout"`
	RenderSettleDelay time.Duration `mapstructure:"render_settle_delay"`
	RenderAttempts    int           `mapstructure:"render_attempts"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// DetectionConfig holds detection tuning
type DetectionConfig struct {
	// WindowDays widens date matching by ±N days to tolerate menus
	// published under a date one day off from the viewer's calendar.
	WindowDays int `mapstructure:"window_days"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/missa-kala/")

	// Environment variable settings
	v.SetEnvPrefix("MISSAKALA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Fetch defaults
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.user_agent", "missa-kala/1.0 (+https://github.com/myang/missa-kala)")
	v.SetDefault("fetch.max_body_bytes", 2<<20)
	v.SetDefault("fetch.requests_per_second", 2.0)
	v.SetDefault("fetch.render_enabled", false)
	v.SetDefault("fetch.render_timeout", "10s")
	v.SetDefault("fetch.render_settle_delay", "1500ms")
	v.SetDefault("fetch.render_attempts", 3)

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Detection defaults
	v.SetDefault("detection.window_days", 1)

	// Keyword defaults: Finnish primary, English secondary
	v.SetDefault("keywords.primary", []string{
		"kala", "lohi", "lohta", "kirjolohi", "graavilohi", "savulohi",
		"seiti", "siika", "muikku", "silakka", "silli", "tonnikala",
		"katkarapu", "rapu", "ahven", "kuha", "turska", "mäti",
		"anjovis", "sardiini",
	})
	v.SetDefault("keywords.secondary", []string{
		"fish", "salmon", "tuna", "shrimp", "prawn", "herring",
		"cod", "trout", "seafood", "anchovy", "sardine", "pike",
		"perch", "whitefish",
	})
}

// validate validates the configuration
func validate(config *Config) error {
	if len(config.Restaurants) == 0 {
		return fmt.Errorf("at least one restaurant is required (set restaurants in config.yaml)")
	}
	for i, r := range config.Restaurants {
		if r.Name == "" || r.URL == "" {
			return fmt.Errorf("restaurant %d must have both name and url", i)
		}
	}

	if len(config.Keywords.Primary) == 0 {
		return fmt.Errorf("primary keyword set must not be empty")
	}

	if config.Detection.WindowDays < 0 {
		return fmt.Errorf("detection window_days must not be negative, got: %d", config.Detection.WindowDays)
	}

	return nil
}
