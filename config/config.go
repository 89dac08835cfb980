package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	IGDB      IGDBConfig
	Amazon    AmazonConfig
	Ebay      EbayConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds JWT configuration
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry"`
}

// DatabaseConfig holds persistence configuration
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// IGDBConfig holds game catalog API configuration
type IGDBConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// AmazonConfig holds primary marketplace API configuration
type AmazonConfig struct {
	AccessKey    string `mapstructure:"access_key"`
	AssociateTag string `mapstructure:"associate_tag"`
	BaseURL      string `mapstructure:"base_url"`
}

// EbayConfig holds secondary marketplace API configuration
type EbayConfig struct {
	AppID   string `mapstructure:"app_id"`
	BaseURL string `mapstructure:"base_url"`
}

// RateLimitConfig holds per-client rate limits for external services,
// in requests per second
type RateLimitConfig struct {
	Catalog     float64 `mapstructure:"catalog"`
	Marketplace float64 `mapstructure:"marketplace"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Optional .env for local development; real env vars win
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/joystick-informer/")

	// Environment variable settings. The replacer maps nested keys to
	// env var names, e.g. auth.jwt_secret -> JOYSTICK_AUTH_JWT_SECRET.
	v.SetEnvPrefix("JOYSTICK")
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Auth defaults. Secrets default to empty so the keys are known to
	// viper and env overrides reach Unmarshal; validate rejects blanks.
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiry", "168h") // 7 days

	// Database defaults
	v.SetDefault("database.dsn", "joystick-informer.db")

	// External service defaults
	v.SetDefault("igdb.api_key", "")
	v.SetDefault("igdb.base_url", "https://api.igdb.com")
	v.SetDefault("amazon.access_key", "")
	v.SetDefault("amazon.associate_tag", "")
	v.SetDefault("amazon.base_url", "https://webservices.amazon.com")
	v.SetDefault("ebay.app_id", "")
	v.SetDefault("ebay.base_url", "https://svcs.ebay.com")

	// Rate limit defaults (requests per second)
	v.SetDefault("ratelimit.catalog", 4.0)
	v.SetDefault("ratelimit.marketplace", 1.0)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (set JOYSTICK_AUTH_JWT_SECRET)")
	}

	if config.Auth.JWTExpiry <= 0 {
		return fmt.Errorf("JWT expiry must be positive, got: %s", config.Auth.JWTExpiry)
	}

	if config.IGDB.APIKey == "" {
		return fmt.Errorf("IGDB API key is required (set JOYSTICK_IGDB_API_KEY)")
	}

	if config.Database.DSN == "" {
		return fmt.Errorf("database DSN is required (set JOYSTICK_DATABASE_DSN)")
	}

	return nil
}
