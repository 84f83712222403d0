// Package config loads service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Vision    VisionConfig    `mapstructure:"vision"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// Addr is the host:port the server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig locates the recipe dataset.
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// CORSConfig controls cross-origin access to the API.
type CORSConfig struct {
	FrontendURL string `mapstructure:"frontend_url"`
	Origins     string `mapstructure:"origins"`
}

// AllowedOrigins resolves the origin whitelist. The second return is
// true when every origin is allowed, in which case the list is nil.
// Otherwise the local development origins come first, then the
// frontend URL if set, then any extra configured origins.
func (c CORSConfig) AllowedOrigins() ([]string, bool) {
	if c.Origins == "*" {
		return nil, true
	}

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	for _, o := range strings.Split(c.Origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins, false
}

// RedisConfig points at the optional cache backend.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// VisionConfig configures the menu image extraction client.
type VisionConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether image extraction is configured.
func (v VisionConfig) Enabled() bool {
	return v.APIKey != ""
}

// RateLimitConfig controls per-client request throttling.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment is the source of truth.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("dataset.path", "")

	v.SetDefault("cors.frontend_url", "")
	v.SetDefault("cors.origins", "*")

	v.SetDefault("redis.url", "")

	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("vision.model", "gemini-2.5-flash")
	v.SetDefault("vision.timeout", "60s")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("log.level", "info")
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "GIN_MODE")

	v.BindEnv("dataset.path", "DATASET_PATH")

	v.BindEnv("cors.frontend_url", "FRONTEND_URL")
	v.BindEnv("cors.origins", "CORS_ORIGINS")

	v.BindEnv("redis.url", "REDIS_URL")

	v.BindEnv("vision.api_key", "GEMINI_API_KEY")
	v.BindEnv("vision.base_url", "VISION_BASE_URL")
	v.BindEnv("vision.model", "VISION_MODEL")
	v.BindEnv("vision.timeout", "VISION_TIMEOUT")

	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")

	v.BindEnv("log.level", "LOG_LEVEL")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", cfg.Server.Port)
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Requests <= 0 {
			return fmt.Errorf("rate limit requests must be positive")
		}
		if cfg.RateLimit.Window <= 0 {
			return fmt.Errorf("rate limit window must be positive")
		}
	}
	if cfg.Vision.Timeout <= 0 {
		return fmt.Errorf("vision timeout must be positive")
	}
	return nil
}
