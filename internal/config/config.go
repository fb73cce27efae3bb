// Package config loads settings for both binaries from an optional .env
// file, ADASTOCK_* environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the web app and the reference backend.
type Config struct {
	App       AppConfig
	API       APIConfig
	Backend   BackendConfig
	Auth      AuthConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Addr          string
	Env           string
	Hostname      string
	DefaultLocale string
}

// APIConfig is how the web app reaches the backend.
type APIConfig struct {
	URL   string
	Token string
}

type BackendConfig struct {
	Addr        string
	DatabaseURL string
}

type AuthConfig struct {
	JWTSecret string
}

// RedisConfig enables the Redis snapshot cache when Addr is set.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	SnapshotTTL time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Load reads the configuration. A missing .env or config file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	hostname, _ := os.Hostname()

	v.SetDefault("app.addr", ":3000")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.hostname", hostname)
	v.SetDefault("app.default_locale", "fr")
	v.SetDefault("api.url", "")
	v.SetDefault("api.token", "")
	v.SetDefault("backend.addr", ":3055")
	v.SetDefault("backend.database_url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.snapshot_ttl", 24*time.Hour)
	v.SetDefault("ratelimit.rps", 5)
	v.SetDefault("ratelimit.burst", 10)

	v.SetEnvPrefix("ADASTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// names used by the existing deployment
	_ = v.BindEnv("api.url", "ADASTOCK_API_URL", "NEXT_PUBLIC_API_URL")
	_ = v.BindEnv("backend.database_url", "ADASTOCK_BACKEND_DATABASE_URL", "DATABASE_URL")

	v.SetConfigName("adastock")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		slog.Info("config file loaded", "path", v.ConfigFileUsed())
	}

	cfg := &Config{
		App: AppConfig{
			Addr:          v.GetString("app.addr"),
			Env:           v.GetString("app.env"),
			Hostname:      v.GetString("app.hostname"),
			DefaultLocale: v.GetString("app.default_locale"),
		},
		API: APIConfig{
			URL:   v.GetString("api.url"),
			Token: v.GetString("api.token"),
		},
		Backend: BackendConfig{
			Addr:        v.GetString("backend.addr"),
			DatabaseURL: v.GetString("backend.database_url"),
		},
		Auth: AuthConfig{JWTSecret: v.GetString("auth.jwt_secret")},
		Redis: RedisConfig{
			Addr:        v.GetString("redis.addr"),
			Password:    v.GetString("redis.password"),
			DB:          v.GetInt("redis.db"),
			SnapshotTTL: v.GetDuration("redis.snapshot_ttl"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("ratelimit.rps"),
			Burst: v.GetInt("ratelimit.burst"),
		},
	}
	if cfg.RateLimit.Burst < 1 {
		return nil, fmt.Errorf("ratelimit.burst must be at least 1, got %d", cfg.RateLimit.Burst)
	}
	return cfg, nil
}
