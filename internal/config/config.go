package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAppEnv          = "dev"
	defaultHTTPPort        = 8080
	defaultDatabaseURL     = "roomscheduler.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "24h"
	defaultConnMaxLifetime = "30m"
	defaultRoomsCacheTTL   = "30s"
	defaultShutdownTimeout = "5s"
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultAuthRatePerSec  = 5.0
	defaultAuthRateBurst   = 10
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
)

type Config struct {
	AppEnv string         `yaml:"app_env"`
	Server ServerConfig   `yaml:"server"`
	DB     DatabaseConfig `yaml:"database"`
	Auth   AuthConfig     `yaml:"auth"`
	Log    LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port               int           `yaml:"port"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	RoomsCacheTTL      time.Duration `yaml:"rooms_cache_ttl"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	JWTTTL          time.Duration `yaml:"jwt_ttl"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load builds the runtime config: defaults, then the optional YAML file at
// CONFIG_PATH, then environment variables.
func Load() (*Config, error) {
	cfg, err := defaults()
	if err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() (*Config, error) {
	cfg := &Config{
		AppEnv: defaultAppEnv,
		Server: ServerConfig{Port: defaultHTTPPort},
		DB: DatabaseConfig{
			URL:          defaultDatabaseURL,
			MaxOpenConns: defaultMaxOpenConns,
			MaxIdleConns: defaultMaxIdleConns,
		},
		Auth: AuthConfig{
			JWTSecret:       defaultJWTSecret,
			RateLimitPerSec: defaultAuthRatePerSec,
			RateLimitBurst:  defaultAuthRateBurst,
		},
		Log: LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
	}

	var err error
	if cfg.Auth.JWTTTL, err = time.ParseDuration(defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.DB.ConnMaxLifetime, err = time.ParseDuration(defaultConnMaxLifetime); err != nil {
		return nil, err
	}
	if cfg.Server.RoomsCacheTTL, err = time.ParseDuration(defaultRoomsCacheTTL); err != nil {
		return nil, err
	}
	if cfg.Server.ShutdownTimeout, err = time.ParseDuration(defaultShutdownTimeout); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := firstEnv("APP_ENV", "ENV"); v != "" {
		cfg.AppEnv = v
	}
	cfg.DB.URL = strings.TrimSpace(getEnv("DATABASE_URL", cfg.DB.URL))
	cfg.Auth.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", cfg.Auth.JWTSecret))
	cfg.Log.Level = strings.TrimSpace(getEnv("LOG_LEVEL", cfg.Log.Level))
	cfg.Log.Format = strings.TrimSpace(getEnv("LOG_FORMAT", cfg.Log.Format))

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.CORSAllowedOrigins = append(cfg.Server.CORSAllowedOrigins, o)
			}
		}
	}

	var err error
	if cfg.Server.Port, err = parseIntEnv("HTTP_PORT", cfg.Server.Port); err != nil {
		return err
	}
	if cfg.DB.MaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns); err != nil {
		return err
	}
	if cfg.DB.MaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns); err != nil {
		return err
	}
	if cfg.Auth.RateLimitBurst, err = parseIntEnv("AUTH_RATE_LIMIT_BURST", cfg.Auth.RateLimitBurst); err != nil {
		return err
	}
	if cfg.Auth.RateLimitPerSec, err = parseFloatEnv("AUTH_RATE_LIMIT_PER_SEC", cfg.Auth.RateLimitPerSec); err != nil {
		return err
	}
	if cfg.DB.ConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", cfg.DB.ConnMaxLifetime); err != nil {
		return err
	}
	if cfg.Auth.JWTTTL, err = parseDurationEnv("JWT_TTL", cfg.Auth.JWTTTL); err != nil {
		return err
	}
	if cfg.Server.RoomsCacheTTL, err = parseDurationEnv("ROOMS_CACHE_TTL", cfg.Server.RoomsCacheTTL); err != nil {
		return err
	}
	if cfg.Server.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be in 1..65535")
	}
	if cfg.DB.URL == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if cfg.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Auth.RateLimitPerSec <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_PER_SEC must be > 0")
	}
	if cfg.Auth.RateLimitBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_BURST must be > 0")
	}
	if cfg.Server.RoomsCacheTTL < 0 {
		return fmt.Errorf("ROOMS_CACHE_TTL must be >= 0")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.Auth.JWTSecret) < 32 {
			return fmt.Errorf("in prod/release JWT_SECRET must be at least 32 characters")
		}
	}
	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseFloatEnv(name string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return v
		}
	}
	return ""
}
