package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL" env-required:"true" env-description:"PostgreSQL connection string"`
	HTTPPort    string `env:"HTTP_PORT" env-required:"true" env-description:"HTTP listen port"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	DB          DBConfig
	HTTP        HTTPConfig
}

type DBConfig struct {
	MaxConns        int           `env:"DB_MAX_CONNS" env-default:"5"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"5s"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" env-default:"true"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// Usage describes every supported environment variable.
func Usage() string {
	var cfg Config
	desc, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return desc
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	port, err := strconv.Atoi(c.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP_PORT %q: %w", c.HTTPPort, err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %q: must be between 1 and 65535", c.HTTPPort)
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("invalid DB_MAX_CONNS %d: must be positive", c.DB.MaxConns)
	}
	if c.DB.MaxIdleConns < 0 {
		return fmt.Errorf("invalid DB_MAX_IDLE_CONNS %d: must not be negative", c.DB.MaxIdleConns)
	}
	return nil
}
