// Package config loads service settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in minimal images

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds every setting of the catalog service.
type Config struct {
	// DB
	DB struct {
		Host     string `env:"HOST, default=localhost"`
		Port     string `env:"PORT, default=5432"`
		User     string `env:"USER, default=postgres"`
		Password string `env:"PASSWORD, default=postgres"`
		Name     string `env:"NAME, default=eventscatalog"`
		SSLMode  string `env:"SSLMODE, default=disable"`
		MaxConns int32  `env:"MAX_CONNS, default=20"`
	} `env:", prefix=DB_"`

	// API
	API struct {
		Port         string        `env:"PORT, default=8080"`
		ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=15s"`
		WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=15s"`
	} `env:", prefix=API_"`

	// OTEL
	OTEL struct {
		CollectorAddr string `env:"COLLECTOR_ADDR"`
		ServiceName   string `env:"SERVICE_NAME, default=events-catalog"`
	} `env:", prefix=OTEL_"`

	// Timezone decides which calendar day counts as today.
	Timezone  string `env:"TIMEZONE, default=America/Bogota"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=json"`
	Migrate   bool   `env:"MIGRATE, default=true"`
}

// GetConfig reads .env when present and then the process environment.
func GetConfig(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads the configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var c Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &c, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DSN builds a libpq-compatible connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode,
	)
}

// MigrateURL is the golang-migrate URL of the database.
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     net.JoinHostPort(c.DB.Host, c.DB.Port),
		Path:     "/" + c.DB.Name,
		RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
	}
	return u.String()
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level maps LogLevel to a slog level; unknown values are info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
