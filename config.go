package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxClients = 10000
	defaultClientTTL  = 24 * time.Hour
)

// Config holds server settings. Values come from an optional YAML file and
// are then overridden by environment variables (which godotenv may have
// loaded from .env).
type Config struct {
	// Addr is the listen address (default "localhost:3000").
	Addr string `yaml:"addr"`

	// DBURL selects the Postgres input store when set.
	DBURL string `yaml:"db_url"`

	// SQLitePath selects the SQLite input store when set and DBURL is empty.
	SQLitePath string `yaml:"sqlite_path"`

	// AllowedOrigins lists CORS origins (default ["*"]).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxWeeks caps the projection loop (default 1000).
	MaxWeeks int `yaml:"max_weeks"`

	// MaxClients bounds how many clients' renderings and in-memory inputs
	// are held at once (default 10000). Least recently used go first.
	MaxClients int `yaml:"max_clients"`

	// ClientTTL drops a client's renderings and in-memory inputs this long
	// after they were last written (default 24h).
	ClientTTL time.Duration `yaml:"client_ttl"`
}

func defaultConfig() Config {
	return Config{
		Addr:           "localhost:3000",
		AllowedOrigins: []string{"*"},
		MaxWeeks:       defaultMaxWeeks,
		MaxClients:     defaultMaxClients,
		ClientTTL:      defaultClientTTL,
	}
}

// loadConfig reads path (a missing file is not an error), applies env
// overrides, and validates the result.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DB_URL"); v != "" {
		cfg.DBURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if v := os.Getenv("MAX_WEEKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MAX_WEEKS %q: %w", v, err)
		}
		cfg.MaxWeeks = n
	}

	if v := os.Getenv("MAX_CLIENTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MAX_CLIENTS %q: %w", v, err)
		}
		cfg.MaxClients = n
	}
	if v := os.Getenv("CLIENT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CLIENT_TTL %q: %w", v, err)
		}
		cfg.ClientTTL = d
	}

	if cfg.MaxWeeks <= 0 {
		return Config{}, fmt.Errorf("max_weeks must be positive, got %d", cfg.MaxWeeks)
	}
	if cfg.MaxClients <= 0 {
		return Config{}, fmt.Errorf("max_clients must be positive, got %d", cfg.MaxClients)
	}
	if cfg.ClientTTL <= 0 {
		return Config{}, fmt.Errorf("client_ttl must be positive, got %s", cfg.ClientTTL)
	}
	return cfg, nil
}
