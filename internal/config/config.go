package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	CORSAllowOrigins []string
	DatabaseURL      string
	SearchDelay      time.Duration
	ApplyDelay       time.Duration
	SessionTTL       time.Duration
	SweepInterval    time.Duration
	LogLevel         slog.Level
	LogFormat        string
}

// Load reads the environment, after a best-effort load of the given .env files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg := Config{
		Port:             port,
		CORSAllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		LogFormat:        normalizeFormat(getEnv("LOG_FORMAT", "json")),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"SEARCH_DELAY", "2s", &cfg.SearchDelay},
		{"APPLY_DELAY", "5s", &cfg.ApplyDelay},
		{"SESSION_TTL", "30m", &cfg.SessionTTL},
		{"SWEEP_INTERVAL", "1m", &cfg.SweepInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		if v < 0 {
			return Config{}, fmt.Errorf("invalid %s: must not be negative", d.key)
		}
		*d.dst = v
	}
	if cfg.SweepInterval == 0 {
		return Config{}, fmt.Errorf("invalid SWEEP_INTERVAL: must be positive")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeFormat(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "text") {
		return "text"
	}
	return "json"
}
