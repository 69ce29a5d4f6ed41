package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type Config struct {
	AuthSecret   string
	DatabaseURI  string
	DatabaseName string
	Port         string
	APIPrefix    string
	LogLevel     log.Lvl
}

var ErrMissingSecret = errors.New("AUTH_SECRET is required")

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		AuthSecret:   os.Getenv("AUTH_SECRET"),
		DatabaseURI:  env("DATABASE_URI", "./database.db"),
		DatabaseName: env("DATABASE_NAME", "appointments"),
		Port:         env("PORT", "6060"),
		APIPrefix:    normalizePrefix(env("API_PREFIX", "/api")),
		LogLevel:     parseLevel(os.Getenv("LOG_LEVEL")),
	}

	if cfg.AuthSecret == "" {
		return nil, ErrMissingSecret
	}
	return cfg, nil
}

// UsesMongo reports whether DatabaseURI points at a MongoDB deployment.
// Anything else is treated as a SQLite file.
func (c *Config) UsesMongo() bool {
	return strings.HasPrefix(c.DatabaseURI, "mongodb://") || strings.HasPrefix(c.DatabaseURI, "mongodb+srv://")
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func normalizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func parseLevel(raw string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
