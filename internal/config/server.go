package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds the backend stub settings
type ServerConfig struct {
	Port           int           `json:"port"`            // listen port
	ListingsFile   string        `json:"listings_file"`   // optional YAML listings, hot reloaded
	ServiceVersion string        `json:"service_version"` // reported by /api/status
	ReadTimeout    time.Duration `json:"read_timeout"`
	WriteTimeout   time.Duration `json:"write_timeout"`
	ReloadDebounce time.Duration `json:"reload_debounce"` // quiet period before a listings reload
}

const (
	defaultPort           = 4000
	defaultServiceVersion = "0.1.0"
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultReloadDebounce = 150 * time.Millisecond
)

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LoadServerConfig reads the server configuration from the environment,
// after loading a .env file if one is present
func LoadServerConfig() (*ServerConfig, error) {
	_ = godotenv.Load()

	cfg := &ServerConfig{
		Port:           defaultPort,
		ListingsFile:   os.Getenv("LISTINGS_FILE"),
		ServiceVersion: os.Getenv("SERVICE_VERSION"),
		ReadTimeout:    parseDurationOrDefault(os.Getenv("READ_TIMEOUT"), defaultReadTimeout),
		WriteTimeout:   parseDurationOrDefault(os.Getenv("WRITE_TIMEOUT"), defaultWriteTimeout),
		ReloadDebounce: parseDurationOrDefault(os.Getenv("RELOAD_DEBOUNCE"), defaultReloadDebounce),
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = defaultServiceVersion
	}
	if cfg.ListingsFile != "" {
		if _, err := os.Stat(cfg.ListingsFile); err != nil {
			return nil, fmt.Errorf("listings file %s: %w", cfg.ListingsFile, err)
		}
	}

	log.Printf("Configuration loaded: Port=%d, ListingsFile=%q, Version=%s",
		cfg.Port, cfg.ListingsFile, cfg.ServiceVersion)
	return cfg, nil
}

func parseDurationOrDefault(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Warning: Could not parse duration '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return d
}
