package config

import (
	"errors"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
)

// Config holds all dashboard settings, populated from environment variables.
// Every setting has a default, so the dashboard runs with no environment.
type Config struct {
	DataPath        string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Map base layer. Mapbox-hosted styles need a token.
	MapStyle    string
	MapboxToken string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataPath:        sharedcfg.EnvOrDefault("DATA_PATH", "crime.csv"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", "127.0.0.1:8050"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		MapStyle:        sharedcfg.EnvOrDefault("MAP_STYLE", domain.DefaultMapStyle),
		MapboxToken:     os.Getenv("MAPBOX_TOKEN"),
	}

	if cfg.DataPath == "" {
		return nil, errors.New("DATA_PATH is required")
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if needsMapboxToken(cfg.MapStyle) && cfg.MapboxToken == "" {
		return nil, errors.New("MAP_STYLE " + cfg.MapStyle + " requires MAPBOX_TOKEN")
	}

	return cfg, nil
}

// MapOptions returns the base layer settings for the scatter map.
func (c *Config) MapOptions() domain.MapOptions {
	return domain.MapOptions{Style: c.MapStyle, AccessToken: c.MapboxToken}
}

// needsMapboxToken reports whether style is served by Mapbox rather than one
// of plotly's token-free tile sources.
func needsMapboxToken(style string) bool {
	switch style {
	case "open-street-map", "white-bg", "carto-positron", "carto-darkmatter",
		"stamen-terrain", "stamen-toner", "stamen-watercolor":
		return false
	default:
		return true
	}
}
