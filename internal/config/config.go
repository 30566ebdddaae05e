package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"exlookup/internal/insights"
	"exlookup/internal/validation"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Optional backing services
	DatabaseURL string // Postgres for persisted lookup tallies; empty disables
	RedisURL    string // Shared rate limiter storage; empty keeps counters in memory

	// CORS
	CORSOrigins string // Comma-separated allowed origins for the JSON API

	// Rate limiting
	RateLimitMax int // Requests per minute per IP

	// Settings file
	ConfigFile string // env: CONFIG_FILE, default: "config.yaml"

	// Telemetry backend
	APIURL        string        // URL template with {0}..{3} placeholders
	AppID         string        // Application Insights application id
	APIKey        string        // Sent as x-api-key
	LookupTimeout time.Duration // Overall timeout for one lookup request

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "Application Exception Lookup"
	SiteFooter string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
// Endpoint settings missing from the environment are filled from the YAML
// settings file named by CONFIG_FILE.
func Load() (*Config, error) {
	cfg := &Config{
		Env:           getEnv("ENV", "development"),
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),
		RateLimitMax:  getEnvInt("RATE_LIMIT_MAX", 100),
		ConfigFile:    getEnv("CONFIG_FILE", "config.yaml"),
		APIURL:        getEnv("APPINSIGHTS_API_URL", ""),
		AppID:         getEnv("APPINSIGHTS_APP_ID", ""),
		APIKey:        getEnv("APPINSIGHTS_API_KEY", ""),
		LookupTimeout: getEnvDuration("LOOKUP_TIMEOUT", 30*time.Second),
		SiteTitle:     getEnv("SITE_TITLE", "Application Exception Lookup"),
		SiteFooter:    getEnv("SITE_FOOTER", "Application Exception Lookup"),
	}

	settings, err := LoadSettingsFile(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("load settings file %s: %w", cfg.ConfigFile, err)
	}
	cfg.ApplySettings(settings)

	if cfg.APIURL == "" {
		cfg.APIURL = insights.DefaultURLTemplate
	}
	return cfg, nil
}

// ApplySettings fills endpoint fields that are still empty from the settings
// file. Environment values win.
func (c *Config) ApplySettings(s *Settings) {
	if s == nil {
		return
	}
	ai := s.ApplicationInsights
	if c.APIURL == "" {
		c.APIURL = ai.APIURL
	}
	if c.AppID == "" {
		c.AppID = ai.AppID
	}
	if c.APIKey == "" {
		c.APIKey = ai.APIKey
	}
}

// Endpoint returns the bound telemetry endpoint settings.
func (c *Config) Endpoint() insights.Endpoint {
	return insights.Endpoint{
		URLTemplate: c.APIURL,
		AppID:       c.AppID,
		APIKey:      c.APIKey,
	}
}

// Validate reports missing or malformed endpoint settings.
func (c *Config) Validate() error {
	var errs []error
	if c.AppID == "" {
		errs = append(errs, errors.New("APPINSIGHTS_APP_ID is required"))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("APPINSIGHTS_API_KEY is required"))
	}
	if valid, msg := validation.ValidateURLTemplate(c.APIURL); !valid {
		errs = append(errs, fmt.Errorf("APPINSIGHTS_API_URL: %s", msg))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
