// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Content source modes.
const (
	SourceCMS    = "cms"
	SourceMirror = "mirror"
)

// envPrefix is prepended to every variable name.
const envPrefix = "MARQUEE_"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8080"`
	SiteName   string `env:"SITE_NAME" envDefault:"Marquee Media"`
	// ContentSource selects where pages read from: the CMS API directly, or the
	// local SQLite mirror kept current by the sync loop.
	ContentSource     string        `env:"CONTENT_SOURCE" envDefault:"cms"`
	DBPath            string        `env:"DB_PATH" envDefault:"marquee.db"`
	SyncInterval      time.Duration `env:"SYNC_INTERVAL" envDefault:"5m"`
	SyncWebhookSecret string        `env:"SYNC_WEBHOOK_SECRET"`

	CMS   CMSConfig   `envPrefix:"CMS_"`
	Media MediaConfig `envPrefix:"MEDIA_"`
}

// CMSConfig holds the headless CMS connection settings.
type CMSConfig struct {
	ProjectID  string `env:"PROJECT_ID"`
	Dataset    string `env:"DATASET" envDefault:"production"`
	APIVersion string `env:"API_VERSION" envDefault:"2021-10-21"`
	Token      string `env:"TOKEN"`
	UseCDN     bool   `env:"USE_CDN" envDefault:"true"`
	// BaseURL overrides the project API host, for local emulators and tests.
	BaseURL string `env:"BASE_URL"`
}

// MediaConfig holds the media asset URL settings.
type MediaConfig struct {
	ImageBaseURL    string `env:"IMAGE_BASE_URL" envDefault:"https://cdn.sanity.io"`
	ExternalBaseURL string `env:"EXTERNAL_BASE_URL" envDefault:"https://res.cloudinary.com"`
	CloudName       string `env:"CLOUD_NAME"`
	FallbackURL     string `env:"FALLBACK_URL" envDefault:"/static/img/placeholder.svg"`
}

// UsesMirror reports whether pages are served from the local mirror.
func (c *Config) UsesMirror() bool {
	return c.ContentSource == SourceMirror
}

// Load reads configuration from environment variables and returns a validated
// Config. Variables from a .env file (MARQUEE_ENV_FILE, default ".env") are
// loaded first when the file exists; variables already set in the process
// environment take precedence.
func Load() (*Config, error) {
	return load(true)
}

// LoadLocal is Load without the CMS connection checks, for maintenance
// commands that only touch the local mirror.
func LoadLocal() (*Config, error) {
	return load(false)
}

func load(requireCMS bool) (*Config, error) {
	envFile := ".env"
	if v, ok := os.LookupEnv(envPrefix + "ENV_FILE"); ok {
		envFile = v
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if requireCMS {
		if err := cfg.validateCMS(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.ContentSource {
	case SourceCMS, SourceMirror:
	default:
		return fmt.Errorf("%sCONTENT_SOURCE must be %q or %q, got %q", envPrefix, SourceCMS, SourceMirror, c.ContentSource)
	}

	if c.UsesMirror() && c.SyncInterval <= 0 {
		return fmt.Errorf("%sSYNC_INTERVAL must be positive, got %s", envPrefix, c.SyncInterval)
	}

	return nil
}

func (c *Config) validateCMS() error {
	if c.CMS.ProjectID == "" && c.CMS.BaseURL == "" {
		return fmt.Errorf("%sCMS_PROJECT_ID or %sCMS_BASE_URL is required", envPrefix, envPrefix)
	}
	if c.CMS.Dataset == "" {
		return fmt.Errorf("%sCMS_DATASET must not be empty", envPrefix)
	}
	return nil
}
