package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	pkgconfig "github.com/utafrali/BlogGo/pkg/config"
)

// Config holds all configuration for the blog client application.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"3000"`

	// Remote blog platform API.
	APIBaseURL string `env:"BLOG_API_URL" envDefault:"http://localhost:8080/api"`

	// Persisted credential storage. Empty means the default path under the
	// user config directory.
	CredentialsFile string `env:"CREDENTIALS_FILE"`

	// Number of posts shown in the popular sidebar on the home page.
	PopularLimit int `env:"POPULAR_LIMIT" envDefault:"5"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load blog client config: %w", err)
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = defaultCredentialsFile()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "bloggo", "credentials.json")
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort)
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BLOG_API_URL %q is not an absolute URL", c.APIBaseURL)
	}
	if c.PopularLimit < 1 {
		return fmt.Errorf("POPULAR_LIMIT must be positive, got %d", c.PopularLimit)
	}
	return nil
}
