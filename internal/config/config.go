// Package config loads the leadform service configuration from YAML with
// LEADFORM_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Forms     FormsConfig     `yaml:"forms"`
	Session   SessionConfig   `yaml:"session"`
	Countries CountriesConfig `yaml:"countries"`
	Submit    SubmitConfig    `yaml:"submit"`
	Log       LogConfig       `yaml:"log"`
	Theme     ThemeConfig     `yaml:"theme"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	// TemplatesDir, when set, loads page templates from disk.
	TemplatesDir string `yaml:"templates_dir"`
}

// FormsConfig points at an external forms document. Empty Document uses
// the embedded one.
type FormsConfig struct {
	// Document is a file path or http(s) URL.
	Document string        `yaml:"document"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SessionConfig configures inquiry sessions and their challenge.
type SessionConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CullInterval    time.Duration `yaml:"cull_interval"`
	ChallengeLength int           `yaml:"challenge_length"`
	CaseInsensitive bool          `yaml:"case_insensitive"`
}

// CountriesConfig configures the country list collaborator.
type CountriesConfig struct {
	URL      string        `yaml:"url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// Static replaces the remote list when non-empty.
	Static []string `yaml:"static"`
}

// SubmitConfig configures where validated submissions go. An empty
// WebhookURL logs submissions only.
type SubmitConfig struct {
	WebhookURL string            `yaml:"webhook_url"`
	Timeout    time.Duration     `yaml:"timeout"`
	Headers    map[string]string `yaml:"headers"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// ThemeConfig picks the site theme.
type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Forms: FormsConfig{
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CullInterval:    time.Minute,
			ChallengeLength: 6,
		},
		Countries: CountriesConfig{
			URL:      "https://restcountries.com/v2/all?fields=name",
			Timeout:  5 * time.Second,
			CacheTTL: 24 * time.Hour,
		},
		Submit: SubmitConfig{
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Theme: ThemeConfig{
			Name: "leadform",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file yields the defaults; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("LEADFORM_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LEADFORM_SECURE_COOKIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: LEADFORM_SECURE_COOKIES: %w", err)
		}
		c.Server.SecureCookies = b
	}
	if v := os.Getenv("LEADFORM_TEMPLATES_DIR"); v != "" {
		c.Server.TemplatesDir = v
	}
	if v := os.Getenv("LEADFORM_FORMS_DOCUMENT"); v != "" {
		c.Forms.Document = v
	}
	if v := os.Getenv("LEADFORM_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: LEADFORM_SESSION_TTL: %w", err)
		}
		c.Session.TTL = d
	}
	if v := os.Getenv("LEADFORM_COUNTRIES_URL"); v != "" {
		c.Countries.URL = v
	}
	if v := os.Getenv("LEADFORM_COUNTRIES"); v != "" {
		c.Countries.Static = splitList(v)
	}
	if v := os.Getenv("LEADFORM_WEBHOOK_URL"); v != "" {
		c.Submit.WebhookURL = v
	}
	if v := os.Getenv("LEADFORM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LEADFORM_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("LEADFORM_THEME"); v != "" {
		name, variant, _ := strings.Cut(v, ":")
		c.Theme.Name = name
		c.Theme.Variant = variant
	}
	return nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr is required")
	}
	if c.Session.TTL <= 0 {
		problems = append(problems, "session.ttl must be positive")
	}
	if c.Session.ChallengeLength < 4 {
		problems = append(problems, "session.challenge_length must be at least 4")
	}
	if len(c.Countries.Static) == 0 && strings.TrimSpace(c.Countries.URL) == "" {
		problems = append(problems, "countries.url or countries.static is required")
	}
	if c.Submit.WebhookURL != "" && !strings.HasPrefix(c.Submit.WebhookURL, "http://") && !strings.HasPrefix(c.Submit.WebhookURL, "https://") {
		problems = append(problems, "submit.webhook_url must be an http(s) URL")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not one of json, console", c.Log.Format))
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
