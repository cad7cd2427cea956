// Package config provides configuration loading for seo-web.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"seo-web/internal/form"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "seo-web.yaml"

// Config represents the complete seo-web configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Form    FormConfig    `yaml:"form"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `yaml:"addr"`
	// ReadTimeout bounds reading a request, headers included
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// WriteTimeout bounds writing a response
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// BackendConfig points at the analysis backend whose JSON API is consumed
type BackendConfig struct {
	// BaseURL is the backend root, e.g. http://localhost:5000
	BaseURL string `yaml:"base_url"`
	// AnalyzePath receives valid analysis form submissions
	AnalyzePath string `yaml:"analyze_path"`
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration `yaml:"timeout"`
	// WaitReady polls /health before serving
	WaitReady bool `yaml:"wait_ready"`
	// ReadyAttempts caps the number of /health checks
	ReadyAttempts uint64 `yaml:"ready_attempts"`
}

type FormConfig struct {
	// DefaultAnalysisType preselects a type on the analysis page
	DefaultAnalysisType string `yaml:"default_analysis_type"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is json or text
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL:       "http://localhost:5000",
			AnalyzePath:   "/analyze",
			Timeout:       10 * time.Second,
			WaitReady:     false,
			ReadyAttempts: 5,
		},
		Form: FormConfig{
			DefaultAnalysisType: string(form.TypeMeta),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must use http or https")
	}
	if !strings.HasPrefix(c.Backend.AnalyzePath, "/") {
		return fmt.Errorf("backend.analyze_path must start with /")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if !form.AnalysisType(c.Form.DefaultAnalysisType).Known() {
		return fmt.Errorf("form.default_analysis_type must be one of meta, partial, complete, deep")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file over the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load reads path, or DefaultFile when path is empty. A missing default
// file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	config, err := LoadFromFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			config = DefaultConfig()
		} else {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// ParseLevel maps a level name onto slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error")
}
