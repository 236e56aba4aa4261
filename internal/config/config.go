package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/scoop-manifest/internal/logger"
)

// Config holds the settings of a manifest generation run.
type Config struct {
	// APIURL is the base URL of the GitHub REST API.
	APIURL string `yaml:"api_url"`
	// Token is an optional GitHub token sent as a bearer credential.
	Token string `yaml:"token,omitempty"`
	// Timeout bounds the release listing request.
	Timeout time.Duration `yaml:"timeout"`
	// DownloadTimeout bounds each asset download.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	// License is written to the manifest; empty means "unknown".
	License string `yaml:"license,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// OutputDir is where the manifest is written; empty means the working directory.
	OutputDir string `yaml:"output_dir,omitempty"`
}

const (
	// DefaultConfigFilename is looked up in the working directory when no path is given.
	DefaultConfigFilename = "scoop-manifest.yaml"

	// DefaultAPIURL is the public GitHub API.
	DefaultAPIURL = "https://api.github.com/"

	// DefaultTimeout is the default duration for API calls.
	DefaultTimeout = 30 * time.Second

	// DefaultDownloadTimeout is the default duration for a single asset download.
	DefaultDownloadTimeout = 10 * time.Minute

	// DefaultLogLevel is used when none is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is used for the config file, which may hold a token.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{
		APIURL:          DefaultAPIURL,
		Timeout:         DefaultTimeout,
		DownloadTimeout: DefaultDownloadTimeout,
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads configuration from path and validates it.
// An empty path means DefaultConfigFilename, which may be absent.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults for zero values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	if _, err := url.ParseRequestURI(cfg.APIURL); err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = DefaultDownloadTimeout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %s", errUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}
