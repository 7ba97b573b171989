package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aleksandradimitrov/wikipedia-task/internal/constants"
	"github.com/aleksandradimitrov/wikipedia-task/internal/logging"
	"github.com/aleksandradimitrov/wikipedia-task/internal/title"
)

// Viper keys. They match the YAML field names so that a bound flag, a file
// value and a default all resolve through the same key.
const (
	KeyBaseURL       = "base_url"
	KeyTarget        = "target"
	KeySource        = "source"
	KeyNeighborLimit = "neighbor_limit"
	KeyConcurrency   = "concurrency"
	KeyMaxDepth      = "max_depth"
	KeyRateLimit     = "rate_limit"
	KeyBurst         = "burst"
	KeyTimeout       = "timeout"
	KeyUserAgent     = "user_agent"
	KeyCacheSize     = "cache_size"
	KeyLogLevel      = "log_level"
)

// Config holds the settings of a search run.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	Target        string        `yaml:"target"`
	Source        string        `yaml:"source"`
	NeighborLimit int           `yaml:"neighbor_limit"`
	Concurrency   int           `yaml:"concurrency"`
	MaxDepth      int           `yaml:"max_depth"`
	RateLimit     float64       `yaml:"rate_limit"`
	Burst         int           `yaml:"burst"`
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	CacheSize     int           `yaml:"cache_size"`
	LogLevel      string        `yaml:"log_level"`

	home string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:       constants.DefaultBaseURL,
		Target:        constants.DefaultTarget,
		Source:        constants.SourceHTML,
		NeighborLimit: constants.NeighborLimit,
		Concurrency:   1,
		MaxDepth:      0,
		RateLimit:     constants.DefaultRateLimit,
		Burst:         constants.DefaultBurst,
		Timeout:       constants.DefaultTimeout,
		UserAgent:     constants.DefaultUserAgent,
		CacheSize:     constants.DefaultCacheSize,
		LogLevel:      constants.DefaultLogLevel,
	}
}

// Load reads the configuration file under home. A missing or empty file
// yields the defaults; keys absent from the file keep their default value.
// The result is registered as viper defaults so that bound flags override it.
func Load(home string) (*Config, error) {
	cfg := Default()
	cfg.home = home

	data, err := os.ReadFile(GetConfigPath(home))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", GetConfigPath(home), err)
	case len(strings.TrimSpace(string(data))) > 0:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", GetConfigPath(home), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.syncViper()
	return cfg, nil
}

// FromViper builds the effective configuration from viper, where flags take
// precedence over file values and file values over defaults.
func FromViper() (*Config, error) {
	cfg := &Config{
		BaseURL:       strings.TrimRight(viper.GetString(KeyBaseURL), "/"),
		Target:        viper.GetString(KeyTarget),
		Source:        strings.ToLower(viper.GetString(KeySource)),
		NeighborLimit: viper.GetInt(KeyNeighborLimit),
		Concurrency:   viper.GetInt(KeyConcurrency),
		MaxDepth:      viper.GetInt(KeyMaxDepth),
		RateLimit:     viper.GetFloat64(KeyRateLimit),
		Burst:         viper.GetInt(KeyBurst),
		Timeout:       viper.GetDuration(KeyTimeout),
		UserAgent:     viper.GetString(KeyUserAgent),
		CacheSize:     viper.GetInt(KeyCacheSize),
		LogLevel:      viper.GetString(KeyLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and returns the first problem as a
// *FieldError wrapping ErrInvalid.
func (cfg *Config) Validate() error {
	if _, err := title.NewSite(cfg.BaseURL); err != nil {
		return invalid(KeyBaseURL, err.Error())
	}
	if strings.TrimSpace(cfg.Target) == "" {
		return invalid(KeyTarget, "must not be empty")
	}
	if cfg.Source != constants.SourceHTML && cfg.Source != constants.SourceAPI {
		return invalid(KeySource, fmt.Sprintf("%q is not one of %q, %q",
			cfg.Source, constants.SourceHTML, constants.SourceAPI))
	}
	if cfg.NeighborLimit < 1 {
		return invalid(KeyNeighborLimit, fmt.Sprintf("must be at least 1, got %d", cfg.NeighborLimit))
	}
	if cfg.Concurrency < 1 {
		return invalid(KeyConcurrency, fmt.Sprintf("must be at least 1, got %d", cfg.Concurrency))
	}
	if cfg.MaxDepth < 0 {
		return invalid(KeyMaxDepth, fmt.Sprintf("must not be negative, got %d", cfg.MaxDepth))
	}
	if cfg.RateLimit < 0 {
		return invalid(KeyRateLimit, fmt.Sprintf("must not be negative, got %g", cfg.RateLimit))
	}
	if cfg.Burst < 1 {
		return invalid(KeyBurst, fmt.Sprintf("must be at least 1, got %d", cfg.Burst))
	}
	if cfg.Timeout < 0 {
		return invalid(KeyTimeout, fmt.Sprintf("must not be negative, got %s", cfg.Timeout))
	}
	if cfg.CacheSize < 0 {
		return invalid(KeyCacheSize, fmt.Sprintf("must not be negative, got %d", cfg.CacheSize))
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return invalid(KeyLogLevel, err.Error())
	}
	return nil
}

// Save validates cfg and writes it to the configuration file under home.
func (cfg *Config) Save(home string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	path := GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	cfg.home = home
	return nil
}

// Path returns the file the configuration was loaded from, or "" for a
// configuration that never touched disk.
func (cfg *Config) Path() string {
	if cfg.home == "" {
		return ""
	}
	return GetConfigPath(cfg.home)
}

func (cfg *Config) syncViper() {
	viper.SetDefault(KeyBaseURL, cfg.BaseURL)
	viper.SetDefault(KeyTarget, cfg.Target)
	viper.SetDefault(KeySource, cfg.Source)
	viper.SetDefault(KeyNeighborLimit, cfg.NeighborLimit)
	viper.SetDefault(KeyConcurrency, cfg.Concurrency)
	viper.SetDefault(KeyMaxDepth, cfg.MaxDepth)
	viper.SetDefault(KeyRateLimit, cfg.RateLimit)
	viper.SetDefault(KeyBurst, cfg.Burst)
	viper.SetDefault(KeyTimeout, cfg.Timeout)
	viper.SetDefault(KeyUserAgent, cfg.UserAgent)
	viper.SetDefault(KeyCacheSize, cfg.CacheSize)
	viper.SetDefault(KeyLogLevel, cfg.LogLevel)
}
