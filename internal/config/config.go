// Package config loads supergraph settings from defaults, an optional YAML
// file and SUPERGRAPH_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/supergraph/internal/application"
	"github.com/inovacc/supergraph/internal/model"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file name (without extension).
	FileName = "config"
	// FileExt is the config file extension.
	FileExt = "yaml"
)

// Config holds the application configuration
type Config struct {
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	NoColor  bool           `mapstructure:"no_color" yaml:"no_color"`

	// Path is the config file that was read, empty when only defaults and
	// environment were used.
	Path string `mapstructure:"-" yaml:"-"`
}

// RegistryConfig selects the schema registry.
type RegistryConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

// StorageConfig selects where profiles are kept.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // bolt or sqlite
	Dir     string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// FilePath forces loading from a specific config file when set.
	FilePath string
	// Dir overrides the config directory lookup when set.
	Dir string
}

// Default returns a Config with sensible defaults. dir is the application
// directory used for storage.
func Default(dir string) Config {
	return Config{
		Registry: RegistryConfig{Endpoint: model.DefaultEndpoint()},
		Storage:  StorageConfig{Backend: "bolt", Dir: dir},
		Log:      LogConfig{Level: "warn", Format: "text"},
	}
}

// Load reads the configuration.
func Load(opts LoadOptions) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		var err error

		if dir, err = application.GetApplicationDirectory(); err != nil {
			return nil, err
		}
	}

	v := viper.New()

	defaults := Default(dir)
	v.SetDefault("registry.endpoint", defaults.Registry.Endpoint)
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.dir", defaults.Storage.Dir)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("no_color", defaults.NoColor)

	v.SetEnvPrefix(application.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := opts.FilePath
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else if candidate := filepath.Join(dir, FileName+"."+FileExt); fileExists(candidate) {
		path = candidate
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(FileExt)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case "bolt", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be bolt or sqlite, got %q", c.Storage.Backend))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	if c.Registry.Endpoint == "" {
		errs = append(errs, errors.New("registry.endpoint must not be empty"))
	}

	return errors.Join(errs...)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
