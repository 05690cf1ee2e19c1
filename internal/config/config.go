// Package config loads the seekinject configuration file and applies
// environment overrides and defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/seekinject/internal/exclude"
	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
	"git.home.luguber.info/inful/seekinject/internal/inject"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "seekinject.yaml"

// Environment variables that override file values.
const (
	EnvSiteID   = "SEEKINJECT_SITE_ID"
	EnvTagID    = "SEEKINJECT_TAG_ID"
	EnvLogLevel = "SEEKINJECT_LOG_LEVEL"
)

// Config is the seekinject configuration file.
type Config struct {
	SiteID  string        `yaml:"site_id"`
	TagID   string        `yaml:"tag_id,omitempty"`
	Exclude exclude.Rules `yaml:"exclude,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// LoggingConfig controls the slog handler built by the CLI.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// Load reads the configuration at path. A missing file is only an error when
// required is set; otherwise flags and environment variables are expected to
// supply everything. Environment overrides and defaults apply in both cases.
func Load(path string, required bool) (*Config, error) {
	loadEnvFile()

	cfg := &Config{}
	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied config path
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if ce, ok := errors.AsClassified(err); ok {
				return nil, ce.WithContext("path", path)
			}
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
				Fatal().
				WithContext("path", path).
				Build()
		}
	case os.IsNotExist(err) && !required:
	case os.IsNotExist(err):
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", path).
			Build()
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}

	cfg.expandEnv()
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// expandEnv resolves ${VAR} references in the identifier fields. Exclude
// rules are left alone: "$" is a regex anchor.
func (c *Config) expandEnv() {
	c.SiteID = os.ExpandEnv(c.SiteID)
	c.TagID = os.ExpandEnv(c.TagID)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSiteID); v != "" {
		c.SiteID = v
	}
	if v := os.Getenv(EnvTagID); v != "" {
		c.TagID = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = LogLevel(v)
	}
}

func (c *Config) applyDefaults() {
	c.SiteID = strings.TrimSpace(c.SiteID)
	if c.TagID == "" {
		c.TagID = inject.DefaultTagID
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
}

// Validate checks the fields a run cannot start without.
func (c *Config) Validate() error {
	if c.SiteID == "" {
		return errors.ConfigError("site id is required").
			WithContext("field", "site_id").
			WithContext("hint", fmt.Sprintf("set site_id, %s or --site-id", EnvSiteID)).
			Build()
	}
	return nil
}

// Init writes an example configuration file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal configuration").Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}

// Example returns the configuration written by Init.
func Example() *Config {
	rules, err := exclude.ParseFlags([]string{"/admin", "re:^/preview", "glob:/drafts/**"})
	if err != nil {
		panic(err)
	}
	return &Config{
		SiteID:  "YOUR-SITE-ID",
		TagID:   inject.DefaultTagID,
		Exclude: rules,
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}
