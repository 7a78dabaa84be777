// Package config loads client settings from TOML files and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultAPIURL    = "http://localhost:7000"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	UserDirName     = ".tada"
	UserConfigName  = "config.toml"
	ProjectFileName = "tada.toml"
)

// Config holds everything the client can be told from outside.
type Config struct {
	// Endpoint root of the to-do service.
	APIURL string `toml:"api_url"`

	// Appearance
	Theme   string `toml:"theme"` // classic, neon, mono
	NoColor bool   `toml:"no_color"`

	// Logging
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. User file (~/.tada/config.toml)
// 3. Project file (./tada.toml)
// 4. Environment
//
// A non-empty explicit path replaces steps 2 and 3 and must exist.
// Flags are applied by the caller afterwards.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	if explicit != "" {
		if err := loadFile(cfg, explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	} else {
		for _, p := range []string{userConfigPath(), ProjectFileName} {
			if p == "" || !fileExists(p) {
				continue
			}
			if err := loadFile(cfg, p); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", p, err)
			}
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TADA_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(strings.TrimSpace(c.APIURL))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("api_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api_url %q: scheme must be http or https", c.APIURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("api_url %q: missing host", c.APIURL))
	}
	if !oneOf(c.Theme, "classic", "neon", "mono") {
		errs = append(errs, fmt.Errorf("theme %q: want classic, neon or mono", c.Theme))
	}
	if !oneOf(c.LogLevel, "debug", "info", "warn", "warning", "error") {
		errs = append(errs, fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel))
	}
	if !oneOf(c.LogFormat, "text", "json", "logfmt") {
		errs = append(errs, fmt.Errorf("log_format %q: want text, json or logfmt", c.LogFormat))
	}
	return errors.Join(errs...)
}

func oneOf(v string, allowed ...string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func userConfigPath() string {
	if p := os.Getenv("TADA_CONFIG_HOME"); p != "" {
		return filepath.Join(p, UserConfigName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserDirName, UserConfigName)
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}
