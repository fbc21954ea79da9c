// Package config loads CLI settings from a YAML file, a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the shell and the subcommands.
// Empty fields mean "not configured".
type Config struct {
	File      string `yaml:"file,omitempty"`
	Sheet     string `yaml:"sheet,omitempty"`
	Header    bool   `yaml:"header,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "sheetstore"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	DefaultFile     = "Batam_Schneider_Etry_Data_File1.xlsx"
	DefaultSheet    = "Data1"
	DefaultLogLevel = "warn"
)

// Environment variables that override the config file.
const (
	EnvFile      = "SHEETSTORE_FILE"
	EnvSheet     = "SHEETSTORE_SHEET"
	EnvHeader    = "SHEETSTORE_HEADER"
	EnvLogLevel  = "SHEETSTORE_LOG_LEVEL"
	EnvLogFormat = "SHEETSTORE_LOG_FORMAT"
)

// DefaultPath returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/sheetstore/config.yml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// LoadEnvFile loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFile(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFile); ok && v != "" {
		c.File = v
	}
	if v, ok := lookup(EnvSheet); ok && v != "" {
		c.Sheet = v
	}
	if v, ok := lookup(EnvHeader); ok && v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", EnvHeader, v)
		}
		c.Header = b
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = v
	}
	return nil
}

// FileOrDefault returns the configured document path or DefaultFile.
func (c *Config) FileOrDefault() string {
	if c.File != "" {
		return c.File
	}
	return DefaultFile
}

// SheetOrDefault returns the configured sheet name or DefaultSheet.
func (c *Config) SheetOrDefault() string {
	if c.Sheet != "" {
		return c.Sheet
	}
	return DefaultSheet
}

// LogLevelOrDefault returns the configured log level or DefaultLogLevel.
func (c *Config) LogLevelOrDefault() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return DefaultLogLevel
}
