// Package config loads the shim's optional settings file and applies
// environment overrides on top of it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by the shim.
const (
	EnvConfig   = "NODE_SHIM_CONFIG"
	EnvBinary   = "NODE_SHIM_DENO"
	EnvSpawn    = "NODE_SHIM_SPAWN"
	EnvLogLevel = "NODE_SHIM_LOG_LEVEL"
	EnvDebug    = "NODE_SHIM_DEBUG"
)

const DefaultBinary = "deno"

type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Log     LogConfig     `yaml:"log"`
	// Debug prints the translated invocation instead of launching it.
	Debug bool `yaml:"debug"`
}

type RuntimeConfig struct {
	Binary string `yaml:"binary"`
	Spawn  bool   `yaml:"spawn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{Binary: DefaultBinary},
		Log:     LogConfig{Level: "warn", Format: "text"},
	}
}

// DefaultPath honours NODE_SHIM_CONFIG, then XDG_CONFIG_HOME, then ~/.config.
func DefaultPath(getenv func(string) string) string {
	if p := strings.TrimSpace(getenv(EnvConfig)); p != "" {
		return expandHome(p, getenv)
	}
	if dir := strings.TrimSpace(getenv("XDG_CONFIG_HOME")); dir != "" {
		return filepath.Join(dir, "node-shim", "config.yaml")
	}
	return filepath.Join(homeDir(getenv), ".config", "node-shim", "config.yaml")
}

func homeDir(getenv func(string) string) string {
	if home := strings.TrimSpace(getenv("HOME")); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.TempDir()
}

// expandHome replaces a leading "~" with the home directory.
func expandHome(path string, getenv func(string) string) string {
	if path == "~" {
		return homeDir(getenv)
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(getenv), path[2:])
	}
	return path
}

// Load reads the file at path. A missing file is not an error: defaults
// are returned instead. Variables in runtime.binary are resolved via getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Runtime.Binary = os.Expand(cfg.Runtime.Binary, getenv)
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides file settings with NODE_SHIM_* variables. Flags like
// NODE_SHIM_DEBUG count as set when present at all, even if empty.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBinary); ok && strings.TrimSpace(v) != "" {
		c.Runtime.Binary = strings.TrimSpace(v)
	}
	if _, ok := lookup(EnvSpawn); ok {
		c.Runtime.Spawn = true
	}
	if _, ok := lookup(EnvDebug); ok {
		c.Debug = true
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = v
	}
	return c.normalize()
}

func (c *Config) normalize() error {
	if c.Runtime.Binary == "" {
		c.Runtime.Binary = DefaultBinary
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "":
		level = "warn"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn, or error)", c.Log.Level)
	}
	c.Log.Level = level

	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch format {
	case "":
		format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (expected text or json)", c.Log.Format)
	}
	c.Log.Format = format
	return nil
}
