// Package config loads optional persistent defaults from the XDG config
// directory: a TOML file for flag defaults and an env-style file whose
// PCP_* keys override the TOML values.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the optional pcp configuration.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
}

// DefaultsConfig holds persistent flag defaults. Nil means "not set" so the
// CLI can tell a configured false apart from an absent key.
type DefaultsConfig struct {
	Workers *int     `toml:"workers"`
	Verify  *bool    `toml:"verify"`
	Exclude []string `toml:"exclude"`
}

// Dir returns the pcp config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pcp")
}

// Load reads config.toml and the env override file from the config
// directory. Missing files yield a zero Config; configuration is always
// optional.
func Load() (Config, error) {
	return load(Dir())
}

func load(dir string) (Config, error) {
	var cfg Config
	if dir == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(filepath.Join(dir, "config.toml"), &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	env, err := godotenv.Read(filepath.Join(dir, "env"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	applyEnv(&cfg, env)
	return cfg, nil
}

func applyEnv(cfg *Config, env map[string]string) {
	if v, ok := env["PCP_WORKERS"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Defaults.Workers = &n
		}
	}
	if v, ok := env["PCP_VERIFY"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Defaults.Verify = &b
		}
	}
}
