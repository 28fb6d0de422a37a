package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the connection settings for one CMS instance plus the
// browse defaults.
type Config struct {
	Token    string `mapstructure:"token" yaml:"token"`
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
	Sort     string `mapstructure:"sort" yaml:"sort"`
}

const envPrefix = "MEDIABROWSE"

// DefaultPath returns ~/.mediarc.yml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".mediarc.yml")
}

// Load reads the config file at path and applies MEDIABROWSE_* environment
// overrides. A missing file is not an error; env and defaults still apply.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, key := range []string{"token", "base_url", "page_size", "sort"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}
	v.SetDefault("base_url", "http://localhost:1337")
	v.SetDefault("page_size", 20)
	v.SetDefault("sort", "createdAt:desc")

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML with user-only permissions.
func Save(path string, cfg Config) error {
	if cfg.Token == "" {
		return errors.New("refusing to save config without a token")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
