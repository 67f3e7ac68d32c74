package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBaseURL = "https://api.bitemap.app/v1"
	defaultDBPath     = "bitemap.db"
	defaultFeedLimit  = 50
)

// Config holds runtime settings for the CLI app. Values come from an
// optional YAML file (with ${VAR} expansion), overridden by environment
// variables.
type Config struct {
	APIBaseURL string `yaml:"api_base_url"`
	APIKey     string `yaml:"api_key"`
	DBPath     string `yaml:"db_path"`
	FeedLimit  int    `yaml:"feed_limit"`
	LogLevel   string `yaml:"log_level"`

	Profile Profile `yaml:"profile"`
}

// Profile is the static account summary shown on the profile screen.
type Profile struct {
	DisplayName string `yaml:"display_name"`
	Handle      string `yaml:"handle"`
}

// Load reads the optional config file at path (skipped when empty or
// missing), then applies environment overrides and defaults. A .env file in
// the working directory is honored first.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BITEMAP_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BITEMAP_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("BITEMAP_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BITEMAP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BITEMAP_FEED_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FeedLimit = n
		}
	}
	if v := os.Getenv("BITEMAP_PROFILE_NAME"); v != "" {
		cfg.Profile.DisplayName = v
	}
	if v := os.Getenv("BITEMAP_PROFILE_HANDLE"); v != "" {
		cfg.Profile.Handle = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = defaultFeedLimit
	}
	if cfg.Profile.DisplayName == "" {
		cfg.Profile.DisplayName = "Food Explorer"
	}
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("BITEMAP_API_KEY is required")
	}
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if strings.HasSuffix(c.APIBaseURL, "/") {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	return nil
}
