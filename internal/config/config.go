package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type AuthConfig struct {
	CountryCode string `yaml:"country_code"`
	OTPLength   int    `yaml:"otp_length"`
	DefaultDest string `yaml:"default_destination"`
}

type ListingConfig struct {
	MinPrice  int `yaml:"min_price"`
	MaxPrice  int `yaml:"max_price"`
	MaxImages int `yaml:"max_images"`
}

type StorageConfig struct {
	StateFile string `yaml:"state_file"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ConfigFile struct {
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Listing ListingConfig `yaml:"listing"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type Config struct {
	APIBaseURL  string
	APITimeout  time.Duration
	CountryCode string
	OTPLength   int
	DefaultDest string
	MinPrice    int
	MaxPrice    int
	MaxImages   int
	StateFile   string
	LogLevel    string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads config/config.yml when present and applies environment
// overrides; a missing file falls back to defaults so the CLI works out of
// the box.
func Load() (*Config, error) {
	file := &ConfigFile{}
	if loaded, err := loadConfigFile(env("BAZAAR_CONFIG", "config/config.yml")); err == nil {
		file = loaded
	}

	timeout := 15 * time.Second
	if file.API.Timeout != "" {
		parsed, err := time.ParseDuration(file.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid api timeout: %w", err)
		}
		timeout = parsed
	}

	stateFile := file.Storage.StateFile
	if stateFile == "" {
		stateFile = defaultStateFile()
	}

	cfg := &Config{
		APIBaseURL:  env("BAZAAR_API_URL", withDefault(file.API.BaseURL, "https://api.bharatautobazaar.com/api/v1")),
		APITimeout:  timeout,
		CountryCode: env("BAZAAR_COUNTRY_CODE", withDefault(file.Auth.CountryCode, "+91")),
		OTPLength:   intDefault(file.Auth.OTPLength, 6),
		DefaultDest: withDefault(file.Auth.DefaultDest, "dashboard"),
		MinPrice:    envInt("BAZAAR_MIN_PRICE", intDefault(file.Listing.MinPrice, 50000)),
		MaxPrice:    envInt("BAZAAR_MAX_PRICE", intDefault(file.Listing.MaxPrice, 10000000)),
		MaxImages:   intDefault(file.Listing.MaxImages, 10),
		StateFile:   env("BAZAAR_STATE_FILE", stateFile),
		LogLevel:    env("BAZAAR_LOG_LEVEL", withDefault(file.Log.Level, "info")),
	}

	if cfg.MinPrice <= 0 || cfg.MaxPrice <= cfg.MinPrice {
		return nil, fmt.Errorf("invalid price bounds: min=%d max=%d", cfg.MinPrice, cfg.MaxPrice)
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bazaar_state.json"
	}
	return filepath.Join(home, ".bharatautobazaar", "state.json")
}

func withDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func intDefault(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
