package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when neither config.toml nor the environment
// provides one.
const DefaultAPIURL = "http://localhost:5000/api"

// Config represents the global ~/.cmp/config.toml.
type Config struct {
	APIURL         string `toml:"api_url"`
	DefaultProfile string `toml:"default_profile"`
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithEnv reads config from path and overlays environment variables.
// A .env file in the working directory is loaded first if present.
// CMP_API_URL and CMP_PROFILE take precedence over the file; a missing
// config file is not an error.
func LoadWithEnv(path string) *Config {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		cfg = &Config{}
	}
	if v := os.Getenv("CMP_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("CMP_PROFILE"); v != "" {
		cfg.DefaultProfile = v
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
