package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is unset. It is optional: the CLI and the cloud
// function both run from environment variables alone.
const DefaultPath = "./config.yaml"

// Load builds the configuration for the solver from the YAML file named by CONFIG_PATH
// (DefaultPath when unset), then environment variables, then the env-default tags.
//
// A CONFIG_PATH that names a missing file is an error; a missing DefaultPath is not.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	explicit = explicit && path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		cfg, err = fromEnv()
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML file overlaid with environment variables and validates the result.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return validated(&cfg)
}

func fromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return validated(&cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
