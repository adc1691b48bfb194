package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoInitialEducators = errors.New("config: initial_educators must not be empty")

// Config is the deployment-time configuration for the registry service.
type Config struct {
	Addr             string   `yaml:"addr"`
	DBPath           string   `yaml:"db_path"`
	InitialEducators []string `yaml:"initial_educators"`
}

const (
	defaultAddr   = ":8080"
	defaultDBPath = "registry.db"
)

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Normalize fills defaults and drops blank educator identities.
func Normalize(cfg *Config) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}

	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}

	educators := make([]string, 0, len(cfg.InitialEducators))
	for _, identity := range cfg.InitialEducators {
		identity = strings.TrimSpace(identity)
		if identity != "" {
			educators = append(educators, identity)
		}
	}
	cfg.InitialEducators = educators
}

// Validate enforces the bootstrap invariant at the deployment boundary:
// with no initial Educator no question could ever be added.
func Validate(cfg *Config) error {
	if len(cfg.InitialEducators) == 0 {
		return ErrNoInitialEducators
	}
	return nil
}
