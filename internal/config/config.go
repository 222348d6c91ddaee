// Package config loads the hexplan.yaml configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexplan/internal/mapgen"
)

// Config holds tool-wide settings.
type Config struct {
	DBPath     string        `yaml:"db_path"`
	APIPort    int           `yaml:"api_port"`
	DefaultCiv string        `yaml:"default_civ"`
	Generator  mapgen.Config `yaml:"generator"`
}

func defaults() Config {
	return Config{
		DBPath:    "data/hexplan.db",
		APIPort:   8080,
		Generator: mapgen.DefaultConfig(),
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api_port %d", cfg.APIPort)
	}
	if cfg.Generator.Radius <= 0 {
		return cfg, fmt.Errorf("invalid generator radius %d", cfg.Generator.Radius)
	}
	return cfg, nil
}
