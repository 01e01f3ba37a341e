package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration позволяет задавать интервалы в yaml в виде строк ("24h", "15m")
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Auth struct {
		Secret   string   `yaml:"secret"`
		TokenTTL Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
}

// Load читает конфигурацию из yaml-файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = "file::memory:?cache=shared"
	}
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret is required")
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = Duration(24 * time.Hour)
	}
	return &cfg, nil
}
