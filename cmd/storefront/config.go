package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix  = "DRIVEHUB"
	configName = ".drivehub"
)

// Config is the storefront CLI configuration
type Config struct {
	APIURL            string        `mapstructure:"api_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	SessionBackend    string        `mapstructure:"session_backend"`
	SessionPath       string        `mapstructure:"session_path"`
	RedisAddr         string        `mapstructure:"redis_addr"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	LogLevel          string        `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("timeout", "15s")
	v.SetDefault("session_backend", "file")
	v.SetDefault("session_path", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("requests_per_second", 5)
	v.SetDefault("log_level", "warn")
}

// loadConfig reads ~/.drivehub.yaml (or file when given) and DRIVEHUB_*
// environment variables on top of the defaults
func loadConfig(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.SessionPath = expandPath(cfg.SessionPath)
	return &cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.APIURL) == "" {
		return fmt.Errorf("api_url is required")
	}
	switch cfg.SessionBackend {
	case "file":
	case "redis":
		if cfg.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis session backend")
		}
	default:
		return fmt.Errorf("invalid session_backend: %s (must be file or redis)", cfg.SessionBackend)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if cfg.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second cannot be negative")
	}
	return nil
}

// expandPath expands a leading ~ to the home directory
func expandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
