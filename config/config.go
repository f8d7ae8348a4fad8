package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the full runtime configuration for the service.
// Values resolve in three layers: built-in defaults, an optional TOML
// file, then environment variable overrides.
type Config struct {
	Port         string `toml:"port"`
	DatabasePath string `toml:"database_path"`
	SecretKey    string `toml:"secret_key"`
	CacheType    string `toml:"cache_type"` // "memory" or "redis"
	RedisAddr    string `toml:"redis_addr"`
}

// Default returns the development configuration.
func Default() Config {
	return Config{
		Port:         "8080",
		DatabasePath: "./todoapp.sqlite",
		SecretKey:    "desarrollo-seguro", // Override in real deployments.
		CacheType:    "memory",
		RedisAddr:    "localhost:6379",
	}
}

// Load resolves the configuration. A missing path is not an error; the
// defaults plus environment overrides apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("TODO_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("TODO_DATABASE"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("TODO_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("TODO_CACHE"); v != "" {
		cfg.CacheType = v
	}
	if v := os.Getenv("TODO_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}

	return cfg, nil
}
