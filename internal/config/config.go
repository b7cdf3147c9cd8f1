// Package config loads the daemon configuration from a TOML file, with
// sensible defaults when no file is given.
package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the full daemon configuration.
type Config struct {
	API  APIConfig  `toml:"api"`
	Log  LogConfig  `toml:"log"`
	Data DataConfig `toml:"data"`
}

// APIConfig configures the HTTP server.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
	CORS    bool   `toml:"cors"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `toml:"level"`  // trace|debug|info|warn|error
	Format string `toml:"format"` // json|text
}

// DataConfig points at the dataset to serve.
type DataConfig struct {
	Path string `toml:"path"` // empty: embedded sample dataset
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    8420,
			Metrics: true,
			CORS:    true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Addr is the host:port the API server binds.
func (c Config) Addr() string {
	return net.JoinHostPort(c.API.Host, strconv.Itoa(c.API.Port))
}
