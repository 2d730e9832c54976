// Package config loads the pathlab TOML configuration.
//
//	[server]
//	address = "localhost:8080"
//	body_limit = 1048576
//
//	[logging]
//	level = "info"          # debug | info | warn | error
//	format = "text"         # text | json
//	logfile = ""            # empty: log to stderr
//	max_log_size = 100      # megabytes
//	max_log_age = 30        # days
//
// Keys that are absent keep their default. A relative logfile path is taken
// relative to the directory of the TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every error returned from Validate.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the full configuration.
type Config struct {
	Server  ServerConfig
	Logging LogConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Address   string
	BodyLimit int `toml:"body_limit"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level   string
	Format  string
	Logfile string
	MaxSize int `toml:"max_log_size"`
	MaxAge  int `toml:"max_log_age"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:   "localhost:8080",
			BodyLimit: 1 << 20,
		},
		Logging: LogConfig{
			Level:   "info",
			Format:  "text",
			MaxSize: 100,
			MaxAge:  30,
		},
	}
}

// Load reads filename over the defaults and validates the result.
// An empty filename, or one that does not exist, yields the defaults.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(filename, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: could not decode %s: %w", filename, err)
	}
	if err := cfg.convertPathsToAbsolute(filename); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Decode parses TOML text over the defaults and validates the result.
// Relative paths are left as written.
func Decode(text string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: could not decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("%w: server.address is empty", ErrInvalid)
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("%w: server.body_limit must be positive, got %d", ErrInvalid, c.Server.BodyLimit)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalid, c.Logging.Format)
	}
	if c.Logging.MaxSize < 0 || c.Logging.MaxAge < 0 {
		return fmt.Errorf("%w: logging.max_log_size and max_log_age must not be negative", ErrInvalid)
	}

	return nil
}

// convertPathsToAbsolute resolves relative paths against the directory of
// the TOML file.
func (c *Config) convertPathsToAbsolute(configPath string) error {
	if c.Logging.Logfile == "" || filepath.IsAbs(c.Logging.Logfile) {
		return nil
	}
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(configPath), c.Logging.Logfile))
	if err != nil {
		return fmt.Errorf("config: logfile %q: %w", c.Logging.Logfile, err)
	}
	c.Logging.Logfile = abs

	return nil
}
