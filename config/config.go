// Package config loads arena, logging, metrics and hashing settings from
// TOML and turns them into ready-to-use memkit values.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/pavanmanishd/memkit"
	"github.com/pavanmanishd/memkit/hashing"
	"github.com/pavanmanishd/memkit/telemetry"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid configuration")

// ArenaConfig describes how arenas are built.
type ArenaConfig struct {
	BlockSize      int  `toml:"block_size"`
	BlockAlignment int  `toml:"block_alignment"`
	Scrub          bool `toml:"scrub"`
	InitialBlock   int  `toml:"initial_block"` // bytes of caller-owned first block, 0 for none
	Concurrent     bool `toml:"concurrent"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Verbose bool   `toml:"verbose"`
	Format  string `toml:"format"` // "console" or "json"
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// HashConfig selects the string hash used by maps built from this config.
type HashConfig struct {
	Strings string `toml:"strings"` // "murmur3" or "xxhash"
}

// Config is the top-level configuration.
type Config struct {
	Arena   ArenaConfig   `toml:"arena"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
	Hash    HashConfig    `toml:"hash"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Arena: ArenaConfig{
			BlockSize:      memkit.DefaultBlockSize,
			BlockAlignment: memkit.DefaultBlockAlignment,
		},
		Logging: LoggingConfig{
			Format: "console",
		},
		Metrics: MetricsConfig{
			Namespace: "memkit",
		},
		Hash: HashConfig{
			Strings: "murmur3",
		},
	}
}

// Load reads the file at path over the defaults. A missing file is not an
// error; the defaults are returned and a warning is logged.
func Load(path string, log zerolog.Logger) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warn().Str("path", path).Msg("Config file not found, using defaults")
		return c, nil
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, nil
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(text, c)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undec[0].String())
	}
	return c, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Arena.BlockSize <= 0 {
		return fmt.Errorf("%w: arena.block_size must be positive, got %d", ErrInvalid, c.Arena.BlockSize)
	}
	if a := c.Arena.BlockAlignment; a <= 0 || a&(a-1) != 0 {
		return fmt.Errorf("%w: arena.block_alignment must be a power of two, got %d", ErrInvalid, a)
	}
	if c.Arena.InitialBlock < 0 {
		return fmt.Errorf("%w: arena.initial_block must not be negative", ErrInvalid)
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrInvalid, c.Logging.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("%w: metrics.namespace is required when metrics are enabled", ErrInvalid)
	}

	switch c.Hash.Strings {
	case "murmur3", "xxhash":
	default:
		return fmt.Errorf("%w: hash.strings must be murmur3 or xxhash, got %q", ErrInvalid, c.Hash.Strings)
	}
	return nil
}

// NewLogger builds a logger writing to w. The console format wraps w in a
// zerolog.ConsoleWriter; json writes to w directly.
func (c *Config) NewLogger(w io.Writer) zerolog.Logger {
	if c.Logging.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	l := zerolog.New(w).With().Timestamp().Logger()
	if c.Logging.Verbose {
		return l.Level(zerolog.DebugLevel)
	}
	return l.Level(zerolog.InfoLevel)
}

// ArenaOptions returns the arena options the configuration describes.
func (c *Config) ArenaOptions(log zerolog.Logger) []memkit.Option {
	opts := []memkit.Option{
		memkit.WithBlockAlignment(uintptr(c.Arena.BlockAlignment)),
		memkit.WithScrub(c.Arena.Scrub),
		memkit.WithLogger(log),
	}
	if c.Arena.InitialBlock > 0 {
		opts = append(opts, memkit.WithInitialBlock(make([]byte, c.Arena.InitialBlock)))
	}
	return opts
}

// NewArena builds an arena from the configuration.
func (c *Config) NewArena(log zerolog.Logger) *memkit.Arena {
	return memkit.NewArena(c.Arena.BlockSize, c.ArenaOptions(log)...)
}

// NewSafeArena builds a mutex-guarded arena from the configuration.
func (c *Config) NewSafeArena(log zerolog.Logger) *memkit.SafeArena {
	return memkit.NewSafeArena(c.Arena.BlockSize, c.ArenaOptions(log)...)
}

// NewAllocator returns a SafeArena when arena.concurrent is set and a plain
// Arena otherwise.
func (c *Config) NewAllocator(log zerolog.Logger) memkit.Allocator {
	if c.Arena.Concurrent {
		return c.NewSafeArena(log)
	}
	return c.NewArena(log)
}

// StringHasher returns the configured string hasher.
func (c *Config) StringHasher() hashing.Hasher[string] {
	if c.Hash.Strings == "xxhash" {
		return hashing.XXString{}
	}
	return hashing.String{}
}

// NewCollector returns a collector named after metrics.namespace, or nil
// when metrics are disabled.
func (c *Config) NewCollector() *telemetry.Collector {
	if !c.Metrics.Enabled {
		return nil
	}
	return telemetry.NewCollector(c.Metrics.Namespace)
}
