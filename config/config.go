// Package config carries the tunables that the writer and hash table need
// at construction time. Defaults match the original gauged constants.
package config

import "github.com/kelseyhightower/envconfig"

// Config holds the runtime limits for a Writer.
type Config struct {
	// MaxQuery is the maximum number of bytes copied out of a query
	// string passed to Writer.EmitPairs.
	MaxQuery int `envconfig:"GAUGED_MAX_QUERY" default:"32768"`

	// MaxPairs is the maximum number of key/value pairs parsed out of
	// a single query string.
	MaxPairs int `envconfig:"GAUGED_MAX_PAIRS" default:"4096"`

	// HashSeed seeds the XXH32 fingerprint used to route (namespace, key)
	// pairs to hash buckets.
	HashSeed uint32 `envconfig:"GAUGED_HASH_SEED" default:"5132"`

	// HashInitialSize is the starting bucket count of the writer's
	// open-addressed hash table. Must be a power of two.
	HashInitialSize int `envconfig:"GAUGED_HASH_INITIAL_SIZE" default:"16"`
}

// Option mutates a Config in place, mirroring the functional-options shape
// used elsewhere in this codebase for constructor configuration.
type Option func(*Config)

// WithMaxQuery overrides MaxQuery.
func WithMaxQuery(n int) Option {
	return func(c *Config) { c.MaxQuery = n }
}

// WithMaxPairs overrides MaxPairs.
func WithMaxPairs(n int) Option {
	return func(c *Config) { c.MaxPairs = n }
}

// WithHashSeed overrides HashSeed.
func WithHashSeed(seed uint32) Option {
	return func(c *Config) { c.HashSeed = seed }
}

// Default returns the built-in defaults, matching GAUGED_WRITER_MAX_QUERY,
// GAUGED_WRITER_MAX_PAIRS and the hash seed constant in the original C
// library.
func Default(opts ...Option) Config {
	c := Config{
		MaxQuery:        32768,
		MaxPairs:        4096,
		HashSeed:        5132,
		HashInitialSize: 16,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// FromEnv loads a Config from the process environment, falling back to
// Default for anything unset, then applies opts on top.
func FromEnv(opts ...Option) (Config, error) {
	c := Default()
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}
