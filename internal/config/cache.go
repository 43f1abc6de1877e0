package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is disabled.
// Methods lists the HTTP methods to cache as a comma separated string;
// MethodSet is the parsed, upper-cased form used at request time.
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Methods      string        `mapstructure:"methods"`
	TTL          time.Duration `mapstructure:"ttl"`
	KeyStrategy  string        `mapstructure:"key_strategy"`
	Prefix       string        `mapstructure:"prefix"`
	MaxBodyBytes int           `mapstructure:"max_body_bytes"`

	MethodSet map[string]bool `mapstructure:"-"`
}

func (c *CacheConfig) normalize() {
	c.MethodSet = parseMethods(c.Methods)
	if c.TTL <= 0 {
		c.TTL = 30 * time.Second
	}
	if c.Prefix == "" {
		c.Prefix = "cache"
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
