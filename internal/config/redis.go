package config

// Redis backs the response cache and the rate limiter. Both degrade to
// pass-through middleware when the client is nil, so a missing or unreachable
// Redis never stops the API from serving.

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/meal-planner/internal/logging"
)

// RedisConfig holds connection settings. Addr takes precedence over Host/Port.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      string `mapstructure:"tls"`
}

// Address resolves the host:port to dial, or "" when Redis is not configured.
func (r RedisConfig) Address() string {
	if r.Addr != "" {
		return r.Addr
	}
	if r.Host != "" && r.Port != "" {
		return r.Host + ":" + r.Port
	}
	return ""
}

// NewRedisClient returns a connected client, or nil when Redis is not
// configured or does not answer a ping within two seconds.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	addr := cfg.Address()
	if addr == "" {
		return nil
	}
	var tlsConf *tls.Config
	if strings.EqualFold(cfg.TLS, "true") || cfg.TLS == "1" {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logging.L().Warn().Err(err).Str("addr", addr).Msg("redis unreachable; cache and rate limit disabled")
		_ = client.Close()
		return nil
	}
	return client
}
