package redis

import (
	"context"
	"net"

	"todoapi/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Required reports whether any component is configured to use redis.
func Required(cfg *config.Config) bool {
	limiter := cfg.App.RateLimiter

	return cfg.Cache.Enable || (limiter.Enable && limiter.Backend == config.RateLimiterBackendRedis)
}

// New connects to the primary redis. It returns nil when neither caching nor the redis rate
// limiter is enabled.
func New(config *config.Config) *goRedis.Client {
	if !Required(config) {
		log.Info().Msg("Redis disabled")

		return nil
	}

	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client
}
