package redis_test

import (
	"testing"

	"todoapi/config"
	"todoapi/infras/redis"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(cfg *config.Config)
		expected bool
	}{
		{
			name:     "nothing enabled",
			setup:    func(_ *config.Config) {},
			expected: false,
		},
		{
			name:     "cache enabled",
			setup:    func(cfg *config.Config) { cfg.Cache.Enable = true },
			expected: true,
		},
		{
			name: "redis rate limiter",
			setup: func(cfg *config.Config) {
				cfg.App.RateLimiter.Enable = true
				cfg.App.RateLimiter.Backend = config.RateLimiterBackendRedis
			},
			expected: true,
		},
		{
			name: "memory rate limiter",
			setup: func(cfg *config.Config) {
				cfg.App.RateLimiter.Enable = true
				cfg.App.RateLimiter.Backend = config.RateLimiterBackendMemory
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.setup(cfg)

			assert.Equal(t, tt.expected, redis.Required(cfg))
		})
	}
}

func TestNew_Disabled(t *testing.T) {
	assert.Nil(t, redis.New(&config.Config{}))
}
