package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"todoapi/config"
	"todoapi/shared"
	"todoapi/shared/constant"
	"todoapi/shared/logger"
	"todoapi/transport/http/response"

	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"

	limiterIdleTTL      = 15 * time.Minute
	limiterCleanupEvery = 2 * time.Minute
)

// RateLimit allows MaxRequests per client and user agent in every WindowSeconds. The redis
// backend counts in fixed windows shared by every instance, the memory backend keeps a token
// bucket per client in process. Requests pass through when the backend fails.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiterConfig := a.config.App.RateLimiter

	if !limiterConfig.Enable || limiterConfig.MaxRequests <= 0 || limiterConfig.WindowSeconds <= 0 {
		return passthrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			remaining, allowed, ok := a.take(r, key)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiterConfig.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(remaining))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiterConfig.WindowSeconds))

			if !allowed {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// take consumes one request for key. ok is false when the backend could not answer.
func (a *appMiddleware) take(r *http.Request, key string) (remaining int, allowed, ok bool) {
	maxReqs := a.config.App.RateLimiter.MaxRequests

	if a.config.App.RateLimiter.Backend != config.RateLimiterBackendRedis {
		lim := a.limiter.get(key)
		allowed = lim.Allow()

		return max(0, int(lim.Tokens())), allowed, true
	}

	count, err := a.cache.Incr(r.Context(), key, a.config.App.RateLimiter.WindowSeconds)
	if err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Msg("rate limiter unavailable, letting request through")

		return 0, false, false
	}

	return max(0, maxReqs-int(count)), int(count) <= maxReqs, true
}

// limiterStore keeps one token bucket per key and forgets keys idle for limiterIdleTTL.
type limiterStore struct {
	mu          sync.Mutex
	entries     map[string]*limiterEntry
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(maxRequests, windowSeconds int) *limiterStore {
	limit := rate.Limit(0)
	if windowSeconds > 0 {
		limit = rate.Limit(float64(maxRequests) / float64(windowSeconds))
	}

	return &limiterStore{
		entries:     map[string]*limiterEntry{},
		limit:       limit,
		burst:       maxRequests,
		lastCleanup: time.Now(),
	}
}

func (s *limiterStore) get(key string) *rate.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastCleanup) >= limiterCleanupEvery {
		s.cleanup(now)
	}

	if entry, found := s.entries[key]; found {
		entry.lastSeen = now

		return entry.lim
	}

	lim := rate.NewLimiter(s.limit, s.burst)
	s.entries[key] = &limiterEntry{lim: lim, lastSeen: now}

	return lim
}

func (s *limiterStore) cleanup(now time.Time) {
	cutoff := now.Add(-limiterIdleTTL)

	for key, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, key)
		}
	}

	s.lastCleanup = now
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == constant.Empty {
		ua = "unknown"
	}

	return ua
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != constant.Empty {
		// first entry is the originating client
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != constant.Empty {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
